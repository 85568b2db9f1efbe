package api

import (
	"github.com/gin-gonic/gin"
)

type Controller struct {
	Handler *Handler
	router  *gin.Engine
}

func NewController(handler *Handler, health *HealthChecker) *Controller {
	router := gin.Default()

	router.GET("/", handler.Index)
	router.GET("/ping", handler.Ping)
	if health != nil {
		router.GET("/healthz", health.Handle)
	}

	vehicles := router.Group("/vehicles")
	{
		vehicles.GET("", handler.GetVehicles)
		vehicles.POST("", handler.CreateVehicle)
		vehicles.GET("/:vehicle_id", handler.GetVehicle)
		vehicles.POST("/:vehicle_id/position", handler.UpdatePosition)
	}

	return &Controller{Handler: handler, router: router}
}

func (c *Controller) Router() *gin.Engine {
	return c.router
}

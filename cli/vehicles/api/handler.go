package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/daniil11ru/vehicles/cli/vehicles/api/dto/request"
	"github.com/daniil11ru/vehicles/cli/vehicles/api/dto/response"
	"github.com/daniil11ru/vehicles/cli/vehicles/types"
	"github.com/gin-gonic/gin"
)

type NearbyFinder interface {
	Run(ctx context.Context, query types.ProximityQuery) ([]types.EnrichedResult, error)
}

type PositionUpdater interface {
	Run(ctx context.Context, position types.VehiclePosition) error
}

type VehicleCreator interface {
	Run(ctx context.Context, v types.NewVehicle) (int32, error)
}

type VehicleReader interface {
	GetVehicle(ctx context.Context, id int32) (types.Vehicle, error)
	GetVehiclesByPlateNumber(ctx context.Context, plateNumber string) ([]types.Vehicle, error)
	GetVehicles(ctx context.Context) ([]types.Vehicle, error)
}

type Handler struct {
	Nearby    NearbyFinder
	Positions PositionUpdater
	Creator   VehicleCreator
	Registry  VehicleReader
}

func NewHandler(nearby NearbyFinder, positions PositionUpdater, creator VehicleCreator, registry VehicleReader) *Handler {
	return &Handler{Nearby: nearby, Positions: positions, Creator: creator, Registry: registry}
}

func (h *Handler) Index(c *gin.Context) {
	c.String(http.StatusOK, "Hello, vehicles!")
}

func (h *Handler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ping": "pong"})
}

func (h *Handler) GetVehicles(c *gin.Context) {
	req, err := request.ParseGetVehicles(c.GetQuery)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx := c.Request.Context()

	if req.Near != nil {
		results, err := h.Nearby.Run(ctx, types.ProximityQuery{
			Center:   types.Coordinates{Longitude: req.Near.Longitude, Latitude: req.Near.Latitude},
			RadiusKm: req.Near.RadiusKm,
		})
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.NewNearbyVehicles(results))
		return
	}

	var vehicles []types.Vehicle
	if req.PlateNumber != nil {
		vehicles, err = h.Registry.GetVehiclesByPlateNumber(ctx, *req.PlateNumber)
	} else {
		vehicles, err = h.Registry.GetVehicles(ctx)
	}
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.NewVehicles(vehicles))
}

func (h *Handler) CreateVehicle(c *gin.Context) {
	req := request.CreateVehicle{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "тело запроса должно быть JSON-объектом"})
		return
	}

	id, err := h.Creator.Run(c.Request.Context(), types.NewVehicle{
		Model:       req.Model,
		FullName:    req.FullName,
		PlateNumber: req.PlateNumber,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.VehicleCreated{
		ID:      id,
		Message: fmt.Sprintf("Транспорт %s успешно создан.", req.FullName),
	})
}

func (h *Handler) GetVehicle(c *gin.Context) {
	id, ok := vehicleId(c)
	if !ok {
		return
	}

	vehicle, err := h.Registry.GetVehicle(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.NewVehicle(vehicle))
}

func (h *Handler) UpdatePosition(c *gin.Context) {
	id, ok := vehicleId(c)
	if !ok {
		return
	}

	req := request.UpdatePosition{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ожидается JSON с полями longitude и latitude"})
		return
	}

	err := h.Positions.Run(c.Request.Context(), types.VehiclePosition{
		VehicleId:   id,
		Coordinates: types.Coordinates{Longitude: *req.Longitude, Latitude: *req.Latitude},
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.PositionChanged{Result: "Позиция изменена", VehicleID: id})
}

func vehicleId(c *gin.Context) (int32, bool) {
	raw := c.Param("vehicle_id")
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("некорректный ID транспорта '%s'", raw)})
		return 0, false
	}
	return int32(id), true
}

package api

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/daniil11ru/vehicles/cli/vehicles/connector"
	"github.com/gin-gonic/gin"
)

const healthTimeout = 2 * time.Second

// HealthChecker проверяет доступность внешних зависимостей по именам
type HealthChecker struct {
	deps map[string]connector.Pinger
}

func NewHealthChecker(deps map[string]connector.Pinger) *HealthChecker {
	return &HealthChecker{deps: deps}
}

func (h *HealthChecker) Handle(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	names := make([]string, 0, len(h.deps))
	for name := range h.deps {
		names = append(names, name)
	}
	sort.Strings(names)

	status := http.StatusOK
	deps := gin.H{}
	for _, name := range names {
		if err := h.deps[name].Ping(ctx); err != nil {
			deps[name] = gin.H{"status": "down", "error": err.Error()}
			status = http.StatusServiceUnavailable
		} else {
			deps[name] = gin.H{"status": "up"}
		}
	}

	overall := "healthy"
	if status != http.StatusOK {
		overall = "unhealthy"
	}

	c.JSON(status, gin.H{
		"status":       overall,
		"dependencies": deps,
	})
}

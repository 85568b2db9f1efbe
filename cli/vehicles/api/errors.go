package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/daniil11ru/vehicles/cli/vehicles/types"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func statusOf(err error) int {
	switch {
	case errors.Is(err, types.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, types.ErrGeoIndexUnavailable), errors.Is(err, types.ErrRegistryUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	status := statusOf(err)
	if status >= http.StatusInternalServerError {
		log.WithFields(log.Fields{
			"path": c.FullPath(),
			"err":  err,
		}).Error("Ошибка обработки запроса")
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/daniil11ru/vehicles/cli/vehicles/types"
	log "github.com/sirupsen/logrus"
)

var now = time.Now

// UpdatePosition записывает последнюю позицию транспорта в геоиндекс.
// Наличие транспорта в реестре не проверяется: позиция может прийти раньше записи.
type UpdatePosition struct {
	GeoIndex PositionWriter
	// Events необязательный получатель уведомлений об изменении позиции
	Events EventSaver
}

func (d *UpdatePosition) Run(ctx context.Context, position types.VehiclePosition) error {
	if position.VehicleId <= 0 {
		return fmt.Errorf("%w: ID транспорта должен быть положительным, получено %d", types.ErrInvalidInput, position.VehicleId)
	}
	if err := position.Validate(); err != nil {
		return err
	}

	if err := d.GeoIndex.Upsert(ctx, position.VehicleId, position.Longitude, position.Latitude); err != nil {
		return fmt.Errorf("не удалось обновить позицию транспорта с ID %d: %w", position.VehicleId, err)
	}

	if d.Events != nil {
		if err := d.Events.Save(types.NewPositionEvent(position, now())); err != nil {
			log.WithFields(log.Fields{
				"vehicle_id": position.VehicleId,
				"err":        err,
			}).Warn("Не удалось отправить уведомление об изменении позиции")
		}
	}

	return nil
}

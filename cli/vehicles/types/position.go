package types

import (
	"fmt"
	"math"
	"time"

	"gopkg.in/vmihailenco/msgpack.v2"
)

type Coordinates struct {
	Longitude float64
	Latitude  float64
}

func (c Coordinates) Validate() error {
	if math.IsNaN(c.Longitude) || math.IsInf(c.Longitude, 0) || c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("%w: долгота %v", ErrInvalidCoordinate, c.Longitude)
	}
	if math.IsNaN(c.Latitude) || math.IsInf(c.Latitude, 0) || c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("%w: широта %v", ErrInvalidCoordinate, c.Latitude)
	}
	return nil
}

// VehiclePosition последняя известная позиция транспорта, история не хранится
type VehiclePosition struct {
	VehicleId int32
	Coordinates
}

// PositionEvent уведомление об изменении позиции для внешних подписчиков
type PositionEvent struct {
	VehicleId int32     `msgpack:"vehicle_id"`
	Longitude float64   `msgpack:"longitude"`
	Latitude  float64   `msgpack:"latitude"`
	UpdatedAt int64   `msgpack:"updated_at"` // unix, мс
}

func NewPositionEvent(position VehiclePosition, updatedAt time.Time) PositionEvent {
	return PositionEvent{
		VehicleId: position.VehicleId,
		Longitude: position.Longitude,
		Latitude:  position.Latitude,
		UpdatedAt: updatedAt.UnixNano() / int64(time.Millisecond),
	}
}

func (e PositionEvent) ToBytes() ([]byte, error) {
	return msgpack.Marshal(e)
}

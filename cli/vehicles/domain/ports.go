package domain

import (
	"context"

	"github.com/daniil11ru/vehicles/cli/vehicles/types"
)

type PositionWriter interface {
	Upsert(ctx context.Context, vehicleId int32, longitude, latitude float64) error
}

type PositionSearcher interface {
	RadiusSearch(ctx context.Context, center types.Coordinates, radiusKm float64) ([]types.ProximityHit, error)
}

type PositionLister interface {
	Positions(ctx context.Context) ([]types.VehiclePosition, error)
}

type VehicleGetter interface {
	GetVehicle(ctx context.Context, id int32) (types.Vehicle, error)
}

type VehicleLister interface {
	GetVehicles(ctx context.Context) ([]types.Vehicle, error)
}

type VehicleAdder interface {
	AddVehicle(ctx context.Context, v types.NewVehicle) (int32, error)
}

// EventSaver принимает уведомления о смене позиции, доставка асинхронная
type EventSaver interface {
	Save(m interface{ ToBytes() ([]byte, error) }) error
}

package source

import (
	"context"

	"github.com/daniil11ru/vehicles/cli/vehicles/types"
)

// Registry долговременное хранилище записей о транспорте.
// Отсутствие записи сообщается как types.ErrNotFound, сбой хранилища как types.ErrRegistryUnavailable.
type Registry interface {
	GetVehicle(ctx context.Context, id int32) (types.Vehicle, error)
	GetVehiclesByPlateNumber(ctx context.Context, plateNumber string) ([]types.Vehicle, error)
	GetVehicles(ctx context.Context) ([]types.Vehicle, error)
	AddVehicle(ctx context.Context, v types.NewVehicle) (int32, error)
}

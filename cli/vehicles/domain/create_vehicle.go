package domain

import (
	"context"
	"fmt"
	"strings"

	"github.com/daniil11ru/vehicles/cli/vehicles/types"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type CreateVehicle struct {
	Registry VehicleAdder
}

func (d *CreateVehicle) Run(ctx context.Context, v types.NewVehicle) (int32, error) {
	v.Model = strings.TrimSpace(v.Model)
	v.FullName = strings.TrimSpace(v.FullName)
	v.PlateNumber = strings.TrimSpace(v.PlateNumber)

	if err := validate.Struct(v); err != nil {
		return 0, fmt.Errorf("%w: %v", types.ErrInvalidVehicle, err)
	}

	id, err := d.Registry.AddVehicle(ctx, v)
	if err != nil {
		return 0, fmt.Errorf("не удалось добавить транспорт: %w", err)
	}

	return id, nil
}

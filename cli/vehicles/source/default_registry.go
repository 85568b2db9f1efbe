package source

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/daniil11ru/vehicles/cli/vehicles/types"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const vehicleColumns = "id, model, full_name, plate_number"

type DefaultRegistry struct {
	db *gorm.DB
}

func NewDefaultRegistry(conn *sql.DB) (*DefaultRegistry, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn: conn,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации реестра транспорта: %v", err)
	}

	return &DefaultRegistry{db: db}, nil
}

func classify(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return types.ErrNotFound
	case ctx.Err() != nil:
		return ctx.Err()
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return fmt.Errorf("%w: %v", types.ErrRegistryUnavailable, err)
	}
}

func (r *DefaultRegistry) GetVehicle(ctx context.Context, id int32) (types.Vehicle, error) {
	var vehicle types.Vehicle

	err := r.db.WithContext(ctx).Table("vehicle").Select(vehicleColumns).Where("id = ?", id).Take(&vehicle).Error
	if err != nil {
		return types.Vehicle{}, fmt.Errorf("транспорт с ID %d: %w", id, classify(ctx, err))
	}

	return vehicle, nil
}

func (r *DefaultRegistry) GetVehiclesByPlateNumber(ctx context.Context, plateNumber string) ([]types.Vehicle, error) {
	vehicles := []types.Vehicle{}

	q := r.db.WithContext(ctx).Table("vehicle").Select(vehicleColumns).Where("plate_number = ?", plateNumber).Order("id")
	if err := q.Scan(&vehicles).Error; err != nil {
		return nil, classify(ctx, err)
	}

	return vehicles, nil
}

func (r *DefaultRegistry) GetVehicles(ctx context.Context) ([]types.Vehicle, error) {
	vehicles := []types.Vehicle{}

	if err := r.db.WithContext(ctx).Table("vehicle").Select(vehicleColumns).Order("id").Scan(&vehicles).Error; err != nil {
		return nil, classify(ctx, err)
	}

	return vehicles, nil
}

func (r *DefaultRegistry) AddVehicle(ctx context.Context, v types.NewVehicle) (int32, error) {
	if v.Model == "" || v.FullName == "" || v.PlateNumber == "" {
		return 0, fmt.Errorf("%w: модель, имя и госномер не могут быть пустыми", types.ErrInvalidVehicle)
	}

	const q = `
		INSERT INTO vehicle (model, full_name, plate_number)
		VALUES (?, ?, ?)
		RETURNING id
	`
	var id int32
	if err := r.db.WithContext(ctx).Raw(q, v.Model, v.FullName, v.PlateNumber).Scan(&id).Error; err != nil {
		return 0, classify(ctx, err)
	}

	return id, nil
}

package source

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/daniil11ru/vehicles/cli/vehicles/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRegistry(t *testing.T) (*DefaultRegistry, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	registry, err := NewDefaultRegistry(db)
	require.NoError(t, err)
	return registry, mock
}

var vehicleRowColumns = []string{"id", "model", "full_name", "plate_number"}

func TestGetVehicle_Success(t *testing.T) {
	registry, mock := newMockRegistry(t)

	mock.ExpectQuery(`SELECT id, model, full_name, plate_number FROM "vehicle" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(vehicleRowColumns).AddRow(1, "Tesla Model 3", "Ivan Petrov", "A123BC77"))

	vehicle, err := registry.GetVehicle(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, types.Vehicle{Id: 1, Model: "Tesla Model 3", FullName: "Ivan Petrov", PlateNumber: "A123BC77"}, vehicle)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetVehicle_NotFound(t *testing.T) {
	registry, mock := newMockRegistry(t)

	mock.ExpectQuery(`SELECT id, model, full_name, plate_number FROM "vehicle" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(vehicleRowColumns))

	_, err := registry.GetVehicle(context.Background(), 42)
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.NotErrorIs(t, err, types.ErrRegistryUnavailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetVehicle_Unavailable(t *testing.T) {
	registry, mock := newMockRegistry(t)

	mock.ExpectQuery(`SELECT (.+) FROM "vehicle"`).
		WillReturnError(errors.New("connection refused"))

	_, err := registry.GetVehicle(context.Background(), 1)
	assert.ErrorIs(t, err, types.ErrRegistryUnavailable)
	assert.NotErrorIs(t, err, types.ErrNotFound)
}

func TestGetVehicle_CancelledContext(t *testing.T) {
	registry, mock := newMockRegistry(t)

	ctx, cancel := context.WithCancel(context.Background())
	mock.ExpectQuery(`SELECT (.+) FROM "vehicle"`).
		WillReturnError(context.Canceled)
	cancel()

	_, err := registry.GetVehicle(ctx, 1)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, types.ErrRegistryUnavailable)
}

func TestGetVehiclesByPlateNumber(t *testing.T) {
	registry, mock := newMockRegistry(t)

	mock.ExpectQuery(`SELECT id, model, full_name, plate_number FROM "vehicle" WHERE plate_number = \$1 ORDER BY id`).
		WithArgs("A123BC77").
		WillReturnRows(sqlmock.NewRows(vehicleRowColumns).
			AddRow(1, "Tesla Model 3", "Ivan Petrov", "A123BC77").
			AddRow(5, "Lada Vesta", "Petr Ivanov", "A123BC77"))

	vehicles, err := registry.GetVehiclesByPlateNumber(context.Background(), "A123BC77")
	require.NoError(t, err)
	require.Len(t, vehicles, 2)
	assert.Equal(t, int32(5), vehicles[1].Id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetVehiclesByPlateNumber_Empty(t *testing.T) {
	registry, mock := newMockRegistry(t)

	mock.ExpectQuery(`FROM "vehicle" WHERE plate_number = \$1`).
		WithArgs("NONE").
		WillReturnRows(sqlmock.NewRows(vehicleRowColumns))

	vehicles, err := registry.GetVehiclesByPlateNumber(context.Background(), "NONE")
	require.NoError(t, err)
	assert.NotNil(t, vehicles)
	assert.Empty(t, vehicles)
}

func TestGetVehicles(t *testing.T) {
	registry, mock := newMockRegistry(t)

	mock.ExpectQuery(`SELECT id, model, full_name, plate_number FROM "vehicle" ORDER BY id`).
		WillReturnRows(sqlmock.NewRows(vehicleRowColumns).
			AddRow(1, "Tesla Model 3", "Ivan Petrov", "A123BC77").
			AddRow(2, "Kia Rio", "Anna Smirnova", "B456CD77"))

	vehicles, err := registry.GetVehicles(context.Background())
	require.NoError(t, err)
	assert.Len(t, vehicles, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetVehicles_Unavailable(t *testing.T) {
	registry, mock := newMockRegistry(t)

	mock.ExpectQuery(`FROM "vehicle"`).WillReturnError(errors.New("timeout"))

	_, err := registry.GetVehicles(context.Background())
	assert.ErrorIs(t, err, types.ErrRegistryUnavailable)
}

func TestAddVehicle_Success(t *testing.T) {
	registry, mock := newMockRegistry(t)

	mock.ExpectQuery(`INSERT INTO vehicle \(model, full_name, plate_number\)`).
		WithArgs("Kia Rio", "Anna Smirnova", "B456CD77").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(17))

	id, err := registry.AddVehicle(context.Background(), types.NewVehicle{
		Model:       "Kia Rio",
		FullName:    "Anna Smirnova",
		PlateNumber: "B456CD77",
	})
	require.NoError(t, err)
	assert.Equal(t, int32(17), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddVehicle_EmptyFields(t *testing.T) {
	registry, mock := newMockRegistry(t)

	_, err := registry.AddVehicle(context.Background(), types.NewVehicle{Model: "Kia Rio"})
	assert.ErrorIs(t, err, types.ErrInvalidInput)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddVehicle_Unavailable(t *testing.T) {
	registry, mock := newMockRegistry(t)

	mock.ExpectQuery(`INSERT INTO vehicle`).WillReturnError(errors.New("broken pipe"))

	_, err := registry.AddVehicle(context.Background(), types.NewVehicle{
		Model:       "Kia Rio",
		FullName:    "Anna Smirnova",
		PlateNumber: "B456CD77",
	})
	assert.ErrorIs(t, err, types.ErrRegistryUnavailable)
}

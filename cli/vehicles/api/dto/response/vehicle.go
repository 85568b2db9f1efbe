package response

import "github.com/daniil11ru/vehicles/cli/vehicles/types"

type Vehicle struct {
	ID          int32  `json:"id"`
	Model       string `json:"model"`
	FullName    string `json:"full_name"`
	PlateNumber string `json:"plate_number"`
}

func NewVehicle(v types.Vehicle) Vehicle {
	return Vehicle{ID: v.Id, Model: v.Model, FullName: v.FullName, PlateNumber: v.PlateNumber}
}

func NewVehicles(vehicles []types.Vehicle) []Vehicle {
	result := make([]Vehicle, 0, len(vehicles))
	for _, v := range vehicles {
		result = append(result, NewVehicle(v))
	}
	return result
}

type VehicleCreated struct {
	ID      int32  `json:"id"`
	Message string `json:"message"`
}

type PositionChanged struct {
	Result    string `json:"result"`
	VehicleID int32  `json:"vehicle_id"`
}

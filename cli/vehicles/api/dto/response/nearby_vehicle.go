package response

import "github.com/daniil11ru/vehicles/cli/vehicles/types"

// NearbyVehicle элемент ответа поиска по радиусу.
// Для транспорта без записи в реестре resolved=false и поля реестра отсутствуют.
type NearbyVehicle struct {
	VehicleID   int32   `json:"vehicle_id"`
	DistanceKm  float64 `json:"distance_km"`
	Longitude   float64 `json:"longitude"`
	Latitude    float64 `json:"latitude"`
	Resolved    bool    `json:"resolved"`
	Model       string  `json:"model,omitempty"`
	FullName    string  `json:"full_name,omitempty"`
	PlateNumber string  `json:"plate_number,omitempty"`
}

func NewNearbyVehicles(results []types.EnrichedResult) []NearbyVehicle {
	items := make([]NearbyVehicle, 0, len(results))
	for _, r := range results {
		item := NearbyVehicle{
			VehicleID:  r.Hit.VehicleId,
			DistanceKm: r.Hit.DistanceKm,
			Longitude:  r.Hit.Coordinates.Longitude,
			Latitude:   r.Hit.Coordinates.Latitude,
			Resolved:   r.IsResolved(),
		}
		if r.Vehicle != nil {
			item.Model = r.Vehicle.Model
			item.FullName = r.Vehicle.FullName
			item.PlateNumber = r.Vehicle.PlateNumber
		}
		items = append(items, item)
	}
	return items
}

package request

import (
	"fmt"
	"strconv"
)

// GetVehicles параметры GET /vehicles. Near заполняется только при наличии всех трех параметров поиска.
type GetVehicles struct {
	Near        *Near
	PlateNumber *string
}

type Near struct {
	Longitude float64
	Latitude  float64
	RadiusKm  float64
}

// ParseGetVehicles разбирает строку запроса; lookup ведет себя как gin.Context.GetQuery
func ParseGetVehicles(lookup func(key string) (string, bool)) (GetVehicles, error) {
	request := GetVehicles{}

	if plate, ok := lookup("plate_number"); ok && plate != "" {
		request.PlateNumber = &plate
	}

	keys := []string{"lng", "lat", "nearby_radius"}
	values := make([]float64, len(keys))
	present := 0
	for i, key := range keys {
		raw, ok := lookup(key)
		if !ok {
			continue
		}
		present++
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return request, fmt.Errorf("параметр %s должен быть числом, получено '%s'", key, raw)
		}
		values[i] = v
	}

	switch present {
	case 0:
	case len(keys):
		request.Near = &Near{Longitude: values[0], Latitude: values[1], RadiusKm: values[2]}
	default:
		return request, fmt.Errorf("параметры lng, lat и nearby_radius задаются только вместе")
	}

	return request, nil
}

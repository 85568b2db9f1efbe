package geo

import (
	"math"

	"github.com/daniil11ru/vehicles/cli/vehicles/types"
)

// запас в градусах, чтобы точки на границе не терялись из-за округления
const boundsPadding = 1e-6

// Box прямоугольник в градусах, MinLongitude <= MaxLongitude
type Box struct {
	MinLongitude float64
	MinLatitude  float64
	MaxLongitude float64
	MaxLatitude  float64
}

func (b Box) Contains(c types.Coordinates) bool {
	return c.Longitude >= b.MinLongitude && c.Longitude <= b.MaxLongitude &&
		c.Latitude >= b.MinLatitude && c.Latitude <= b.MaxLatitude
}

// BoundingBoxes возвращает один или два прямоугольника, покрывающих круг радиуса radiusKm.
// Два прямоугольника получаются, когда круг пересекает антимеридиан.
func BoundingBoxes(center types.Coordinates, radiusKm float64) []Box {
	angular := radiusKm / EarthRadiusKm
	if angular >= math.Pi {
		return []Box{{MinLongitude: -180, MinLatitude: -90, MaxLongitude: 180, MaxLatitude: 90}}
	}

	lat := toRadians(center.Latitude)
	minLat := center.Latitude - toDegrees(angular) - boundsPadding
	maxLat := center.Latitude + toDegrees(angular) + boundsPadding

	// круг накрывает полюс: по долготе ограничений нет
	if minLat <= -90 || maxLat >= 90 {
		return []Box{{
			MinLongitude: -180,
			MinLatitude:  math.Max(minLat, -90),
			MaxLongitude: 180,
			MaxLatitude:  math.Min(maxLat, 90),
		}}
	}

	ratio := math.Sin(angular) / math.Cos(lat)
	if ratio >= 1 {
		return []Box{{MinLongitude: -180, MinLatitude: minLat, MaxLongitude: 180, MaxLatitude: maxLat}}
	}
	dLon := toDegrees(math.Asin(ratio)) + boundsPadding
	minLon := center.Longitude - dLon
	maxLon := center.Longitude + dLon

	switch {
	case minLon < -180:
		return []Box{
			{MinLongitude: minLon + 360, MinLatitude: minLat, MaxLongitude: 180, MaxLatitude: maxLat},
			{MinLongitude: -180, MinLatitude: minLat, MaxLongitude: maxLon, MaxLatitude: maxLat},
		}
	case maxLon > 180:
		return []Box{
			{MinLongitude: minLon, MinLatitude: minLat, MaxLongitude: 180, MaxLatitude: maxLat},
			{MinLongitude: -180, MinLatitude: minLat, MaxLongitude: maxLon - 360, MaxLatitude: maxLat},
		}
	}
	return []Box{{MinLongitude: minLon, MinLatitude: minLat, MaxLongitude: maxLon, MaxLatitude: maxLat}}
}

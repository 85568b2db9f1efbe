package geo

import (
	"fmt"
	"math"

	"github.com/daniil11ru/vehicles/cli/vehicles/types"
)

// EarthRadiusKm радиус сферы, которым пользуется Redis в GEO-командах.
// Оба геоиндекса считают расстояния по нему, чтобы ответы совпадали.
const EarthRadiusKm = 6372.797560856

// PointToleranceKm допуск совпадения координат для поиска с нулевым радиусом
const PointToleranceKm = 0.001

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

func toDegrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// DistanceKm расстояние по большому кругу (формула гаверсинусов)
func DistanceKm(a, b types.Coordinates) float64 {
	lat1 := toRadians(a.Latitude)
	lat2 := toRadians(b.Latitude)
	dLat := lat2 - lat1
	dLon := toRadians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	if h > 1 {
		h = 1
	}
	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(h))
}

// EffectiveRadiusKm подменяет нулевой радиус допуском совпадения точки
func EffectiveRadiusKm(radiusKm float64) float64 {
	if radiusKm < PointToleranceKm {
		return PointToleranceKm
	}
	return radiusKm
}

// ValidateRadius допускает ноль (поиск точки), отрицательные и бесконечные радиусы отклоняет
func ValidateRadius(radiusKm float64) error {
	if !(radiusKm >= 0) || math.IsInf(radiusKm, 1) {
		return fmt.Errorf("%w: %v", types.ErrInvalidRadius, radiusKm)
	}
	return nil
}

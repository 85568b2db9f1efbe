package types

import (
	"fmt"
	"math"
)

type ProximityQuery struct {
	Center   Coordinates
	RadiusKm float64
}

func (q ProximityQuery) Validate() error {
	if err := q.Center.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}
	if math.IsNaN(q.RadiusKm) || math.IsInf(q.RadiusKm, 0) || q.RadiusKm < 0 {
		return fmt.Errorf("%w: радиус %v", ErrInvalidQuery, q.RadiusKm)
	}
	return nil
}

type ProximityHit struct {
	VehicleId   int32
	DistanceKm  float64
	Coordinates Coordinates
}

// EnrichedResult попадание геоиндекса вместе с записью реестра.
// Vehicle == nil означает, что запись в реестре не найдена.
type EnrichedResult struct {
	Hit     ProximityHit
	Vehicle *Vehicle
}

func Resolved(hit ProximityHit, vehicle Vehicle) EnrichedResult {
	return EnrichedResult{Hit: hit, Vehicle: &vehicle}
}

func Unresolved(hit ProximityHit) EnrichedResult {
	return EnrichedResult{Hit: hit}
}

func (r EnrichedResult) IsResolved() bool {
	return r.Vehicle != nil
}

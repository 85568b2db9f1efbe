// Package memory хранит позиции транспорта в R-дереве в памяти процесса.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/daniil11ru/vehicles/cli/vehicles/geo"
	"github.com/daniil11ru/vehicles/cli/vehicles/types"
	"github.com/dhconnelly/rtreego"
)

const (
	dimensions     = 2
	minBranch      = 25
	maxBranch      = 50
	pointExtentDeg = 1e-9
)

type entry struct {
	position types.VehiclePosition
	bounds   rtreego.Rect
}

func (e *entry) Bounds() rtreego.Rect {
	return e.bounds
}

// Index потокобезопасный геоиндекс: один писатель или много читателей
type Index struct {
	mu      sync.RWMutex
	tree    *rtreego.Rtree
	entries map[int32]*entry
}

func New() *Index {
	return &Index{
		tree:    rtreego.NewTree(dimensions, minBranch, maxBranch),
		entries: make(map[int32]*entry),
	}
}

func (i *Index) Upsert(ctx context.Context, vehicleId int32, longitude, latitude float64) error {
	coords := types.Coordinates{Longitude: longitude, Latitude: latitude}
	if err := coords.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	e := &entry{
		position: types.VehiclePosition{VehicleId: vehicleId, Coordinates: coords},
		bounds:   rtreego.Point{longitude, latitude}.ToRect(pointExtentDeg),
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	if previous, ok := i.entries[vehicleId]; ok {
		i.tree.Delete(previous)
	}
	i.tree.Insert(e)
	i.entries[vehicleId] = e

	return nil
}

func (i *Index) RadiusSearch(ctx context.Context, center types.Coordinates, radiusKm float64) ([]types.ProximityHit, error) {
	if err := center.Validate(); err != nil {
		return nil, err
	}
	if err := geo.ValidateRadius(radiusKm); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	radiusKm = geo.EffectiveRadiusKm(radiusKm)

	rects := make([]rtreego.Rect, 0, 2)
	for _, box := range geo.BoundingBoxes(center, radiusKm) {
		rect, err := rtreego.NewRectFromPoints(
			rtreego.Point{box.MinLongitude, box.MinLatitude},
			rtreego.Point{box.MaxLongitude, box.MaxLatitude},
		)
		if err != nil {
			return nil, fmt.Errorf("не удалось построить область поиска: %v", err)
		}
		rects = append(rects, rect)
	}

	i.mu.RLock()
	seen := make(map[int32]struct{})
	var hits []types.ProximityHit
	for _, rect := range rects {
		for _, s := range i.tree.SearchIntersect(rect) {
			e := s.(*entry)
			if _, ok := seen[e.position.VehicleId]; ok {
				continue
			}
			seen[e.position.VehicleId] = struct{}{}

			distance := geo.DistanceKm(center, e.position.Coordinates)
			if distance > radiusKm {
				continue
			}
			hits = append(hits, types.ProximityHit{
				VehicleId:   e.position.VehicleId,
				DistanceKm:  distance,
				Coordinates: e.position.Coordinates,
			})
		}
	}
	i.mu.RUnlock()

	sort.Slice(hits, func(a, b int) bool {
		if hits[a].DistanceKm != hits[b].DistanceKm {
			return hits[a].DistanceKm < hits[b].DistanceKm
		}
		return hits[a].VehicleId < hits[b].VehicleId
	})

	return hits, nil
}

func (i *Index) Positions(ctx context.Context) ([]types.VehiclePosition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	i.mu.RLock()
	positions := make([]types.VehiclePosition, 0, len(i.entries))
	for _, e := range i.entries {
		positions = append(positions, e.position)
	}
	i.mu.RUnlock()

	sort.Slice(positions, func(a, b int) bool { return positions[a].VehicleId < positions[b].VehicleId })
	return positions, nil
}

func (i *Index) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.entries)
}

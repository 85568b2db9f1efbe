package domain

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/daniil11ru/vehicles/cli/vehicles/types"
	log "github.com/sirupsen/logrus"
)

const DefaultLookupWorkers = 8

// FindNearbyVehicles ищет транспорт в радиусе и дополняет каждое попадание записью реестра.
//
// Попадание без записи в реестре не прерывает запрос: оно остаётся в ответе с пометкой
// «не сопоставлено» и только геоданными. То же происходит, если истёк таймаут отдельного
// обращения к реестру. Недоступность реестра целиком прерывает весь запрос без частичного ответа.
type FindNearbyVehicles struct {
	GeoIndex PositionSearcher
	Registry VehicleGetter

	// LookupWorkers ограничивает число одновременных обращений к реестру
	LookupWorkers int
	// LookupTimeout таймаут одного обращения к реестру, 0 без ограничения
	LookupTimeout time.Duration
}

func (d *FindNearbyVehicles) Run(ctx context.Context, query types.ProximityQuery) ([]types.EnrichedResult, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	hits, err := d.GeoIndex.RadiusSearch(ctx, query.Center, query.RadiusKm)
	if err != nil {
		return nil, err
	}

	results, err := d.join(ctx, hits)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(a, b int) bool {
		if results[a].Hit.DistanceKm != results[b].Hit.DistanceKm {
			return results[a].Hit.DistanceKm < results[b].Hit.DistanceKm
		}
		return results[a].Hit.VehicleId < results[b].Hit.VehicleId
	})

	return results, nil
}

func (d *FindNearbyVehicles) join(parent context.Context, hits []types.ProximityHit) ([]types.EnrichedResult, error) {
	results := make([]types.EnrichedResult, len(hits))
	if len(hits) == 0 {
		return results, nil
	}

	workers := d.LookupWorkers
	if workers <= 0 {
		workers = DefaultLookupWorkers
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	var (
		wg       sync.WaitGroup
		failOnce sync.Once
		failErr  error
	)
	fail := func(err error) {
		failOnce.Do(func() {
			failErr = err
			cancel()
		})
	}

	sem := make(chan struct{}, workers)

loop:
	for i := range hits {
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			break loop
		}

		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()

			result, err := d.resolve(ctx, hits[i])
			if err != nil {
				fail(err)
				return
			}
			results[i] = result
		}(i)
	}
	wg.Wait()

	if failErr != nil {
		return nil, failErr
	}
	if err := parent.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

func (d *FindNearbyVehicles) resolve(ctx context.Context, hit types.ProximityHit) (types.EnrichedResult, error) {
	lookupCtx := ctx
	if d.LookupTimeout > 0 {
		var cancel context.CancelFunc
		lookupCtx, cancel = context.WithTimeout(ctx, d.LookupTimeout)
		defer cancel()
	}

	vehicle, err := d.Registry.GetVehicle(lookupCtx, hit.VehicleId)
	switch {
	case err == nil:
		return types.Resolved(hit, vehicle), nil
	case errors.Is(err, types.ErrNotFound):
		log.WithField("vehicle_id", hit.VehicleId).Debug("Позиция транспорта без записи в реестре")
		return types.Unresolved(hit), nil
	case ctx.Err() != nil:
		return types.EnrichedResult{}, ctx.Err()
	case errors.Is(err, types.ErrRegistryUnavailable):
		return types.EnrichedResult{}, err
	default:
		log.WithFields(log.Fields{
			"vehicle_id": hit.VehicleId,
			"err":        err,
		}).Warn("Не удалось получить запись реестра, транспорт возвращён без данных реестра")
		return types.Unresolved(hit), nil
	}
}

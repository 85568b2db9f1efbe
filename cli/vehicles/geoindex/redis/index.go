// Package redis хранит позиции транспорта в GEO-наборе Redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/daniil11ru/vehicles/cli/vehicles/geo"
	"github.com/daniil11ru/vehicles/cli/vehicles/types"
	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

const DefaultKey = "vehicles_positions"

type Index struct {
	client redis.UniversalClient
	key    string
}

func New(client redis.UniversalClient, key string) *Index {
	if key == "" {
		key = DefaultKey
	}
	return &Index{client: client, key: key}
}

func unavailable(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%w: %v", types.ErrGeoIndexUnavailable, err)
}

func (i *Index) Upsert(ctx context.Context, vehicleId int32, longitude, latitude float64) error {
	coords := types.Coordinates{Longitude: longitude, Latitude: latitude}
	if err := coords.Validate(); err != nil {
		return err
	}
	// GEOADD принимает широту только в пределах проекции Меркатора
	if latitude > maxLatitude || latitude < -maxLatitude {
		return fmt.Errorf("%w: широта %v не поддерживается Redis", types.ErrInvalidCoordinate, latitude)
	}

	err := i.client.GeoAdd(ctx, i.key, &redis.GeoLocation{
		Name:      strconv.FormatInt(int64(vehicleId), 10),
		Longitude: longitude,
		Latitude:  latitude,
	}).Err()
	if err != nil {
		return unavailable(ctx, err)
	}
	return nil
}

// maxLatitude граница, которую Redis допускает в GEOADD
const maxLatitude = 85.05112878

func (i *Index) RadiusSearch(ctx context.Context, center types.Coordinates, radiusKm float64) ([]types.ProximityHit, error) {
	if err := center.Validate(); err != nil {
		return nil, err
	}
	if err := geo.ValidateRadius(radiusKm); err != nil {
		return nil, err
	}
	radiusKm = geo.EffectiveRadiusKm(radiusKm)

	locations, err := i.client.GeoRadius(ctx, i.key, center.Longitude, center.Latitude, &redis.GeoRadiusQuery{
		Radius:    radiusKm,
		Unit:      "km",
		WithCoord: true,
		WithDist:  true,
		Sort:      "ASC",
	}).Result()
	if err != nil {
		return nil, unavailable(ctx, err)
	}

	hits := make([]types.ProximityHit, 0, len(locations))
	for _, location := range locations {
		id, err := strconv.ParseInt(location.Name, 10, 32)
		if err != nil {
			log.WithField("member", location.Name).Warn("Пропущен элемент геоиндекса с некорректным идентификатором")
			continue
		}
		hits = append(hits, types.ProximityHit{
			VehicleId:  int32(id),
			DistanceKm: location.Dist,
			Coordinates: types.Coordinates{
				Longitude: location.Longitude,
				Latitude:  location.Latitude,
			},
		})
	}

	sort.SliceStable(hits, func(a, b int) bool {
		if hits[a].DistanceKm != hits[b].DistanceKm {
			return hits[a].DistanceKm < hits[b].DistanceKm
		}
		return hits[a].VehicleId < hits[b].VehicleId
	})

	return hits, nil
}

func (i *Index) Positions(ctx context.Context) ([]types.VehiclePosition, error) {
	members, err := i.client.ZRange(ctx, i.key, 0, -1).Result()
	if err != nil {
		return nil, unavailable(ctx, err)
	}
	if len(members) == 0 {
		return []types.VehiclePosition{}, nil
	}

	coords, err := i.client.GeoPos(ctx, i.key, members...).Result()
	if err != nil {
		return nil, unavailable(ctx, err)
	}

	positions := make([]types.VehiclePosition, 0, len(members))
	for n, member := range members {
		if n >= len(coords) || coords[n] == nil {
			continue
		}
		id, err := strconv.ParseInt(member, 10, 32)
		if err != nil {
			log.WithField("member", member).Warn("Пропущен элемент геоиндекса с некорректным идентификатором")
			continue
		}
		positions = append(positions, types.VehiclePosition{
			VehicleId: int32(id),
			Coordinates: types.Coordinates{
				Longitude: coords[n].Longitude,
				Latitude:  coords[n].Latitude,
			},
		})
	}

	sort.Slice(positions, func(a, b int) bool { return positions[a].VehicleId < positions[b].VehicleId })
	return positions, nil
}

func (i *Index) Ping(ctx context.Context) error {
	if err := i.client.Ping(ctx).Err(); err != nil {
		return unavailable(ctx, err)
	}
	return nil
}

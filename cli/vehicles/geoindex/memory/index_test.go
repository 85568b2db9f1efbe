package memory

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"testing"

	"github.com/daniil11ru/vehicles/cli/vehicles/geo"
	"github.com/daniil11ru/vehicles/cli/vehicles/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var berlin = types.Coordinates{Longitude: 13.4050, Latitude: 52.5200}

func ids(hits []types.ProximityHit) []int32 {
	result := make([]int32, 0, len(hits))
	for _, h := range hits {
		result = append(result, h.VehicleId)
	}
	return result
}

func TestIndex_BerlinScenario(t *testing.T) {
	ctx := context.Background()
	index := New()

	require.NoError(t, index.Upsert(ctx, 1, 13.4050, 52.5200))
	require.NoError(t, index.Upsert(ctx, 2, 13.4100, 52.5250))

	hits, err := index.RadiusSearch(ctx, berlin, 1.0)
	require.NoError(t, err)
	require.Equal(t, []int32{1, 2}, ids(hits))
	assert.InDelta(t, 0.0, hits[0].DistanceKm, 1e-9)
	assert.InDelta(t, 0.651, hits[1].DistanceKm, 0.005)
	assert.Equal(t, types.Coordinates{Longitude: 13.4100, Latitude: 52.5250}, hits[1].Coordinates)

	hits, err = index.RadiusSearch(ctx, berlin, 0.5)
	require.NoError(t, err)
	assert.Equal(t, []int32{1}, ids(hits))
}

func TestIndex_LastWriteWins(t *testing.T) {
	ctx := context.Background()
	index := New()

	require.NoError(t, index.Upsert(ctx, 1, 13.4050, 52.5200))
	require.NoError(t, index.Upsert(ctx, 1, 37.6173, 55.7558))

	hits, err := index.RadiusSearch(ctx, berlin, 10)
	require.NoError(t, err)
	assert.Empty(t, hits)

	hits, err = index.RadiusSearch(ctx, types.Coordinates{Longitude: 37.6173, Latitude: 55.7558}, 1)
	require.NoError(t, err)
	assert.Equal(t, []int32{1}, ids(hits))
	assert.Equal(t, 1, index.Len())
}

func TestIndex_UpsertIsIdempotent(t *testing.T) {
	ctx := context.Background()
	once := New()
	many := New()

	require.NoError(t, once.Upsert(ctx, 5, 13.41, 52.52))
	for i := 0; i < 5; i++ {
		require.NoError(t, many.Upsert(ctx, 5, 13.41, 52.52))
	}

	onceHits, err := once.RadiusSearch(ctx, berlin, 5)
	require.NoError(t, err)
	manyHits, err := many.RadiusSearch(ctx, berlin, 5)
	require.NoError(t, err)
	assert.Equal(t, onceHits, manyHits)

	oncePositions, _ := once.Positions(ctx)
	manyPositions, _ := many.Positions(ctx)
	assert.Equal(t, oncePositions, manyPositions)
}

func TestIndex_ZeroRadiusMatchesCenterOnly(t *testing.T) {
	ctx := context.Background()
	index := New()

	require.NoError(t, index.Upsert(ctx, 1, berlin.Longitude, berlin.Latitude))
	require.NoError(t, index.Upsert(ctx, 2, 13.4051, 52.5200))

	hits, err := index.RadiusSearch(ctx, berlin, 0)
	require.NoError(t, err)
	assert.Equal(t, []int32{1}, ids(hits))
}

func TestIndex_InvalidInput(t *testing.T) {
	ctx := context.Background()
	index := New()

	tests := []struct {
		name     string
		lng, lat float64
	}{
		{name: "Longitude out of range", lng: 181, lat: 0},
		{name: "Latitude out of range", lng: 0, lat: -91},
		{name: "NaN", lng: math.NaN(), lat: 0},
		{name: "Infinity", lng: 0, lat: math.Inf(-1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := index.Upsert(ctx, 1, tt.lng, tt.lat)
			assert.ErrorIs(t, err, types.ErrInvalidCoordinate)
		})
	}
	assert.Equal(t, 0, index.Len())

	_, err := index.RadiusSearch(ctx, berlin, -1)
	assert.ErrorIs(t, err, types.ErrInvalidRadius)
	assert.ErrorIs(t, err, types.ErrInvalidInput)

	_, err = index.RadiusSearch(ctx, types.Coordinates{Longitude: 0, Latitude: 100}, 1)
	assert.ErrorIs(t, err, types.ErrInvalidCoordinate)
}

func TestIndex_RadiusSearchMatchesBruteForce(t *testing.T) {
	ctx := context.Background()
	index := New()
	rnd := rand.New(rand.NewSource(7))

	positions := make(map[int32]types.Coordinates)
	for id := int32(1); id <= 3000; id++ {
		c := types.Coordinates{
			Longitude: rnd.Float64()*360 - 180,
			Latitude:  rnd.Float64()*180 - 90,
		}
		positions[id] = c
		require.NoError(t, index.Upsert(ctx, id, c.Longitude, c.Latitude))
	}

	centers := []types.Coordinates{
		berlin,
		{Longitude: 179.8, Latitude: -5},
		{Longitude: -179.8, Latitude: 5},
		{Longitude: 0, Latitude: 88},
		{Longitude: 100, Latitude: -87},
	}
	for _, center := range centers {
		for _, radius := range []float64{50, 500, 1500, 4000} {
			expected := make(map[int32]float64)
			for id, c := range positions {
				if d := geo.DistanceKm(center, c); d <= radius {
					expected[id] = d
				}
			}

			hits, err := index.RadiusSearch(ctx, center, radius)
			require.NoError(t, err)
			assert.Len(t, hits, len(expected), "center %+v radius %v", center, radius)
			for i, hit := range hits {
				d, ok := expected[hit.VehicleId]
				if assert.True(t, ok, "unexpected vehicle %d", hit.VehicleId) {
					assert.InDelta(t, d, hit.DistanceKm, 1e-9)
				}
				if i > 0 {
					assert.LessOrEqual(t, hits[i-1].DistanceKm, hit.DistanceKm)
				}
			}
		}
	}
}

func TestIndex_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	index := New()

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				id := int32(worker*1000 + i%20)
				_ = index.Upsert(ctx, id, 13.4+float64(i%10)*0.001, 52.52)
				hits, err := index.RadiusSearch(ctx, berlin, 2)
				assert.NoError(t, err)
				for _, h := range hits {
					assert.InDelta(t, 52.52, h.Coordinates.Latitude, 1e-9)
				}
			}
		}(w)
	}
	wg.Wait()

	assert.Equal(t, 8*20, index.Len())
}

func TestIndex_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	index := New()
	assert.ErrorIs(t, index.Upsert(ctx, 1, 0, 0), context.Canceled)

	_, err := index.RadiusSearch(ctx, berlin, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

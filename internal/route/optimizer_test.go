package route_test

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sea-companion/internal/domain"
	"github.com/sea-companion/internal/geometry"
	"github.com/sea-companion/internal/route"
)

func pos(lat, lon float64) domain.Position {
	return domain.Position{Lat: lat, Lon: lon}
}

func TestOptimizeOrder_NearestNeighbour(t *testing.T) {
	order := route.OptimizeOrder(pos(0, 0), []domain.Position{pos(0, 10), pos(0, 1), pos(0, 5)})
	assert.Equal(t, []int{1, 2, 0}, order)
}

func TestOptimizeOrder_EdgeCases(t *testing.T) {
	empty := route.OptimizeOrder(pos(0, 0), nil)
	require.NotNil(t, empty)
	assert.Empty(t, empty)

	assert.Equal(t, []int{0}, route.OptimizeOrder(pos(10, 10), []domain.Position{pos(0, 0)}))
}

func TestOptimizeOrder_TieBreakLowestIndex(t *testing.T) {
	// all three are exactly one degree away from the origin
	points := []domain.Position{pos(0, 1), pos(0, -1), pos(1, 0)}
	assert.Equal(t, []int{0, 2, 1}, route.OptimizeOrder(pos(0, 0), points))

	duplicates := []domain.Position{pos(0, 5), pos(0, 5), pos(0, 5)}
	assert.Equal(t, []int{0, 1, 2}, route.OptimizeOrder(pos(0, 0), duplicates))
}

func TestOptimizeOrder_StartAtFirstWaypoint(t *testing.T) {
	points := []domain.Position{pos(19.0760, 72.8777), pos(19.14, 72.95), pos(19.10, 72.90)}
	assert.Equal(t, []int{0, 2, 1}, route.OptimizeOrder(points[0], points))
}

func TestOptimizeOrder_PermutationAndDeterminism(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for n := 0; n < 40; n++ {
		points := make([]domain.Position, n)
		for i := range points {
			points[i] = pos(rng.Float64()*2+18, rng.Float64()*2+72)
		}
		start := pos(19, 73)

		order := route.OptimizeOrder(start, points)
		require.Len(t, order, n)

		sorted := append([]int(nil), order...)
		sort.Ints(sorted)
		for i, idx := range sorted {
			assert.Equal(t, i, idx)
		}

		assert.Equal(t, order, route.OptimizeOrder(start, points))
	}
}

func TestPathLengthKm(t *testing.T) {
	points := []domain.Position{pos(0, 10), pos(0, 1), pos(0, 5)}
	order := route.OptimizeOrder(pos(0, 0), points)

	want := geometry.DistanceKm(pos(0, 0), pos(0, 10))
	assert.InDelta(t, want, route.PathLengthKm(pos(0, 0), points, order), 1e-6)

	worse := route.PathLengthKm(pos(0, 0), points, []int{0, 1, 2})
	assert.Greater(t, worse, route.PathLengthKm(pos(0, 0), points, order))
	assert.Equal(t, 0.0, route.PathLengthKm(pos(0, 0), points, nil))
}

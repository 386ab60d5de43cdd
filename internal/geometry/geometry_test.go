package geometry_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sea-companion/internal/domain"
	"github.com/sea-companion/internal/geometry"
)

func pos(lat, lon float64) domain.Position {
	return domain.Position{Lat: lat, Lon: lon}
}

var unitSquare = []domain.Position{pos(0, 0), pos(1, 0), pos(1, 1), pos(0, 1)}

// concave "C" shape
var concave = []domain.Position{
	pos(0, 0), pos(0, 3), pos(1, 3), pos(1, 1), pos(2, 1), pos(2, 3), pos(3, 3), pos(3, 0),
}

func rotate(poly []domain.Position, k int) []domain.Position {
	out := make([]domain.Position, len(poly))
	for i := range poly {
		out[i] = poly[(i+k)%len(poly)]
	}
	return out
}

func TestDistanceKm_KnownValues(t *testing.T) {
	oneDegree := 6371.0 * math.Pi / 180

	assert.InDelta(t, oneDegree, geometry.DistanceKm(pos(0, 0), pos(0, 1)), 1e-9)
	assert.InDelta(t, oneDegree, geometry.DistanceKm(pos(0, 0), pos(1, 0)), 1e-9)
	assert.InDelta(t, 6371.0*math.Pi, geometry.DistanceKm(pos(0, 0), pos(0, 180)), 1e-6)

	// Mumbai harbour -> Gateway of India, a few km
	d := geometry.DistanceKm(pos(19.0760, 72.8777), pos(18.97, 72.82))
	assert.Greater(t, d, 12.0)
	assert.Less(t, d, 14.0)
}

func TestDistanceKm_SymmetricAndZero(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		a := pos(rng.Float64()*180-90, rng.Float64()*360-180)
		b := pos(rng.Float64()*180-90, rng.Float64()*360-180)

		assert.Equal(t, geometry.DistanceKm(a, b), geometry.DistanceKm(b, a))
		assert.Equal(t, 0.0, geometry.DistanceKm(a, a))
	}
}

func TestContainsPoint_UnitSquare(t *testing.T) {
	tests := []struct {
		name     string
		point    domain.Position
		expected bool
	}{
		{"center", pos(0.5, 0.5), true},
		{"outside", pos(2, 2), false},
		{"left of square", pos(0.5, -0.1), false},
		{"on bottom edge", pos(0, 0.5), true},
		{"on top edge", pos(1, 0.5), true},
		{"on right edge", pos(0.5, 1), true},
		{"on vertex", pos(1, 1), true},
		{"just outside top edge", pos(1.0000001, 0.5), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, geometry.ContainsPoint(unitSquare, tt.point))
		})
	}
}

func TestContainsPoint_Degenerate(t *testing.T) {
	assert.False(t, geometry.ContainsPoint(nil, pos(0, 0)))
	assert.False(t, geometry.ContainsPoint([]domain.Position{pos(0, 0), pos(1, 1)}, pos(0.5, 0.5)))
	// three vertices, but one is the explicit closing duplicate
	assert.False(t, geometry.ContainsPoint([]domain.Position{pos(0, 0), pos(1, 1), pos(0, 0)}, pos(0.5, 0.5)))
}

func TestContainsPoint_ExplicitlyClosedRing(t *testing.T) {
	closed := append(append([]domain.Position{}, unitSquare...), unitSquare[0])

	assert.True(t, geometry.ContainsPoint(closed, pos(0.5, 0.5)))
	assert.False(t, geometry.ContainsPoint(closed, pos(2, 2)))
}

func TestContainsPoint_Concave(t *testing.T) {
	assert.True(t, geometry.ContainsPoint(concave, pos(0.5, 2)))
	assert.True(t, geometry.ContainsPoint(concave, pos(2.5, 2)))
	assert.False(t, geometry.ContainsPoint(concave, pos(1.5, 2)), "notch of the C is outside")
	assert.True(t, geometry.ContainsPoint(concave, pos(1.5, 0.5)))
}

func TestContainsPoint_RotationInvariant(t *testing.T) {
	closedSquare := append(append([]domain.Position{}, unitSquare...), unitSquare[0])
	polygons := map[string][]domain.Position{
		"square":        unitSquare,
		"closed square": closedSquare,
		"concave":       concave,
	}

	for name, poly := range polygons {
		t.Run(name, func(t *testing.T) {
			for lat := -0.5; lat <= 3.5; lat += 0.25 {
				for lon := -0.5; lon <= 3.5; lon += 0.25 {
					p := pos(lat, lon)
					want := geometry.ContainsPoint(poly, p)
					for k := 1; k < len(poly); k++ {
						assert.Equal(t, want, geometry.ContainsPoint(rotate(poly, k), p),
							"rotation %d changed result at %v", k, p)
					}
				}
			}
		})
	}
}

func TestNearestDistanceToRing(t *testing.T) {
	t.Run("empty polygon", func(t *testing.T) {
		assert.Equal(t, 0.0, geometry.NearestDistanceToRing(nil, pos(1, 1)))
	})

	t.Run("single vertex", func(t *testing.T) {
		p := pos(0, 1)
		assert.InDelta(t, geometry.DistanceKm(p, pos(0, 0)),
			geometry.NearestDistanceToRing([]domain.Position{pos(0, 0)}, p), 1e-9)
	})

	t.Run("outside, perpendicular to an edge", func(t *testing.T) {
		p := pos(0.5, 2)
		want := geometry.DistanceKm(p, pos(0.5, 1))
		assert.InDelta(t, want, geometry.NearestDistanceToRing(unitSquare, p), 1e-3)
	})

	t.Run("outside, nearest is a vertex", func(t *testing.T) {
		p := pos(2, 2)
		want := geometry.DistanceKm(p, pos(1, 1))
		assert.InDelta(t, want, geometry.NearestDistanceToRing(unitSquare, p), 1e-6)
	})

	t.Run("inside", func(t *testing.T) {
		p := pos(0.5, 0.9)
		want := geometry.DistanceKm(p, pos(0.5, 1))
		assert.InDelta(t, want, geometry.NearestDistanceToRing(unitSquare, p), 1e-3)
	})

	t.Run("on edge", func(t *testing.T) {
		assert.InDelta(t, 0, geometry.NearestDistanceToRing(unitSquare, pos(0, 0.5)), 1e-9)
	})

	t.Run("closing edge is measured", func(t *testing.T) {
		open := []domain.Position{pos(0, 0), pos(1, 0), pos(1, 1), pos(0, 1)}
		p := pos(-0.5, 0.5)
		want := geometry.DistanceKm(p, pos(0, 0.5))
		assert.InDelta(t, want, geometry.NearestDistanceToRing(open, p), 1e-3)
	})
}

func TestBounds(t *testing.T) {
	box := geometry.Bounds(concave)
	assert.Equal(t, domain.BoundingBox{MinLat: 0, MinLon: 0, MaxLat: 3, MaxLon: 3}, box)
	assert.Equal(t, domain.BoundingBox{}, geometry.Bounds(nil))
}

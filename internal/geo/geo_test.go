package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistanceMeters(t *testing.T) {
	tests := []struct {
		name     string
		a        Point
		b        Point
		expected float64
		delta    float64
	}{
		{
			name:     "same point",
			a:        Point{Lat: -23.5505, Lng: -46.6333},
			b:        Point{Lat: -23.5505, Lng: -46.6333},
			expected: 0,
			delta:    0.001,
		},
		{
			name:     "sao paulo to rio",
			a:        Point{Lat: -23.5505, Lng: -46.6333},
			b:        Point{Lat: -22.9068, Lng: -43.1729},
			expected: 360750,
			delta:    2000,
		},
		{
			name:     "one degree of latitude",
			a:        Point{Lat: 0, Lng: 0},
			b:        Point{Lat: 1, Lng: 0},
			expected: 111195,
			delta:    100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, DistanceMeters(tt.a, tt.b), tt.delta)
		})
	}
}

func TestDistanceMonotonicity(t *testing.T) {
	origin := Point{Lat: -23.5505, Lng: -46.6333}
	near := Point{Lat: -23.56, Lng: -46.64}
	far := Point{Lat: -23.70, Lng: -46.80}

	dNear := DistanceMeters(origin, near)
	dFar := DistanceMeters(origin, far)

	require.Less(t, dNear, dFar)
}

func TestAnnotate(t *testing.T) {
	origin := Point{Lat: 0, Lng: 0}
	lat, lng := 1.0, 0.0

	t.Run("no origin", func(t *testing.T) {
		assert.Nil(t, Annotate(nil, &lat, &lng))
	})

	t.Run("no stored point", func(t *testing.T) {
		assert.Nil(t, Annotate(&origin, nil, nil))
		assert.Nil(t, Annotate(&origin, &lat, nil))
	})

	t.Run("both present", func(t *testing.T) {
		d := Annotate(&origin, &lat, &lng)
		require.NotNil(t, d)
		assert.InDelta(t, 111195, *d, 100)
	})
}

func TestWithinRadiusBoundary(t *testing.T) {
	origin := Point{Lat: 0, Lng: 0}
	lat, lng := 1.0, 0.0

	exact := DistanceMeters(origin, Point{Lat: lat, Lng: lng}) / 1000

	// The boundary is inclusive.
	assert.True(t, WithinRadius(origin, &lat, &lng, exact))
	assert.True(t, WithinRadius(origin, &lat, &lng, exact+0.001))
	assert.False(t, WithinRadius(origin, &lat, &lng, exact-0.001))
}

func TestWithinRadiusNoPoint(t *testing.T) {
	origin := Point{Lat: 0, Lng: 0}

	// Listings without coordinates never match a radius-bounded search.
	assert.False(t, WithinRadius(origin, nil, nil, math.MaxFloat64))
}

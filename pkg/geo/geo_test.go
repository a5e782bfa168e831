package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDistanceSamePointReturnsZero(t *testing.T) {
	require.Equal(t, 0.0, Distance(41.0, 29.0, 41.0, 29.0))
}

func TestDistanceSymmetry(t *testing.T) {
	pairs := [][4]float64{
		{41.0370, 28.9850, 40.9903, 29.0291},
		{-33.8688, 151.2093, 51.5074, -0.1278},
		{0, 0, 0, 180},
		{89.9, -179.9, -89.9, 179.9},
	}

	for _, p := range pairs {
		ab := Distance(p[0], p[1], p[2], p[3])
		ba := Distance(p[2], p[3], p[0], p[1])
		require.InDelta(t, ab, ba, 1e-6)
	}
}

func TestDistanceKnownIstanbul(t *testing.T) {
	// Taksim to Kadikoy, roughly 5.5 km.
	dist := Distance(41.0370, 28.9850, 40.9903, 29.0291)
	require.Greater(t, dist, 5000.0)
	require.Less(t, dist, 6500.0)
}

func TestDistanceAntipodalPoints(t *testing.T) {
	// Pole to pole, half the Earth's circumference.
	dist := Distance(90, 0, -90, 0)
	require.InDelta(t, 20_015_086, dist, 1000)
}

func TestDistanceShort(t *testing.T) {
	// Two points about 100 m apart along a meridian.
	dist := Distance(41.0370, 28.9850, 41.0379, 28.9850)
	require.Greater(t, dist, 90.0)
	require.Less(t, dist, 110.0)
}

func TestDistanceFiniteNonNegative(t *testing.T) {
	coords := [][4]float64{
		{90, 180, -90, -180},
		{45, 45, 45, 45.0000001},
		{12.5, -70.3, -33.1, 151.2},
	}

	for _, p := range coords {
		d := Distance(p[0], p[1], p[2], p[3])
		require.False(t, math.IsNaN(d))
		require.False(t, math.IsInf(d, 0))
		require.GreaterOrEqual(t, d, 0.0)
	}
}

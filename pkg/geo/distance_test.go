package geo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var cities = []Coordinate{
	{Lat: 51.5074, Lng: -0.1278},   // London
	{Lat: 48.8566, Lng: 2.3522},    // Paris
	{Lat: -33.8688, Lng: 151.2093}, // Sydney
	{Lat: 40.7128, Lng: -74.0060},  // New York
	{Lat: 0, Lng: 0},
	{Lat: 90, Lng: 180},
}

func TestDistanceToSelfIsZero(t *testing.T) {
	for _, c := range cities {
		require.InDelta(t, 0, DistanceKm(c, c), 1e-9)
	}
}

func TestDistanceIsSymmetric(t *testing.T) {
	for _, a := range cities {
		for _, b := range cities {
			require.InDelta(t, DistanceKm(a, b), DistanceKm(b, a), 1e-9)
		}
	}
}

func TestDistanceKnownPairs(t *testing.T) {
	require.InDelta(t, 343.5, DistanceKm(cities[0], cities[1]), 1.0)
	require.InDelta(t, 5570, DistanceKm(cities[0], cities[3]), 10)

	// a quarter of the equator
	require.InDelta(t, EarthRadiusKm*3.14159265/2, DistanceKm(Coordinate{}, Coordinate{Lng: 90}), 0.01)
}

package geo

import "math"

const EarthRadiusKm = 6371.0

type Coordinate struct {
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
	Lng float64 `json:"lng" validate:"min=-180,max=180"`
}

// DistanceKm is the haversine great-circle distance between a and b.
// Out-of-range coordinates are not validated.
func DistanceKm(a, b Coordinate) float64 {

	dLat := toRad(b.Lat - a.Lat)
	dLng := toRad(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Lat))*math.Cos(toRad(b.Lat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	return EarthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}

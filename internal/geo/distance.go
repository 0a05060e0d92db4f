// Package geo provides the great-circle distance used by venue proximity.
package geo

import "math"

// EarthRadiusMeters is the mean Earth radius used by the haversine formula.
const EarthRadiusMeters = 6371000.0

// Distance returns the haversine great-circle distance in meters between two
// points given in degrees.
func Distance(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMeters * c
}

// RoundedDistance returns Distance rounded to whole meters, the form exposed
// on venue listings.
func RoundedDistance(lat1, lng1, lat2, lng2 float64) int {
	return int(math.Round(Distance(lat1, lng1, lat2, lng2)))
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}

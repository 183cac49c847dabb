package geo

import "math"

const earthRadiusM = 6371000

// DistanceM returns the great-circle distance in meters between two
// latitude/longitude points, using the haversine formula. Accuracy is well
// within what a site geofence check needs.
func DistanceM(lat1, lng1, lat2, lng2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusM * c
}

// WithinRadius reports whether a point lies inside a circular geofence.
func WithinRadius(lat, lng, centerLat, centerLng, radiusM float64) bool {
	return DistanceM(lat, lng, centerLat, centerLng) <= radiusM
}

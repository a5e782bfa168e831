// Package geo provides great-circle distance helpers shared by the nearby
// location query and the claim geofence check.
package geo

import "math"

// EarthRadiusM is the mean Earth radius in meters.
const EarthRadiusM = 6_371_000

// Distance returns the great-circle distance in meters between two
// coordinates, computed with the Haversine formula. Inputs are degrees;
// callers validate that latitudes are within [-90, 90] and longitudes within
// [-180, 180]. The result is always finite and non-negative for in-range
// inputs, and Distance(a, b) == Distance(b, a).
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := radians(lat1)
	phi2 := radians(lat2)
	deltaPhi := radians(lat2 - lat1)
	deltaLambda := radians(lon2 - lon1)

	sinPhi := math.Sin(deltaPhi / 2)
	sinLambda := math.Sin(deltaLambda / 2)

	a := sinPhi*sinPhi + math.Cos(phi1)*math.Cos(phi2)*sinLambda*sinLambda
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusM * c
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

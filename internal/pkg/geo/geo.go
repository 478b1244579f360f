package geo

import "math"

// EarthRadiusM is the mean Earth radius in meters
const EarthRadiusM = 6371000

// DistanceMeters computes the great-circle distance between two
// points given in signed decimal degrees, using the Haversine formula.
// Inputs are not range-checked; out-of-range coordinates produce a
// finite but meaningless distance.
func DistanceMeters(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusM * c
}

// WithinRadius reports whether distance falls inside the fence.
// The boundary is inclusive: distance == radius counts as inside.
func WithinRadius(distance, radius float64) bool {
	return distance <= radius
}

package geo

import "math"

const earthRadiusKm = 6371.0

// Distance returns the great-circle distance in kilometers between two
// lat/lon points using the haversine formula. Symmetric by
// construction.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := degreesToRadians(lat2 - lat1)
	dLon := degreesToRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(degreesToRadians(lat1))*math.Cos(degreesToRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// EstimateETA converts a straight-line distance to a driving estimate
// in minutes. The 1.3 factor approximates road routing over the
// straight line; 55 km/h approximates a mixed urban/highway average.
// Floored at 1 minute.
func EstimateETA(distanceKm float64) int {
	eta := int(math.Round(distanceKm * 1.3 / 55.0 * 60.0))
	if eta < 1 {
		return 1
	}
	return eta
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

package candidate

import "math"

const earthRadiusKm = 6371.0

// HaversineKm returns the great-circle distance between two points in kilometers.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLng := toRadians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// TravelMinutes estimates travel time between two points at the given speed.
// Straight-line distance only, no routing.
func TravelMinutes(lat1, lng1, lat2, lng2, speedKmh float64) int {
	if speedKmh <= 0 {
		return 0
	}
	// Zero coordinates mean the provider gave no location; skip the estimate
	// rather than computing a bogus trip from Null Island.
	if (lat1 == 0 && lng1 == 0) || (lat2 == 0 && lng2 == 0) {
		return 0
	}
	distanceKm := HaversineKm(lat1, lng1, lat2, lng2)
	return int(math.Round(distanceKm / speedKmh * 60))
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// package geo provides the great-circle distance used for search ranking.
package geo

import (
	"math"

	"github.com/comida-compartida/donation-service/internal/domain"
)

// earthRadiusKm is the mean radius of the spherical-earth approximation.
const earthRadiusKm = 6371

// DistanceKm returns the haversine distance between two coordinates in
// kilometers. Pure and symmetric; callers must reject NaN coordinates upstream.
func DistanceKm(a, b domain.Coordinates) float64 {
	dLat := radians(b.Lat - a.Lat)
	dLng := radians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(a.Lat))*math.Cos(radians(b.Lat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

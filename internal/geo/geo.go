// Package geo computes great-circle distances and travel-time estimates.
package geo

import (
	"math"
	"strconv"

	"github.com/karthikbm/lifeline/internal/models"
)

const earthRadiusKm = 6371

// DefaultSpeedKmh is the assumed responder speed when none is configured.
const DefaultSpeedKmh = 60

// DistanceKm calculates the haversine distance in kilometers between two
// coordinates. Missing or out-of-range coordinates yield 0 rather than an
// error; callers render a zero distance as "not applicable".
func DistanceKm(a, b models.Coordinate) float64 {
	if a.IsZero() || b.IsZero() || !a.Valid() || !b.Valid() {
		return 0
	}

	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	deltaLat := (b.Latitude - a.Latitude) * math.Pi / 180
	deltaLng := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(deltaLng/2)*math.Sin(deltaLng/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

// EtaMinutes converts a distance to an estimated travel time in minutes at
// the given speed, rounded to one decimal place. Any non-zero trip reports
// at least one minute. A zero distance yields 0, which stands for "not
// applicable" rather than an instant arrival.
func EtaMinutes(distanceKm, speedKmh float64) float64 {
	if distanceKm <= 0 || speedKmh <= 0 {
		return 0
	}

	eta := math.Round(distanceKm/speedKmh*60*10) / 10
	if eta < 1 {
		eta = 1
	}
	return eta
}

// FormatEta renders an ETA for display: "N/A" for the zero sentinel,
// otherwise the minimal decimal form with a unit suffix ("1 mins",
// "5.3 mins").
func FormatEta(etaMinutes float64) string {
	if etaMinutes <= 0 {
		return "N/A"
	}
	return strconv.FormatFloat(etaMinutes, 'f', -1, 64) + " mins"
}

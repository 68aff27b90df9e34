// Package geo computes great-circle distances between coordinates.
package geo

import (
	"fmt"
	"math"

	"bloodlink/pkg/types"
)

const EarthRadiusKm = 6371.0

type Point struct {
	Latitude  float64
	Longitude float64
}

// Validate checks that the point is finite and within latitude/longitude bounds.
// Distance itself accepts any finite pair; range checks are the caller's job.
func (p Point) Validate() error {
	if math.IsNaN(p.Latitude) || math.IsInf(p.Latitude, 0) || p.Latitude < -90 || p.Latitude > 90 {
		return fmt.Errorf("%w: latitude %v must be between -90 and 90", types.ErrInvalidArgument, p.Latitude)
	}
	if math.IsNaN(p.Longitude) || math.IsInf(p.Longitude, 0) || p.Longitude < -180 || p.Longitude > 180 {
		return fmt.Errorf("%w: longitude %v must be between -180 and 180", types.ErrInvalidArgument, p.Longitude)
	}
	return nil
}

// Distance returns the Haversine surface distance between a and b in kilometers.
func Distance(a, b Point) float64 {
	dLat := radians(b.Latitude - a.Latitude)
	dLon := radians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(a.Latitude))*math.Cos(radians(b.Latitude))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

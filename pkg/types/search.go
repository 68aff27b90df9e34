package types

// GeoQuery describes a radius search around an origin point.
type GeoQuery struct {
	Latitude   float64
	Longitude  float64
	RadiusKm   float64
	BloodGroup *BloodGroup

	// AvailableOnly drops donors that have marked themselves unavailable.
	AvailableOnly bool
}

type SearchResult struct {
	*Donor
	DistanceKm float64 `json:"distanceKm"`
}

package weather

import (
	"time"
)

// Location is a course for which we track wind.
// City/Country must be provided; Lat/Lon are filled in when known.
type Location struct {
	City    string   `json:"city"`
	Country string   `json:"country"`
	Lat     *float64 `json:"lat,omitempty"`
	Lon     *float64 `json:"lon,omitempty"`
}

// Key returns a canonical string key for indexing this location in stores.
func (l Location) Key() string {
	return l.City + ":" + l.Country
}

// WindSnapshot is the aggregated wind at a point in time.
type WindSnapshot struct {
	Location     Location  `json:"location"`
	Timestamp    time.Time `json:"timestamp"` // always UTC
	SpeedMPH     float64   `json:"speedMph"`
	GustMPH      float64   `json:"gustMph,omitempty"`
	DirectionDeg float64   `json:"directionDeg"`
	Heading      string    `json:"heading"`

	// Providers contributing to this snapshot.
	Providers []ProviderContribution `json:"providers,omitempty"`
}

// ProviderContribution describes data coming from a single provider used in aggregation.
type ProviderContribution struct {
	ProviderName string    `json:"provider"`
	Timestamp    time.Time `json:"timestamp"`
}

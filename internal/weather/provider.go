package weather

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when no wind data is available for a location.
var ErrNotFound = errors.New("no wind data for location")

// ProviderReading is a single provider's normalized wind reading.
type ProviderReading struct {
	ProviderName string
	Timestamp    time.Time

	WindSpeedMPH     float64
	WindGustMPH      float64
	WindDirectionDeg float64
}

// Provider abstracts a weather data source (e.g. OpenWeatherMap, WeatherAPI, Open-Meteo).
type Provider interface {
	Name() string
	Fetch(ctx context.Context, loc Location) (ProviderReading, error)
}

// Store is the contract the in-memory store (and any future persistent store) must satisfy.
type Store interface {
	SaveSnapshot(loc Location, snapshot WindSnapshot)
	GetLatest(loc Location) (WindSnapshot, error)
	GetRange(loc Location, from, to time.Time) ([]WindSnapshot, error)
}

// FetchRecorder observes the outcome of each provider call.
type FetchRecorder interface {
	ObserveFetch(provider string, err error)
}

package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/kelvins/geocoder"
	"github.com/sony/gobreaker"

	"github.com/i474232898/golf-club-recommender/internal/weather"
)

// Geocoder resolves a course to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, loc weather.Location) (lat, lon float64, err error)
}

// GoogleGeocoder resolves locations through the Google Geocoding API.
type GoogleGeocoder struct{}

// NewGoogleGeocoder sets the package-level API key used by kelvins/geocoder.
func NewGoogleGeocoder(apiKey string) *GoogleGeocoder {
	geocoder.ApiKey = apiKey
	return &GoogleGeocoder{}
}

func (g *GoogleGeocoder) Geocode(ctx context.Context, loc weather.Location) (float64, float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, 0, err
	}
	res, err := geocoder.Geocoding(geocoder.Address{
		City:    loc.City,
		Country: loc.Country,
	})
	if err != nil {
		return 0, 0, fmt.Errorf("geocoding %s: %w", loc.Key(), err)
	}
	return res.Latitude, res.Longitude, nil
}

// OpenMeteoProvider implements the weather.Provider interface for Open-Meteo.
type OpenMeteoProvider struct {
	name     string
	baseURL  string
	httpCfg  HTTPClientConfig
	circuit  *gobreaker.CircuitBreaker
	geocoder Geocoder
}

// NewOpenMeteoProvider needs a geocoder for locations without coordinates;
// g may be nil when every location carries lat/lon.
func NewOpenMeteoProvider(client *http.Client, g Geocoder) *OpenMeteoProvider {
	return &OpenMeteoProvider{
		name:     "openmeteo",
		baseURL:  "https://api.open-meteo.com/v1/forecast",
		httpCfg:  defaultHTTPConfig(client),
		circuit:  newCircuitBreaker("openmeteo"),
		geocoder: g,
	}
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

func (p *OpenMeteoProvider) Fetch(ctx context.Context, loc weather.Location) (weather.ProviderReading, error) {
	var lat, lon float64
	switch {
	case loc.Lat != nil && loc.Lon != nil:
		lat, lon = *loc.Lat, *loc.Lon
	case p.geocoder != nil:
		var err error
		lat, lon, err = p.geocoder.Geocode(ctx, loc)
		if err != nil {
			return weather.ProviderReading{}, err
		}
	default:
		return weather.ProviderReading{}, fmt.Errorf("openmeteo requires latitude and longitude")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", fmt.Sprintf("%f", lat))
		values.Set("longitude", fmt.Sprintf("%f", lon))
		values.Set("current_weather", "true")
		values.Set("windspeed_unit", "mph")

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return weather.ProviderReading{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		CurrentWeather struct {
			WindSpeed     float64 `json:"windspeed"`
			WindDirection float64 `json:"winddirection"`
			Time          string  `json:"time"`
		} `json:"current_weather"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.ProviderReading{}, err
	}

	// Open-Meteo reports ISO8601 without seconds or zone, e.g. 2026-06-01T10:15.
	ts, err := time.Parse("2006-01-02T15:04", payload.CurrentWeather.Time)
	if err != nil {
		ts = time.Time{}
	}

	return weather.ProviderReading{
		ProviderName:     p.name,
		Timestamp:        nowIfZero(ts),
		WindSpeedMPH:     payload.CurrentWeather.WindSpeed,
		WindDirectionDeg: payload.CurrentWeather.WindDirection,
	}, nil
}

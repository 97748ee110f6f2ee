package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/i474232898/golf-club-recommender/internal/club"
	"github.com/i474232898/golf-club-recommender/internal/weather"
)

type AppConfig struct {
	OpenWeatherAPIKey string
	WeatherAPIKey     string
	GeocoderAPIKey    string

	// HTTPTimeout bounds each outbound provider request.
	HTTPTimeout time.Duration

	// FetchInterval controls how often we refresh wind for each course.
	FetchInterval time.Duration

	// Courses whose wind is refreshed in the background.
	Courses []weather.Location

	// In-memory store retention.
	StoreMaxHistory int           // max number of snapshots per course (0 = unlimited)
	StoreMaxAge     time.Duration // max age of snapshots (0 = unlimited)

	Port string

	Policy        club.Policy
	ClubTableFile string // empty = built-in bag
	ShotLogPath   string // empty = shot logging disabled
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.WeatherAPIKey = os.Getenv("WEATHERAPI_API_KEY")
	cfg.GeocoderAPIKey = os.Getenv("GEOCODER_API_KEY")

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	// Scheduler interval: default 15 minutes.
	if cfg.FetchInterval, err = getenvDuration("FETCH_INTERVAL", "15m"); err != nil {
		return nil, err
	}

	// Store retention.
	// Roughly 24h at 15-minute intervals.
	if cfg.StoreMaxHistory, err = getenvInt("STORE_MAX_HISTORY", 96); err != nil {
		return nil, err
	}
	if cfg.StoreMaxAge, err = getenvDuration("STORE_MAX_AGE", "24h"); err != nil {
		return nil, err
	}
	cfg.Port = getenvDefault("PORT", "8080")

	courses, err := loadCourses()
	if err != nil {
		return nil, err
	}
	cfg.Courses = courses

	policy, err := loadPolicy()
	if err != nil {
		return nil, err
	}
	cfg.Policy = policy

	cfg.ClubTableFile = os.Getenv("CLUB_TABLE_FILE")
	cfg.ShotLogPath = getenvDefault("SHOT_LOG_PATH", "data/shots.csv")
	if strings.EqualFold(cfg.ShotLogPath, "off") {
		cfg.ShotLogPath = ""
	}

	return cfg, nil
}

// Table returns the configured club table.
func (c *AppConfig) Table() (club.Table, error) {
	if c.ClubTableFile == "" {
		return club.DefaultTable(), nil
	}
	return club.LoadTable(c.ClubTableFile)
}

func loadPolicy() (club.Policy, error) {
	p := club.DefaultPolicy()

	var err error
	if p.SlopeBoundDegrees, err = getenvFloat("SLOPE_BOUND_DEGREES", p.SlopeBoundDegrees); err != nil {
		return p, err
	}
	p.SlopeModel = club.SlopeModel(strings.ToLower(getenvDefault("SLOPE_MODEL", string(p.SlopeModel))))
	p.WindUnit = club.WindUnit(strings.ToLower(getenvDefault("WIND_UNIT", string(p.WindUnit))))
	if p.ApplyTerrain, err = getenvBool("APPLY_TERRAIN", p.ApplyTerrain); err != nil {
		return p, err
	}
	if p.Terrain.Rough, err = getenvFloat("TERRAIN_ROUGH", p.Terrain.Rough); err != nil {
		return p, err
	}
	if p.Terrain.Sand, err = getenvFloat("TERRAIN_SAND", p.Terrain.Sand); err != nil {
		return p, err
	}

	if err := p.Check(); err != nil {
		return p, fmt.Errorf("invalid club policy: %w", err)
	}
	return p, nil
}

func loadCourses() ([]weather.Location, error) {
	city := strings.TrimSpace(os.Getenv("COURSE_CITY"))
	country := strings.TrimSpace(os.Getenv("COURSE_COUNTRY"))
	if city == "" && country == "" {
		return nil, nil
	}
	cities := strings.Split(city, ",")
	countries := strings.Split(country, ",")
	if len(cities) != len(countries) {
		return nil, fmt.Errorf("number of cities and countries must be the same")
	}
	var locs []weather.Location
	for i := range cities {
		locs = append(locs, weather.Location{
			City:    strings.TrimSpace(cities[i]),
			Country: strings.TrimSpace(countries[i]),
		})
	}

	return locs, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getenvFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func getenvBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpapi "github.com/i474232898/golf-club-recommender/internal/api/http"
	"github.com/i474232898/golf-club-recommender/internal/club"
	"github.com/i474232898/golf-club-recommender/internal/config"
	"github.com/i474232898/golf-club-recommender/internal/observability"
	"github.com/i474232898/golf-club-recommender/internal/scheduler"
	"github.com/i474232898/golf-club-recommender/internal/shotlog"
	"github.com/i474232898/golf-club-recommender/internal/store"
	"github.com/i474232898/golf-club-recommender/internal/weather"
	"github.com/i474232898/golf-club-recommender/internal/weather/providers"
)

func main() {
	// Load configuration (.env is read inside).
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	table, err := cfg.Table()
	if err != nil {
		log.Fatalf("failed to load club table: %v", err)
	}
	selector, err := club.NewSelector(cfg.Policy, table)
	if err != nil {
		log.Fatalf("failed to build club selector: %v", err)
	}
	log.Printf("INFO: %d clubs loaded; slope model %s within ±%g°, wind in %s",
		table.Len(), cfg.Policy.SlopeModel, cfg.Policy.SlopeBoundDegrees, cfg.Policy.WindUnit)

	metrics := observability.NewMetrics()

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// In-memory store with configured retention.
	memStore := store.NewMemoryStore(cfg.StoreMaxHistory, cfg.StoreMaxAge)

	// Providers with resilience (backoff + circuit breaker). Only keyed providers are enabled.
	var provs []weather.Provider
	if cfg.OpenWeatherAPIKey != "" {
		provs = append(provs, providers.NewOpenWeatherProvider(httpClient, cfg.OpenWeatherAPIKey))
	}
	if cfg.WeatherAPIKey != "" {
		provs = append(provs, providers.NewWeatherAPIProvider(httpClient, cfg.WeatherAPIKey))
	}
	// Open-Meteo does not require an API key, but geocoding requires a Google API key.
	if cfg.GeocoderAPIKey != "" {
		provs = append(provs, providers.NewOpenMeteoProvider(httpClient, providers.NewGoogleGeocoder(cfg.GeocoderAPIKey)))
	}
	if len(provs) == 0 {
		log.Println("INFO: no weather providers configured; course wind lookups disabled")
	}

	windService := weather.NewService(memStore, provs, weather.WithRecorder(metrics))

	// Scheduler that periodically refreshes wind for configured courses.
	if len(provs) > 0 {
		sched := scheduler.New(cfg.Courses, cfg.FetchInterval, windService)
		if err := sched.Start(); err != nil {
			log.Fatalf("failed to start scheduler: %v", err)
		}
		defer sched.Stop()
	}

	deps := httpapi.Deps{
		Selector: selector,
		Metrics:  metrics,
	}
	if len(provs) > 0 {
		deps.Wind = windService
	}
	if cfg.ShotLogPath != "" {
		deps.ShotLog = shotlog.New(cfg.ShotLogPath, nil)
		log.Printf("INFO: logging shots to %s", cfg.ShotLogPath)
	}

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "golf-club-recommender",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler:          httpapi.ErrorHandler,
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "golf-club-recommender",
			"clubs":   table.Len(),
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// API routes.
	httpapi.RegisterRoutes(app, deps)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}

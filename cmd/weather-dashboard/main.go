package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	httpapi "github.com/openwx/weather-dashboard/internal/api/http"
	"github.com/openwx/weather-dashboard/internal/config"
	"github.com/openwx/weather-dashboard/internal/scheduler"
	"github.com/openwx/weather-dashboard/internal/store"
	"github.com/openwx/weather-dashboard/internal/weather"
	"github.com/openwx/weather-dashboard/internal/weather/providers"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Record store on SQLite with a bounded pool. The handle is owned here
	// and handed to the store explicitly.
	db, err := store.Open(cfg.DBPath, store.PoolConfig{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	})
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	recordStore, err := store.NewSQLiteStore(db)
	if err != nil {
		log.Fatalf("failed to initialize record store: %v", err)
	}

	// Providers. OpenWeatherMap covers geocoding, forecast and current
	// conditions; config can swap in alternatives per concern.
	openWeather := providers.NewOpenWeatherProvider(httpClient, cfg.OpenWeatherAPIKey)

	var resolver weather.LocationResolver = openWeather
	if cfg.Geocoder == "google" {
		resolver = providers.NewGoogleResolver(cfg.GoogleGeocoderKey)
	}

	var source weather.ForecastSource = openWeather
	if cfg.ForecastProvider == "weatherapi" {
		source = providers.NewWeatherAPIProvider(httpClient, cfg.WeatherAPIKey)
	}

	// Core service orchestrating resolve -> fetch -> filter -> persist.
	service := weather.NewService(recordStore, resolver, source, openWeather)

	// Optional snapshot-refresh job.
	sched := scheduler.New(cfg.RefreshInterval, service)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "weather-dashboard",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-dashboard",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, service)

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

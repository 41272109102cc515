package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	OpenWeatherAPIKey string
	WeatherAPIKey     string
	GoogleGeocoderKey string

	// ForecastProvider selects the forecast source: "openweather" (default)
	// or "weatherapi".
	ForecastProvider string

	// Geocoder selects the location resolver: "openweather" (default) or
	// "google".
	Geocoder string

	// DBPath is the SQLite database file.
	DBPath string

	// Connection pool bounds for the record store.
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration

	// HTTPTimeout bounds outbound provider calls.
	HTTPTimeout time.Duration

	// RefreshInterval drives the optional snapshot-refresh job;
	// 0 disables it.
	RefreshInterval time.Duration

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.WeatherAPIKey = os.Getenv("WEATHERAPI_API_KEY")
	cfg.GoogleGeocoderKey = os.Getenv("GOOGLE_GEOCODER_API_KEY")

	cfg.ForecastProvider = getenvDefault("FORECAST_PROVIDER", "openweather")
	cfg.Geocoder = getenvDefault("GEOCODER", "openweather")

	cfg.DBPath = getenvDefault("DB_PATH", "data/weather.db")
	cfg.DBMaxOpenConns = getenvInt("DB_MAX_OPEN_CONNS", 10)
	cfg.DBMaxIdleConns = getenvInt("DB_MAX_IDLE_CONNS", 5)

	lifetimeStr := getenvDefault("DB_CONN_MAX_LIFETIME", "30m")
	lifetime, err := time.ParseDuration(lifetimeStr)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_CONN_MAX_LIFETIME: %w", err)
	}
	cfg.DBConnMaxLifetime = lifetime

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	// Snapshot refresh is off unless explicitly configured.
	refreshStr := getenvDefault("REFRESH_INTERVAL", "0")
	refresh, err := time.ParseDuration(refreshStr)
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_INTERVAL: %w", err)
	}
	cfg.RefreshInterval = refresh

	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

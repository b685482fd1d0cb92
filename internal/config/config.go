package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// AppConfig holds everything the process needs, read once at startup and
// threaded explicitly into the components that use it.
type AppConfig struct {
	// GoogleAPIKey authenticates both the weather and geocoding calls.
	GoogleAPIKey string

	// DatabaseURL is the Postgres DSN for saved requests. Empty disables
	// persistence; lookup endpoints keep working.
	DatabaseURL string

	// HTTPTimeout bounds every outbound provider call.
	HTTPTimeout time.Duration

	// RefreshInterval controls how often saved requests are re-fetched.
	// Zero disables the refresher.
	RefreshInterval time.Duration

	// ForecastDays is the default day count for forecast requests.
	ForecastDays int

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{}

	cfg.GoogleAPIKey = os.Getenv("GOOGLE_API_KEY")
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	refreshStr := getenvDefault("REFRESH_INTERVAL", "1h")
	refresh, err := time.ParseDuration(refreshStr)
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_INTERVAL: %w", err)
	}
	cfg.RefreshInterval = refresh

	cfg.ForecastDays = getenvInt("FORECAST_DAYS", 5)
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

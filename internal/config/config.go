// Package config reads application settings from the environment,
// optionally seeded from a .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds the runtime settings for ls-globe.
type AppConfig struct {
	// DefaultCity is the observer selected at startup.
	DefaultCity string

	// CitiesFile is an optional YAML file with extra catalog rows.
	CitiesFile string

	// GeocodeURL overrides the geocoding endpoint, mostly for tests.
	GeocodeURL string

	// TickInterval controls how often the animated clock advances.
	TickInterval time.Duration

	// HoursPerTick is how much simulated UTC time each tick adds.
	HoursPerTick float64

	// ObliquityDeg is the axial tilt used by all solar math.
	ObliquityDeg float64

	// LogLevel is the minimum level written to the log file.
	LogLevel string
}

// Load reads configuration from environment with sensible defaults.
// A missing .env file is not an error.
func Load() (*AppConfig, error) {
	_ = godotenv.Load()

	cfg := &AppConfig{
		DefaultCity: getenvDefault("LSGLOBE_CITY", "Beijing"),
		CitiesFile:  os.Getenv("LSGLOBE_CITIES_FILE"),
		GeocodeURL:  os.Getenv("LSGLOBE_GEOCODE_URL"),
		LogLevel:    getenvDefault("LSGLOBE_LOG_LEVEL", "info"),
	}

	intervalStr := getenvDefault("LSGLOBE_TICK_INTERVAL", "100ms")
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid LSGLOBE_TICK_INTERVAL: %w", err)
	}
	cfg.TickInterval = interval

	cfg.HoursPerTick, err = getenvFloat("LSGLOBE_HOURS_PER_TICK", 0.05)
	if err != nil {
		return nil, err
	}

	cfg.ObliquityDeg, err = getenvFloat("LSGLOBE_OBLIQUITY", 23.4367)
	if err != nil {
		return nil, err
	}
	if cfg.ObliquityDeg < 0 || cfg.ObliquityDeg >= 90 {
		return nil, fmt.Errorf("LSGLOBE_OBLIQUITY must be in [0, 90), got %v", cfg.ObliquityDeg)
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
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

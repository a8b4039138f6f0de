// Package config loads service configuration from the environment.
package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the API needs at startup.
type Config struct {
	Addr      string
	OTELHost  string
	PrepDelay time.Duration
}

// Load reads configuration from the environment, after loading .env if one
// is present. Missing values fall back to defaults suited for local runs.
func Load() (*Config, error) {
	_ = godotenv.Load()

	delay, err := time.ParseDuration(getEnv("PREP_DELAY", "1s"))
	if err != nil {
		return nil, err
	}

	return &Config{
		Addr:      getEnv("ADDR", ":8000"),
		OTELHost:  getEnv("OTEL_HOST", ""),
		PrepDelay: delay,
	}, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

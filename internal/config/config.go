// Package config loads runtime configuration from environment variables,
// with a .env file as an optional local override source.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration. The billing cycle start
// day lives in the database settings, not here; these are process-level
// knobs only.
type Config struct {
	Port      int
	DBPath    string
	Currency  string // display currency code, never used in computation
	LogLevel  string
	StaticDir string
}

// Load reads configuration with sensible defaults. A missing .env file is
// not an error; real environment variables take precedence over it.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:      getEnvInt("SNAPSPEND_PORT", 8080),
		DBPath:    getEnv("SNAPSPEND_DB", "snapspend.db"),
		Currency:  getEnv("SNAPSPEND_CURRENCY", "USD"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		StaticDir: getEnv("STATIC_DIR", ""),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

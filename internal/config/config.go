package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	Env           string        // VITRINE_ENV, default "development"
	Addr          string        // VITRINE_ADDR, default ":8080"
	DBDriver      string        // VITRINE_DB_DRIVER, "sqlite" or "postgres"
	DSN           string        // VITRINE_DB, default "vitrine.db"
	AdminToken    string        // VITRINE_ADMIN_TOKEN, optional
	RedisURL      string        // VITRINE_REDIS_URL, empty keeps the slug cache in memory
	SlugCacheTTL  time.Duration // VITRINE_SLUG_CACHE_TTL, default 5m
	SlugCacheSize int           // VITRINE_SLUG_CACHE_SIZE, default 1024
	FetchTimeout  time.Duration // VITRINE_FETCH_TIMEOUT, default 10s
	LogLevel      string        // VITRINE_LOG_LEVEL, default "info"
}

// Load reads an optional .env file from the working directory, then
// configuration from environment variables with sensible defaults. Variables
// already set in the environment win over the file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Env:           envOr("VITRINE_ENV", "development"),
		Addr:          envOr("VITRINE_ADDR", ":8080"),
		DBDriver:      envOr("VITRINE_DB_DRIVER", "sqlite"),
		DSN:           envOr("VITRINE_DB", "vitrine.db"),
		AdminToken:    os.Getenv("VITRINE_ADMIN_TOKEN"),
		RedisURL:      os.Getenv("VITRINE_REDIS_URL"),
		SlugCacheTTL:  durationOr("VITRINE_SLUG_CACHE_TTL", 5*time.Minute),
		SlugCacheSize: intOr("VITRINE_SLUG_CACHE_SIZE", 1024),
		FetchTimeout:  durationOr("VITRINE_FETCH_TIMEOUT", 10*time.Second),
		LogLevel:      envOr("VITRINE_LOG_LEVEL", "info"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationOr(key string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil && d >= 0 {
		return d
	}
	return fallback
}

func intOr(key string, fallback int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil && n > 0 {
		return n
	}
	return fallback
}

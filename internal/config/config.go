package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers accepted by STORE_DRIVER.
const (
	DriverSQLite = "sqlite"
	DriverBadger = "badger"
	DriverMemory = "memory"
)

type Config struct {
	Port               int
	Env                string
	WebRoot            string
	LogLevel           string
	StoreDriver        string
	StorePath          string
	PuzzlesPath        string
	EpochDate          string
	Timezone           string
	RateLimitPerMinute int
	RevealIntervalMS   int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Port:               envIntOr("PORT", 3001),
		Env:                envOr("APP_ENV", envOr("NODE_ENV", "development")),
		WebRoot:            envOr("WEB_ROOT", "./public"),
		LogLevel:           envOr("LOG_LEVEL", "INFO"),
		StoreDriver:        envOr("STORE_DRIVER", DriverSQLite),
		StorePath:          envOr("STORE_PATH", "hippomemory.db"),
		PuzzlesPath:        envOr("PUZZLES_PATH", ""),
		EpochDate:          envOr("EPOCH_DATE", "2026-01-20"),
		Timezone:           envOr("TIMEZONE", ""),
		RateLimitPerMinute: envIntOr("RATE_LIMIT_PER_MINUTE", 600),
		RevealIntervalMS:   envIntOr("REVEAL_INTERVAL_MS", 2000),
	}
}

// Addr is the listen address derived from Port.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Production reports whether production-only behavior (HSTS) is enabled.
func (c Config) Production() bool {
	return strings.EqualFold(c.Env, "production")
}

// Location resolves Timezone, falling back to the local zone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// Validate checks every field and reports all problems at once.
func (c Config) Validate() error {
	var problems []string

	if c.Port <= 0 || c.Port > 65535 {
		problems = append(problems, fmt.Sprintf("PORT must be between 1 and 65535, got %d", c.Port))
	}
	if c.WebRoot == "" {
		problems = append(problems, "WEB_ROOT cannot be empty")
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		problems = append(problems, fmt.Sprintf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR, got %q", c.LogLevel))
	}
	switch c.StoreDriver {
	case DriverSQLite, DriverBadger:
		if c.StorePath == "" {
			problems = append(problems, "STORE_PATH cannot be empty")
		}
	case DriverMemory:
	default:
		problems = append(problems, fmt.Sprintf("STORE_DRIVER must be sqlite, badger or memory, got %q", c.StoreDriver))
	}
	if _, err := time.Parse("2006-01-02", c.EpochDate); err != nil {
		problems = append(problems, fmt.Sprintf("EPOCH_DATE must be YYYY-MM-DD, got %q", c.EpochDate))
	}
	if _, err := c.Location(); err != nil {
		problems = append(problems, fmt.Sprintf("TIMEZONE is not a known location: %q", c.Timezone))
	}
	if c.RateLimitPerMinute <= 0 {
		problems = append(problems, "RATE_LIMIT_PER_MINUTE must be positive")
	}
	if c.RevealIntervalMS <= 0 {
		problems = append(problems, "REVEAL_INTERVAL_MS must be positive")
	}

	if len(problems) > 0 {
		return errors.New("invalid configuration: " + strings.Join(problems, "; "))
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

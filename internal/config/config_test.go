package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/hippomemory/internal/config"
)

func validConfig() config.Config {
	return config.Config{
		Port:               3001,
		Env:                "development",
		WebRoot:            "./public",
		LogLevel:           "INFO",
		StoreDriver:        config.DriverSQLite,
		StorePath:          "test.db",
		EpochDate:          "2026-01-20",
		RateLimitPerMinute: 600,
		RevealIntervalMS:   2000,
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_EmptyWebRoot(t *testing.T) {
	cfg := validConfig()
	cfg.WebRoot = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "WEB_ROOT cannot be empty")
}

func TestValidate_InvalidPort(t *testing.T) {
	tests := []struct {
		name string
		port int
	}{
		{name: "zero", port: 0},
		{name: "negative", port: -1},
		{name: "too high", port: 70000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.Port = tt.port

			err := cfg.Validate()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "PORT")
		})
	}
}

func TestValidate_StoreDriver(t *testing.T) {
	tests := []struct {
		name    string
		driver  string
		path    string
		wantErr string
	}{
		{name: "sqlite without path", driver: config.DriverSQLite, path: "", wantErr: "STORE_PATH cannot be empty"},
		{name: "badger without path", driver: config.DriverBadger, path: "", wantErr: "STORE_PATH cannot be empty"},
		{name: "memory without path", driver: config.DriverMemory, path: ""},
		{name: "unknown driver", driver: "redis", path: "x", wantErr: "STORE_DRIVER"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.StoreDriver = tt.driver
			cfg.StorePath = tt.path

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	cfg := validConfig()
	cfg.LogLevel = "LOUD"

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "LOG_LEVEL")

	cfg.LogLevel = "debug"
	assert.NoError(t, cfg.Validate())
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := config.Config{
		Port:        0,
		WebRoot:     "",
		LogLevel:    "INVALID",
		StoreDriver: "bogus",
		EpochDate:   "20/01/2026",
		Timezone:    "Not/AZone",
	}

	err := cfg.Validate()
	require.Error(t, err)

	errStr := err.Error()
	assert.Contains(t, errStr, "PORT")
	assert.Contains(t, errStr, "WEB_ROOT cannot be empty")
	assert.Contains(t, errStr, "LOG_LEVEL")
	assert.Contains(t, errStr, "STORE_DRIVER")
	assert.Contains(t, errStr, "EPOCH_DATE")
	assert.Contains(t, errStr, "TIMEZONE")
	assert.Contains(t, errStr, "RATE_LIMIT_PER_MINUTE")
	assert.Contains(t, errStr, "REVEAL_INTERVAL_MS")
}

func TestProduction(t *testing.T) {
	cfg := validConfig()
	assert.False(t, cfg.Production())

	cfg.Env = "Production"
	assert.True(t, cfg.Production())
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("APP_ENV", "production")
	t.Setenv("STORE_DRIVER", "badger")
	t.Setenv("REVEAL_INTERVAL_MS", "not-a-number")

	cfg := config.Load()

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, ":9090", cfg.Addr())
	assert.True(t, cfg.Production())
	assert.Equal(t, config.DriverBadger, cfg.StoreDriver)
	assert.Equal(t, 2000, cfg.RevealIntervalMS)
}

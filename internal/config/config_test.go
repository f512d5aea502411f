package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/junyi/vocabflash/internal/config"
)

func validConfig() config.Config {
	return config.Config{
		Addr:                    ":8080",
		DBPath:                  "test.db",
		LogLevel:                "INFO",
		VocabDir:                "vocabularies",
		ImportWorkerCount:       2,
		ImportQueueSize:         32,
		MaxNewPerSession:        20,
		MaxReviewPerSession:     50,
		EloKFactor:              32,
		TargetSuccessRate:       0.7,
		InitialRating:           1000,
		ForecastDays:            7,
		ReminderIntervalMinutes: 60,
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_EmptyAddr(t *testing.T) {
	cfg := validConfig()
	cfg.Addr = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADDR cannot be empty")
}

func TestValidate_EmptyDBPath(t *testing.T) {
	cfg := validConfig()
	cfg.DBPath = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PATH cannot be empty")
}

func TestValidate_InvalidTargetSuccessRate(t *testing.T) {
	tests := []struct {
		name   string
		target float64
	}{
		{name: "zero", target: 0},
		{name: "one", target: 1},
		{name: "negative", target: -0.5},
		{name: "above one", target: 1.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.TargetSuccessRate = tt.target

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "TARGET_SUCCESS_RATE")
		})
	}
}

func TestValidate_InvalidWorkerSettings(t *testing.T) {
	cfg := validConfig()
	cfg.ImportWorkerCount = 0
	require.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.ImportQueueSize = 0
	require.Error(t, cfg.Validate())
}

func TestValidate_InvalidKFactor(t *testing.T) {
	cfg := validConfig()
	cfg.EloKFactor = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ELO_K_FACTOR")
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := config.Load()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "file:vocabflash.db", cfg.DBPath)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, 20, cfg.MaxNewPerSession)
	assert.Equal(t, 50, cfg.MaxReviewPerSession)
	assert.Equal(t, 32.0, cfg.EloKFactor)
	assert.Equal(t, 0.7, cfg.TargetSuccessRate)
	assert.Equal(t, 1000.0, cfg.InitialRating)
	assert.Equal(t, 7, cfg.ForecastDays)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("ADDR", ":9090")
	t.Setenv("MAX_NEW_PER_SESSION", "5")
	t.Setenv("TARGET_SUCCESS_RATE", "0.85")
	t.Setenv("ELO_K_FACTOR", "16")

	cfg := config.Load()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 5, cfg.MaxNewPerSession)
	assert.Equal(t, 0.85, cfg.TargetSuccessRate)
	assert.Equal(t, 16.0, cfg.EloKFactor)
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("MAX_REVIEW_PER_SESSION", "plenty")
	t.Setenv("TARGET_SUCCESS_RATE", "most of the time")

	cfg := config.Load()

	assert.Equal(t, 50, cfg.MaxReviewPerSession)
	assert.Equal(t, 0.7, cfg.TargetSuccessRate)
}

func clearEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		"ADDR", "DB_PATH", "LOG_LEVEL", "VOCAB_DIR", "VOCAB_SOURCE_URL",
		"IMPORT_WORKER_COUNT", "IMPORT_QUEUE_SIZE",
		"MAX_NEW_PER_SESSION", "MAX_REVIEW_PER_SESSION",
		"ELO_K_FACTOR", "TARGET_SUCCESS_RATE", "INITIAL_RATING",
		"FORECAST_DAYS", "REMINDER_INTERVAL_MINUTES",
	}
	for _, k := range keys {
		if v, ok := os.LookupEnv(k); ok {
			t.Setenv(k, v) // restore after test
			os.Unsetenv(k)
		}
	}
}

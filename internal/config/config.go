package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr                    string
	DBPath                  string
	LogLevel                string
	VocabDir                string
	VocabSourceURL          string
	ImportWorkerCount       int
	ImportQueueSize         int
	MaxNewPerSession        int
	MaxReviewPerSession     int
	EloKFactor              float64
	TargetSuccessRate       float64
	InitialRating           float64
	ForecastDays            int
	ReminderIntervalMinutes int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:                    envOr("ADDR", ":8080"),
		DBPath:                  envOr("DB_PATH", "file:vocabflash.db"),
		LogLevel:                envOr("LOG_LEVEL", "INFO"),
		VocabDir:                envOr("VOCAB_DIR", "vocabularies"),
		VocabSourceURL:          envOr("VOCAB_SOURCE_URL", ""),
		ImportWorkerCount:       envIntOr("IMPORT_WORKER_COUNT", 2),
		ImportQueueSize:         envIntOr("IMPORT_QUEUE_SIZE", 32),
		MaxNewPerSession:        envIntOr("MAX_NEW_PER_SESSION", 20),
		MaxReviewPerSession:     envIntOr("MAX_REVIEW_PER_SESSION", 50),
		EloKFactor:              envFloatOr("ELO_K_FACTOR", 32),
		TargetSuccessRate:       envFloatOr("TARGET_SUCCESS_RATE", 0.7),
		InitialRating:           envFloatOr("INITIAL_RATING", 1000),
		ForecastDays:            envIntOr("FORECAST_DAYS", 7),
		ReminderIntervalMinutes: envIntOr("REMINDER_INTERVAL_MINUTES", 60),
	}
}

// Validate checks the configuration for values that would break startup or
// the scheduling engine.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("ADDR cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	if c.ImportWorkerCount < 1 {
		return fmt.Errorf("IMPORT_WORKER_COUNT must be at least 1, got %d", c.ImportWorkerCount)
	}
	if c.ImportQueueSize < 1 {
		return fmt.Errorf("IMPORT_QUEUE_SIZE must be at least 1, got %d", c.ImportQueueSize)
	}
	if c.MaxNewPerSession < 0 || c.MaxReviewPerSession < 0 {
		return fmt.Errorf("session caps cannot be negative")
	}
	if c.EloKFactor <= 0 {
		return fmt.Errorf("ELO_K_FACTOR must be positive, got %g", c.EloKFactor)
	}
	if c.TargetSuccessRate <= 0 || c.TargetSuccessRate >= 1 {
		return fmt.Errorf("TARGET_SUCCESS_RATE must be strictly between 0 and 1, got %g", c.TargetSuccessRate)
	}
	if c.ForecastDays < 0 {
		return fmt.Errorf("FORECAST_DAYS cannot be negative, got %d", c.ForecastDays)
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

func envFloatOr(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Printf("invalid value for %s=%q, using default %g", key, v, def)
	}
	return def
}

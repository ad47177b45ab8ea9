package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Store StoreConfig
	Batch BatchConfig
	Eval  EvalConfig
}

// StoreConfig holds results-store configuration
type StoreConfig struct {
	Path string // SQLite file path; ":memory:" for ephemeral runs
}

// BatchConfig holds batch-runner configuration
type BatchConfig struct {
	Workers    int
	QueueSize  int
	DocTimeout time.Duration
}

// EvalConfig holds evaluation thresholds
type EvalConfig struct {
	FuzzyThreshold  float64 // vendor fuzzy-match threshold used by the batch evaluator
	AmountTolerance float64
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Path: getEnv("RESULTS_DB_PATH", "./results.db"),
		},
		Batch: BatchConfig{
			Workers:    getEnvAsInt("BATCH_WORKERS", 4),
			QueueSize:  getEnvAsInt("BATCH_QUEUE_SIZE", 256),
			DocTimeout: getEnvAsDuration("BATCH_DOC_TIMEOUT", 30*time.Second),
		},
		Eval: EvalConfig{
			FuzzyThreshold:  getEnvAsFloat64("EVAL_FUZZY_THRESHOLD", 0.70),
			AmountTolerance: getEnvAsFloat64("EVAL_AMOUNT_TOLERANCE", 0.01),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	v := NewValidator()
	v.Field("RESULTS_DB_PATH", c.Store.Path, Required)
	v.Field("BATCH_WORKERS", c.Batch.Workers, Positive)
	v.Field("BATCH_QUEUE_SIZE", c.Batch.QueueSize, Positive)
	v.Field("EVAL_FUZZY_THRESHOLD", c.Eval.FuzzyThreshold, UnitInterval)
	return v.Error()
}

package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()
	assert.Equal(t, "./results.db", cfg.Store.Path)
	assert.Equal(t, 4, cfg.Batch.Workers)
	assert.Equal(t, 256, cfg.Batch.QueueSize)
	assert.Equal(t, 30*time.Second, cfg.Batch.DocTimeout)
	assert.InDelta(t, 0.70, cfg.Eval.FuzzyThreshold, 1e-9)
	assert.InDelta(t, 0.01, cfg.Eval.AmountTolerance, 1e-9)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("BATCH_WORKERS", "8")
	t.Setenv("BATCH_DOC_TIMEOUT", "2m")
	t.Setenv("EVAL_FUZZY_THRESHOLD", "0.8")

	cfg := LoadConfig()
	assert.Equal(t, 8, cfg.Batch.Workers)
	assert.Equal(t, 2*time.Minute, cfg.Batch.DocTimeout)
	assert.InDelta(t, 0.8, cfg.Eval.FuzzyThreshold, 1e-9)
}

func TestLoadConfigIgnoresMalformedEnv(t *testing.T) {
	t.Setenv("BATCH_WORKERS", "many")
	t.Setenv("EVAL_FUZZY_THRESHOLD", "høy")

	cfg := LoadConfig()
	assert.Equal(t, 4, cfg.Batch.Workers)
	assert.InDelta(t, 0.70, cfg.Eval.FuzzyThreshold, 1e-9)
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"empty db path", func(c *Config) { c.Store.Path = "" }, "RESULTS_DB_PATH"},
		{"zero workers", func(c *Config) { c.Batch.Workers = 0 }, "BATCH_WORKERS"},
		{"negative queue", func(c *Config) { c.Batch.QueueSize = -1 }, "BATCH_QUEUE_SIZE"},
		{"threshold above one", func(c *Config) { c.Eval.FuzzyThreshold = 1.5 }, "EVAL_FUZZY_THRESHOLD"},
		{"threshold zero", func(c *Config) { c.Eval.FuzzyThreshold = 0 }, "EVAL_FUZZY_THRESHOLD"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := LoadConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidatorCollectsAllErrors(t *testing.T) {
	v := NewValidator()
	v.Field("name", "", Required)
	v.Field("count", 0, Positive)
	assert.True(t, v.HasErrors())
	assert.Len(t, v.Errors(), 2)
	require.Error(t, v.Error())
}

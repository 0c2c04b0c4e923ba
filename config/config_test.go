package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/signaltriage/errors"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, time.Hour, cfg.Classifier.ImmuneWindow())
	assert.Equal(t, 100*time.Millisecond, cfg.Ingest.Interval())
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }},
		{"zero flash threshold", func(c *Config) { c.Classifier.FlashThreshold = 0 }},
		{"flash threshold above one", func(c *Config) { c.Classifier.FlashThreshold = 1.5 }},
		{"zero encode confidence", func(c *Config) { c.Classifier.EncodeConfidence = 0 }},
		{"zero immune criteria", func(c *Config) { c.Classifier.ImmuneCriteria = 0 }},
		{"zero immune window", func(c *Config) { c.Classifier.ImmuneWindowSecs = 0 }},
		{"unknown noise source", func(c *Config) { c.Classifier.NoiseSource = "thermal" }},
		{"zero void threshold", func(c *Config) { c.Void.Threshold = 0 }},
		{"unknown ingest mode", func(c *Config) { c.Ingest.Mode = "replay" }},
		{"zero simulate interval", func(c *Config) { c.Ingest.IntervalMS = 0 }},
		{"nats mode without nats", func(c *Config) { c.Ingest.Mode = ModeNATS }},
		{"nats enabled without url", func(c *Config) { c.NATS.Enabled = true; c.NATS.URL = "" }},
		{"metrics without address", func(c *Config) { c.Metrics.ListenAddr = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsInvalid(err) || errors.IsFatal(err))
		})
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{
		"log_level": "debug",
		"classifier": {
			"flash_threshold": 0.4,
			"encode_confidence": 0.55,
			"immune_criteria": 5,
			"immune_window_seconds": 60,
			"noise_source": "feedback"
		},
		"ingest": {"mode": "simulate", "interval_ms": 50}
	}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.InDelta(t, 0.4, cfg.Classifier.FlashThreshold, 1e-9)
	assert.Equal(t, uint32(5), cfg.Classifier.ImmuneCriteria)
	assert.Equal(t, "feedback", cfg.Classifier.NoiseSource)
	assert.Equal(t, 50*time.Millisecond, cfg.Ingest.Interval())

	// Untouched sections keep their defaults.
	assert.InDelta(t, 0.7, cfg.Void.Threshold, 1e-9)
	assert.Equal(t, ":9402", cfg.Metrics.ListenAddr)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	assert.True(t, errors.IsFatal(err))
}

func TestLoadFileInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))
}

func TestLoadFileRejectsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"void": {"threshold": 3.0}}`), 0o600))

	_, err := LoadFile(path)
	require.Error(t, err)
}

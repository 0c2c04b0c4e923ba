package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/c360/signaltriage/errors"
	"github.com/c360/signaltriage/noise"
)

// Ingest modes.
const (
	ModeSimulate = "simulate"
	ModeNATS     = "nats"
)

// Config is the complete application configuration.
type Config struct {
	LogLevel   string           `json:"log_level"`
	NATS       NATSConfig       `json:"nats"`
	Classifier ClassifierConfig `json:"classifier"`
	Void       VoidConfig       `json:"void"`
	Ingest     IngestConfig     `json:"ingest"`
	Metrics    MetricsConfig    `json:"metrics"`
}

// NATSConfig controls the optional NATS connection. When disabled, events
// stay local and the ingest worker must run in simulate mode.
type NATSConfig struct {
	Enabled      bool   `json:"enabled"`
	URL          string `json:"url"`
	EventSubject string `json:"event_subject"`
}

// ClassifierConfig holds the classifier thresholds and noise policy.
type ClassifierConfig struct {
	FlashThreshold   float64 `json:"flash_threshold"`
	EncodeConfidence float64 `json:"encode_confidence"`
	ImmuneCriteria   uint32  `json:"immune_criteria"`
	ImmuneWindowSecs int     `json:"immune_window_seconds"`
	NoiseSource      string  `json:"noise_source"`
}

// ImmuneWindow returns the immune window as a duration.
func (c ClassifierConfig) ImmuneWindow() time.Duration {
	return time.Duration(c.ImmuneWindowSecs) * time.Second
}

// VoidConfig holds the sink selector threshold.
type VoidConfig struct {
	Threshold float64 `json:"threshold"`
}

// IngestConfig controls the sampling-cadence worker.
type IngestConfig struct {
	Mode       string `json:"mode"`    // simulate or nats
	Subject    string `json:"subject"` // sample subject in nats mode
	IntervalMS int    `json:"interval_ms"`
}

// Interval returns the simulator cadence as a duration.
func (c IngestConfig) Interval() time.Duration {
	return time.Duration(c.IntervalMS) * time.Millisecond
}

// MetricsConfig controls the Prometheus exposition endpoint.
type MetricsConfig struct {
	Enabled    bool   `json:"enabled"`
	ListenAddr string `json:"listen_addr"`
}

// DefaultConfig returns a complete working configuration.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		NATS: NATSConfig{
			Enabled:      false,
			URL:          "nats://localhost:4222",
			EventSubject: "triage.events",
		},
		Classifier: ClassifierConfig{
			FlashThreshold:   0.50,
			EncodeConfidence: 0.65,
			ImmuneCriteria:   3,
			ImmuneWindowSecs: 3600,
			NoiseSource:      noise.SourcePRNG,
		},
		Void: VoidConfig{
			Threshold: 0.7,
		},
		Ingest: IngestConfig{
			Mode:       ModeSimulate,
			Subject:    "triage.samples",
			IntervalMS: 100,
		},
		Metrics: MetricsConfig{
			Enabled:    true,
			ListenAddr: ":9402",
		},
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Config", "Validate",
			fmt.Sprintf("log level %q", c.LogLevel))
	}

	if c.Classifier.FlashThreshold <= 0 || c.Classifier.FlashThreshold > 1 {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Config", "Validate",
			fmt.Sprintf("flash threshold %v", c.Classifier.FlashThreshold))
	}
	if c.Classifier.EncodeConfidence <= 0 || c.Classifier.EncodeConfidence > 1 {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Config", "Validate",
			fmt.Sprintf("encode confidence %v", c.Classifier.EncodeConfidence))
	}
	if c.Classifier.ImmuneCriteria == 0 {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Config", "Validate",
			"immune criteria must be positive")
	}
	if c.Classifier.ImmuneWindowSecs <= 0 {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Config", "Validate",
			"immune window must be positive")
	}

	if _, err := noise.New(c.Classifier.NoiseSource); err != nil {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Config", "Validate",
			fmt.Sprintf("noise source %q", c.Classifier.NoiseSource))
	}

	if c.Void.Threshold <= 0 || c.Void.Threshold > 1 {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Config", "Validate",
			fmt.Sprintf("void threshold %v", c.Void.Threshold))
	}

	switch c.Ingest.Mode {
	case ModeSimulate:
		if c.Ingest.IntervalMS <= 0 {
			return errors.WrapInvalid(errors.ErrInvalidConfig, "Config", "Validate",
				"simulate interval must be positive")
		}
	case ModeNATS:
		if !c.NATS.Enabled {
			return errors.WrapInvalid(errors.ErrMissingConfig, "Config", "Validate",
				"nats ingest mode requires nats.enabled")
		}
		if c.Ingest.Subject == "" {
			return errors.WrapInvalid(errors.ErrMissingConfig, "Config", "Validate",
				"nats ingest mode requires a subject")
		}
	default:
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Config", "Validate",
			fmt.Sprintf("ingest mode %q", c.Ingest.Mode))
	}

	if c.NATS.Enabled && c.NATS.URL == "" {
		return errors.WrapInvalid(errors.ErrMissingConfig, "Config", "Validate", "nats url")
	}

	if c.Metrics.Enabled && c.Metrics.ListenAddr == "" {
		return errors.WrapInvalid(errors.ErrMissingConfig, "Config", "Validate", "metrics listen address")
	}

	return nil
}

// LoadFile reads and validates a JSON configuration file. Fields absent
// from the file keep their defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapFatal(err, "Config", "LoadFile", "read "+path)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.WrapInvalid(err, "Config", "LoadFile", "parse "+path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

package voidsink

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/c360/signaltriage/errors"
	"github.com/c360/signaltriage/event"
	"github.com/c360/signaltriage/metric"
)

const componentName = "voidsink"

// Magnitude boundaries of the disposition decision tree. The retention
// boundary marks payloads worth keeping a feature summary for.
const (
	DefaultVoidThreshold = 0.7

	backgroundFloor    = 0.4
	retentionThreshold = 0.8

	// Magnitude reduction factors per disposition: routed payloads are
	// modeled as mostly absorbed by the sink.
	routedReduction     = 0.3
	backgroundReduction = 0.7

	// patternStrengthFloor is the byte-mean above which a routed payload
	// updates the retained pattern summary.
	patternStrengthFloor = 0.5
)

// Config holds the selector's tunables. Sink defaults to io.Discard.
type Config struct {
	VoidThreshold float64   `json:"void_threshold"`
	Sink          io.Writer `json:"-"`
}

// DefaultConfig returns the stock selector configuration.
func DefaultConfig() Config {
	return Config{
		VoidThreshold: DefaultVoidThreshold,
		Sink:          io.Discard,
	}
}

// Metrics is the selector's running state, owned by one Selector for its
// lifetime. Snapshot returns a copy with the derived fields filled in.
type Metrics struct {
	BytesRouted       uint64
	RetainedPatterns  uint64
	SignalExtractions uint32
	EntropyReduction  float64 // exponential moving average
}

// Snapshot is a point-in-time copy of the sink metrics plus derived values.
type Snapshot struct {
	Metrics

	// PreservationEfficiency is RetainedPatterns / BytesRouted. The ratio
	// divides a pattern count by a byte count; it is kept literally for
	// compatibility even though the units differ.
	PreservationEfficiency float64

	// TraumaVoided is BytesRouted - RetainedPatterns, with the same unit
	// caveat as PreservationEfficiency.
	TraumaVoided uint64

	TraumaShieldActive bool
	PatternSummary     string
}

// Result is the outcome of one disposition decision, created fresh per call.
type Result struct {
	RawMagnitude       float64
	ProcessedMagnitude float64
	Strategy           Strategy
	WasRouted          bool
	PatternRetained    bool
	RetentionID        string
	Timestamp          time.Time
}

// Selector picks and applies a disposition strategy per event. Not safe for
// unsynchronized concurrent use; the owning pipeline serializes calls.
type Selector struct {
	cfg     Config
	sink    io.Writer
	metrics Metrics

	patternSummary     string
	traumaShieldActive bool

	events *event.Publisher
	logger *slog.Logger
	prom   *sinkMetrics
}

// NewSelector creates a selector. events, logger and registry may be nil.
func NewSelector(cfg Config, events *event.Publisher, logger *slog.Logger, registry *metric.Registry) (*Selector, error) {
	if cfg.VoidThreshold <= 0 {
		cfg.VoidThreshold = DefaultVoidThreshold
	}
	if cfg.Sink == nil {
		cfg.Sink = io.Discard
	}
	if events == nil {
		events = event.NewPublisher("", nil, nil)
	}

	prom, err := newSinkMetrics(registry)
	if err != nil {
		if logger != nil {
			logger.Error("Failed to initialize sink metrics", "error", err)
		}
		prom = nil // Continue without metrics
	}

	return &Selector{
		cfg:    cfg,
		sink:   cfg.Sink,
		events: events,
		logger: logger,
		prom:   prom,
	}, nil
}

// Process applies the magnitude-driven decision tree and returns the
// disposition result. The magnitude is clamped to [0,1], never rejected.
// Process itself cannot fail.
func (s *Selector) Process(magnitude float64, context string) Result {
	magnitude = clamp01(magnitude)

	result := Result{
		RawMagnitude: magnitude,
		Timestamp:    time.Now(),
	}

	switch {
	case magnitude > s.cfg.VoidThreshold:
		result.Strategy = StrategyEncodeAndDiscard
		result.WasRouted = true
		result.ProcessedMagnitude = magnitude * routedReduction

		payload := fmt.Sprintf("context:%s:mag:%.3f", context, magnitude)
		if _, err := s.Write(StrategyEncodeAndDiscard, []byte(payload)); err != nil && s.logger != nil {
			s.logger.Error("Failed to route payload", "error", err)
		}

		if magnitude > retentionThreshold {
			result.PatternRetained = true
			result.RetentionID = uuid.NewString()
			s.metrics.RetainedPatterns++
			s.prom.recordRetention()
		}

	case magnitude > backgroundFloor:
		result.Strategy = StrategyBackground
		result.ProcessedMagnitude = magnitude * backgroundReduction

	default:
		// Nominal, unused sink capacity: the payload passes unchanged.
		result.Strategy = StrategyDiscard
		result.ProcessedMagnitude = magnitude
	}

	reduction := result.RawMagnitude - result.ProcessedMagnitude
	s.metrics.EntropyReduction = s.metrics.EntropyReduction*0.9 + reduction*0.1

	s.events.Emit(event.Event{
		Type:      event.TypeDisposed,
		Component: componentName,
		Magnitude: magnitude,
		Strategy:  result.Strategy.String(),
		PacketID:  result.RetentionID,
	})
	s.prom.recordDisposition(result.Strategy, s.metrics.EntropyReduction)

	if s.logger != nil {
		s.logger.Debug("Disposition applied",
			"strategy", result.Strategy.String(),
			"raw_magnitude", result.RawMagnitude,
			"processed_magnitude", result.ProcessedMagnitude,
			"routed", result.WasRouted)
	}

	return result
}

// Write applies a strategy to a payload directly, outside the
// magnitude-driven policy. It returns the number of bytes accounted to the
// sink. An empty payload or unknown strategy is an invalid-argument error;
// nothing else fails.
func (s *Selector) Write(strategy Strategy, payload []byte) (int, error) {
	if len(payload) == 0 {
		return 0, errors.WrapInvalid(errors.ErrEmptyPayload, "Selector", "Write", "payload check")
	}

	switch strategy {
	case StrategyDiscard:
		// Pure pass-through to the null sink.
		n, err := s.sink.Write(payload)
		if err != nil {
			return 0, errors.WrapTransient(err, "Selector", "Write", "sink write")
		}
		s.metrics.BytesRouted += uint64(n)
		s.prom.recordWrite(strategy, n)
		return n, nil

	case StrategyEncodeAndDiscard:
		// Extract a feature summary before the payload goes to the void.
		strength := signalStrength(payload)
		if strength > patternStrengthFloor {
			s.patternSummary = fmt.Sprintf("pattern:%.3f", strength)
			s.metrics.RetainedPatterns++
			s.prom.recordRetention()
		}
		if _, err := s.sink.Write(payload); err != nil && s.logger != nil {
			s.logger.Error("Sink write failed", "error", err)
		}
		s.metrics.BytesRouted += uint64(len(payload))
		s.prom.recordWrite(strategy, len(payload))
		return len(payload), nil

	case StrategyBackground, StrategyImmuneAuto:
		s.metrics.BytesRouted += uint64(len(payload))
		s.prom.recordWrite(strategy, len(payload))
		return len(payload), nil

	case StrategyTraumaShield:
		s.traumaShieldActive = true
		s.metrics.BytesRouted += uint64(len(payload))
		s.prom.recordWrite(strategy, len(payload))
		return len(payload), nil

	case StrategySignalExtract:
		s.metrics.SignalExtractions++
		s.metrics.BytesRouted += uint64(len(payload))
		s.prom.recordWrite(strategy, len(payload))
		return len(payload), nil

	default:
		return 0, errors.WrapInvalid(errors.ErrUnknownStrategy, "Selector", "Write", strategy.String())
	}
}

// Snapshot returns a copy of the running metrics with derived fields.
func (s *Selector) Snapshot() Snapshot {
	snap := Snapshot{
		Metrics:            s.metrics,
		TraumaShieldActive: s.traumaShieldActive,
		PatternSummary:     s.patternSummary,
	}
	if s.metrics.BytesRouted > 0 {
		snap.PreservationEfficiency = float64(s.metrics.RetainedPatterns) / float64(s.metrics.BytesRouted)
		if s.metrics.RetainedPatterns <= s.metrics.BytesRouted {
			snap.TraumaVoided = s.metrics.BytesRouted - s.metrics.RetainedPatterns
		}
	}
	return snap
}

// signalStrength is the mean payload byte scaled to [0,1].
func signalStrength(payload []byte) float64 {
	var sum float64
	for _, b := range payload {
		sum += float64(b) / 255.0
	}
	return sum / float64(len(payload))
}

func clamp01(v float64) float64 {
	return math.Max(0.0, math.Min(1.0, v))
}

package classifier

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/c360/signaltriage/event"
	"github.com/c360/signaltriage/metric"
	"github.com/c360/signaltriage/noise"
)

const (
	componentName = "classifier"

	// entryThreshold is the Idle admission floor for blended magnitudes.
	entryThreshold = 0.10

	// Blend weights for mixing the raw magnitude with noise.
	rawWeight   = 0.8
	noiseWeight = 0.2
)

// Config holds the classifier's tunable thresholds. It is mutated at
// runtime by the ThresholdAdapter and owned exclusively by one Classifier.
type Config struct {
	FlashThreshold   float64       `json:"flash_threshold"`
	EncodeConfidence float64       `json:"encode_confidence"`
	ImmuneCriteria   uint32        `json:"immune_criteria"`
	ImmuneWindow     time.Duration `json:"immune_window"`
}

// DefaultConfig returns the stock thresholds.
func DefaultConfig() Config {
	return Config{
		FlashThreshold:   0.50,
		EncodeConfidence: 0.65,
		ImmuneCriteria:   3,
		ImmuneWindow:     time.Hour,
	}
}

// Classifier is the finite-state machine turning blended magnitudes into
// classified packets. Not safe for unsynchronized concurrent use; the
// owning pipeline serializes calls.
type Classifier struct {
	cfg    Config
	state  State
	packet Packet

	src    noise.Source
	vector *noise.Entropy // entropy-class source for encoded vectors

	windowStart time.Time
	adapter     *ThresholdAdapter

	events  *event.Publisher
	logger  *slog.Logger
	metrics *classifierMetrics
}

// New creates a classifier in the Idle state. events, logger and registry
// may be nil; instrumentation is skipped for whatever is absent.
func New(cfg Config, src noise.Source, events *event.Publisher, logger *slog.Logger, registry *metric.Registry) (*Classifier, error) {
	if src == nil {
		src = noise.NewPRNG()
	}
	if events == nil {
		events = event.NewPublisher("", nil, nil)
	}

	metrics, err := newClassifierMetrics(registry)
	if err != nil {
		if logger != nil {
			logger.Error("Failed to initialize classifier metrics", "error", err)
		}
		metrics = nil // Continue without metrics
	}

	c := &Classifier{
		cfg:     cfg,
		state:   StateIdle,
		src:     src,
		vector:  noise.NewEntropy(),
		events:  events,
		logger:  logger,
		metrics: metrics,
	}
	c.packet.State = StateIdle
	c.adapter = newThresholdAdapter(c)
	c.metrics.setThresholds(cfg.FlashThreshold, cfg.EncodeConfidence)

	return c, nil
}

// State returns the current active state.
func (c *Classifier) State() State {
	return c.state
}

// Config returns the current threshold configuration.
func (c *Classifier) Config() Config {
	return c.cfg
}

// Adapter returns the threshold adapter bound to this classifier, for
// offline pattern tuning by an operator or monitoring collaborator.
func (c *Classifier) Adapter() *ThresholdAdapter {
	return c.adapter
}

// Process blends the raw magnitude with noise, runs one step of the state
// machine, and returns the live packet. The returned pointer references the
// classifier's working record: it is valid as a read-only view until the
// next call. Process never fails.
func (c *Classifier) Process(raw float64) *Packet {
	blended := clamp01(clamp01(raw)*rawWeight + c.src.Generate(raw)*noiseWeight)
	now := time.Now()

	switch c.state {
	case StateIdle:
		if blended > entryThreshold {
			c.transition(StateEntry, blended)
		}

	case StateEntry:
		if blended >= c.cfg.FlashThreshold {
			c.transition(StateFlash, blended)
		} else {
			c.transition(StateEncode, blended)
		}

	case StateFlash:
		// One-tick marker: always proceeds to encode.
		c.transition(StateEncode, blended)

	case StateEncode:
		if blended >= c.cfg.EncodeConfidence {
			c.encode(blended, now)
		} else {
			c.transition(StateError, blended)
			c.events.Emit(event.Event{
				Type:      event.TypeRejected,
				Component: componentName,
				Magnitude: blended,
				Detail:    fmt.Sprintf("confidence %.3f below %.3f", blended, c.cfg.EncodeConfidence),
			})
			c.metrics.recordRejection()
		}

	case StateBackground:
		if now.Sub(c.windowStart) < c.cfg.ImmuneWindow {
			c.packet.ImmuneCounter++
			if c.packet.ImmuneCounter >= c.cfg.ImmuneCriteria {
				c.transition(StateImmune, blended)
				c.events.Emit(event.Event{
					Type:      event.TypeImmune,
					Component: componentName,
					Magnitude: blended,
					PacketID:  c.packet.ID,
				})
				c.metrics.recordImmuneActivation()
			}
		} else {
			// Window lapsed: reopen it. The lapse sample itself does not count.
			c.windowStart = now
			c.packet.ImmuneCounter = 0
		}

	case StateImmune:
		c.adapter.Evolve()

	case StateError:
		c.transition(StateIdle, blended)
	}

	return &c.packet
}

// encode populates the packet and opens the immune window.
func (c *Classifier) encode(blended float64, now time.Time) {
	c.packet.ID = uuid.NewString()
	c.packet.Magnitude = blended
	c.packet.Timestamp = now
	c.packet.IsEncoded = true
	c.packet.ImmuneCounter = 0

	if c.packet.EncodedVector == nil {
		c.packet.EncodedVector = make([]float64, EncodedVectorLen)
	}
	for i := range c.packet.EncodedVector {
		c.packet.EncodedVector[i] = c.vector.Generate(blended)
	}

	c.windowStart = now
	c.transition(StateBackground, blended)

	c.events.Emit(event.Event{
		Type:      event.TypeEncoded,
		Component: componentName,
		Magnitude: blended,
		PacketID:  c.packet.ID,
	})
	c.metrics.recordEncode()

	if c.logger != nil {
		c.logger.Info("Packet encoded",
			"packet_id", c.packet.ID,
			"magnitude", blended)
	}
}

// transition moves the machine to the next state and keeps the packet's
// state field in sync.
func (c *Classifier) transition(to State, blended float64) {
	from := c.state
	c.state = to
	c.packet.State = to

	c.events.Emit(event.Event{
		Type:      event.TypeTransition,
		Component: componentName,
		From:      from.String(),
		To:        to.String(),
		Magnitude: blended,
	})
	c.metrics.recordTransition(from, to)

	if c.logger != nil {
		c.logger.Debug("State transition",
			"from", from.String(),
			"to", to.String(),
			"magnitude", blended)
	}
}

func clamp01(v float64) float64 {
	return math.Max(0.0, math.Min(1.0, v))
}

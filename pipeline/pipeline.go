package pipeline

import (
	"log/slog"
	"sync"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/c360/signaltriage/classifier"
	"github.com/c360/signaltriage/errors"
	"github.com/c360/signaltriage/event"
	"github.com/c360/signaltriage/metric"
	"github.com/c360/signaltriage/noise"
	"github.com/c360/signaltriage/voidsink"
)

// Config assembles the pipeline's two stages. Source, when set, takes
// precedence over NoiseSource and is handed to the classifier directly.
type Config struct {
	Name         string
	Classifier   classifier.Config
	Void         voidsink.Config
	NoiseSource  string
	Source       noise.Source
	EventSubject string
}

// DefaultConfig returns a pipeline configuration with stock thresholds and
// PRNG noise.
func DefaultConfig() Config {
	return Config{
		Name:        "default",
		Classifier:  classifier.DefaultConfig(),
		Void:        voidsink.DefaultConfig(),
		NoiseSource: noise.SourcePRNG,
	}
}

// Pipeline is the caller-facing triage orchestrator.
type Pipeline struct {
	name string

	mu         sync.Mutex
	classifier *classifier.Classifier
	selector   *voidsink.Selector

	events *event.Publisher
	logger *slog.Logger
	core   *metric.Metrics
}

// New builds a pipeline from config. nc, logger and registry may be nil;
// a nil nc keeps event emission local.
func New(cfg Config, nc *nats.Conn, logger *slog.Logger, registry *metric.Registry) (*Pipeline, error) {
	if cfg.Name == "" {
		cfg.Name = "default"
	}

	src := cfg.Source
	if src == nil {
		name := cfg.NoiseSource
		if name == "" {
			name = noise.SourcePRNG
		}
		var err error
		src, err = noise.New(name)
		if err != nil {
			return nil, errors.Wrap(err, "Pipeline", "New", "noise source")
		}
	}

	events := event.NewPublisher(cfg.EventSubject, nc, logger)

	cls, err := classifier.New(cfg.Classifier, src, events, logger, registry)
	if err != nil {
		return nil, errors.Wrap(err, "Pipeline", "New", "classifier")
	}

	sel, err := voidsink.NewSelector(cfg.Void, events, logger, registry)
	if err != nil {
		return nil, errors.Wrap(err, "Pipeline", "New", "sink selector")
	}

	p := &Pipeline{
		name:       cfg.Name,
		classifier: cls,
		selector:   sel,
		events:     events,
		logger:     logger,
	}
	if registry != nil {
		p.core = registry.Core
	}

	return p, nil
}

// Process triages one sample. The sink selector disposes of the raw
// magnitude first; the classifier then observes the sink-adjusted value.
// Process never fails: outcomes are distinguished through the returned
// state and strategy fields.
//
// The returned packet is a read-only view of the classifier's live record,
// valid until the next call.
func (p *Pipeline) Process(magnitude float64, context string) (*classifier.Packet, voidsink.Result) {
	p.mu.Lock()
	defer p.mu.Unlock()

	start := time.Now()

	result := p.selector.Process(magnitude, context)
	packet := p.classifier.Process(result.ProcessedMagnitude)

	if packet.IsEncoded {
		packet.Magnitude = result.ProcessedMagnitude
	}

	if p.core != nil {
		p.core.RecordSample(p.name, packet.State.String(), time.Since(start))
	}

	return packet, result
}

// AdaptToPattern tunes the classifier thresholds from an offline sample
// batch, serialized against Process.
func (p *Pipeline) AdaptToPattern(samples []float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.classifier.Adapter().AdaptToPattern(samples)
}

// Snapshot returns the sink metrics snapshot.
func (p *Pipeline) Snapshot() voidsink.Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.selector.Snapshot()
}

// Thresholds returns the classifier's current threshold configuration.
func (p *Pipeline) Thresholds() classifier.Config {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.classifier.Config()
}

// State returns the classifier's current state.
func (p *Pipeline) State() classifier.State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.classifier.State()
}

// Events returns the pipeline's event publisher for subscription.
func (p *Pipeline) Events() *event.Publisher {
	return p.events
}

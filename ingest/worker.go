package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/c360/signaltriage/errors"
	"github.com/c360/signaltriage/metric"
	"github.com/c360/signaltriage/noise"
	"github.com/c360/signaltriage/pipeline"
)

// Feed modes.
const (
	ModeSimulate = "simulate"
	ModeNATS     = "nats"
)

const componentName = "ingest"

// Sample is the wire form of one magnitude sample.
type Sample struct {
	Magnitude float64 `json:"magnitude"`
	Context   string  `json:"context,omitempty"`
}

// Config controls the worker's feed.
type Config struct {
	Mode     string
	Subject  string
	Interval time.Duration
}

// DefaultConfig returns a simulator feed at the stock cadence.
func DefaultConfig() Config {
	return Config{
		Mode:     ModeSimulate,
		Interval: 100 * time.Millisecond,
	}
}

// Worker feeds samples into a pipeline from the configured source.
type Worker struct {
	cfg      Config
	pipeline *pipeline.Pipeline
	nc       *nats.Conn
	logger   *slog.Logger
	core     *metric.Metrics

	sub *nats.Subscription

	// Lifecycle management
	shutdown    chan struct{}
	done        chan struct{}
	running     bool
	startTime   time.Time
	mu          sync.RWMutex
	lifecycleMu sync.Mutex
	wg          sync.WaitGroup

	// Atomic counters
	samplesFed int64
	feedErrors int64
}

// NewWorker creates an ingest worker. nc is required only for ModeNATS;
// logger and registry may be nil.
func NewWorker(cfg Config, p *pipeline.Pipeline, nc *nats.Conn, logger *slog.Logger, registry *metric.Registry) (*Worker, error) {
	if p == nil {
		return nil, errors.WrapInvalid(errors.ErrMissingConfig, "IngestWorker", "NewWorker", "pipeline required")
	}

	switch cfg.Mode {
	case ModeSimulate:
		if cfg.Interval <= 0 {
			cfg.Interval = 100 * time.Millisecond
		}
	case ModeNATS:
		if cfg.Subject == "" {
			return nil, errors.WrapInvalid(errors.ErrMissingConfig, "IngestWorker", "NewWorker", "subject required")
		}
	default:
		return nil, errors.WrapInvalid(errors.ErrInvalidConfig, "IngestWorker", "NewWorker",
			fmt.Sprintf("mode %q", cfg.Mode))
	}

	w := &Worker{
		cfg:      cfg,
		pipeline: p,
		nc:       nc,
		logger:   logger,
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
	}
	if registry != nil {
		w.core = registry.Core
	}

	return w, nil
}

// Start begins feeding samples.
func (w *Worker) Start(ctx context.Context) error {
	w.lifecycleMu.Lock()
	defer w.lifecycleMu.Unlock()

	if w.isRunning() {
		return errors.WrapFatal(errors.ErrAlreadyStarted, "IngestWorker", "Start", "check running state")
	}

	switch w.cfg.Mode {
	case ModeNATS:
		if w.nc == nil {
			return errors.WrapFatal(errors.ErrMissingConfig, "IngestWorker", "Start", "NATS connection required")
		}
		sub, err := w.nc.Subscribe(w.cfg.Subject, w.handleSample)
		if err != nil {
			return errors.WrapTransient(err, "IngestWorker", "Start",
				fmt.Sprintf("subscribe to %s", w.cfg.Subject))
		}
		w.sub = sub

	case ModeSimulate:
		w.wg.Add(1)
		go w.simulate(ctx)
	}

	w.mu.Lock()
	w.running = true
	w.startTime = time.Now()
	w.mu.Unlock()

	if w.logger != nil {
		w.logger.Info("Ingest worker started",
			"mode", w.cfg.Mode,
			"subject", w.cfg.Subject,
			"interval", w.cfg.Interval)
	}

	return nil
}

// Stop gracefully stops the worker within the timeout.
func (w *Worker) Stop(timeout time.Duration) error {
	w.lifecycleMu.Lock()
	defer w.lifecycleMu.Unlock()

	if !w.isRunning() {
		return nil
	}

	if w.sub != nil {
		if err := w.sub.Unsubscribe(); err != nil && w.logger != nil {
			w.logger.Error("Failed to unsubscribe", "error", err)
		}
		w.sub = nil
	}

	close(w.shutdown)

	waitCh := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(waitCh)
	}()

	select {
	case <-waitCh:
		// Clean shutdown
	case <-time.After(timeout):
		return errors.WrapTransient(
			fmt.Errorf("shutdown timeout after %v", timeout),
			"IngestWorker", "Stop", "graceful shutdown")
	}

	w.mu.Lock()
	w.running = false
	close(w.done)
	w.mu.Unlock()

	if w.logger != nil {
		w.logger.Info("Ingest worker stopped",
			"samples_fed", atomic.LoadInt64(&w.samplesFed),
			"feed_errors", atomic.LoadInt64(&w.feedErrors))
	}

	return nil
}

// SamplesFed returns the number of samples fed so far.
func (w *Worker) SamplesFed() int64 {
	return atomic.LoadInt64(&w.samplesFed)
}

// FeedErrors returns the number of malformed samples seen so far.
func (w *Worker) FeedErrors() int64 {
	return atomic.LoadInt64(&w.feedErrors)
}

func (w *Worker) isRunning() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.running
}

// handleSample processes one NATS sample message.
func (w *Worker) handleSample(msg *nats.Msg) {
	var sample Sample
	if err := json.Unmarshal(msg.Data, &sample); err != nil {
		atomic.AddInt64(&w.feedErrors, 1)
		w.core.RecordError(componentName, "parse")
		if w.logger != nil {
			w.logger.Debug("Failed to parse sample", "error", err)
		}
		return
	}

	w.pipeline.Process(sample.Magnitude, sample.Context)
	atomic.AddInt64(&w.samplesFed, 1)
}

// simulate drives the pipeline with a clamped random-walk magnitude until
// shutdown or context cancellation.
func (w *Worker) simulate(ctx context.Context) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.cfg.Interval)
	defer ticker.Stop()

	entropy := noise.NewEntropy()
	magnitude := 0.3

	for {
		select {
		case <-w.shutdown:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			magnitude += (entropy.Generate(magnitude) - 0.5) * 0.2
			magnitude = clamp01(magnitude)

			w.pipeline.Process(magnitude, "simulated")
			atomic.AddInt64(&w.samplesFed, 1)
		}
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

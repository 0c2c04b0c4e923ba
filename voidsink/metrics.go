package voidsink

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360/signaltriage/metric"
)

// sinkMetrics holds Prometheus metrics for sink selector operations.
type sinkMetrics struct {
	dispositions     *prometheus.CounterVec // by strategy
	bytesRouted      *prometheus.CounterVec // by strategy
	retained         prometheus.Counter
	entropyReduction prometheus.Gauge
}

// newSinkMetrics creates and registers sink metrics with the provided
// registry. A nil registry disables metrics.
func newSinkMetrics(registry *metric.Registry) (*sinkMetrics, error) {
	if registry == nil {
		return nil, nil // Metrics disabled
	}

	m := &sinkMetrics{
		dispositions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metric.Namespace,
			Subsystem: "voidsink",
			Name:      "dispositions_total",
			Help:      "Total number of disposition decisions by strategy",
		}, []string{"strategy"}),

		bytesRouted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metric.Namespace,
			Subsystem: "voidsink",
			Name:      "bytes_routed_total",
			Help:      "Total bytes accounted to the sink by strategy",
		}, []string{"strategy"}),

		retained: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metric.Namespace,
			Subsystem: "voidsink",
			Name:      "retained_patterns_total",
			Help:      "Total number of retained pattern summaries",
		}),

		entropyReduction: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metric.Namespace,
			Subsystem: "voidsink",
			Name:      "entropy_reduction",
			Help:      "Exponential moving average of magnitude reduction",
		}),
	}

	if err := registry.RegisterCounterVec("voidsink", "dispositions", m.dispositions); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounterVec("voidsink", "bytes_routed", m.bytesRouted); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounter("voidsink", "retained_patterns", m.retained); err != nil {
		return nil, err
	}
	if err := registry.RegisterGauge("voidsink", "entropy_reduction", m.entropyReduction); err != nil {
		return nil, err
	}

	return m, nil
}

// recordDisposition records one decision-tree outcome.
func (m *sinkMetrics) recordDisposition(strategy Strategy, entropyEMA float64) {
	if m == nil {
		return
	}
	m.dispositions.WithLabelValues(strategy.String()).Inc()
	m.entropyReduction.Set(entropyEMA)
}

// recordWrite records bytes accounted to the sink.
func (m *sinkMetrics) recordWrite(strategy Strategy, n int) {
	if m == nil {
		return
	}
	m.bytesRouted.WithLabelValues(strategy.String()).Add(float64(n))
}

// recordRetention records one retained pattern.
func (m *sinkMetrics) recordRetention() {
	if m == nil {
		return
	}
	m.retained.Inc()
}

package classifier

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360/signaltriage/metric"
)

// classifierMetrics holds Prometheus metrics for classifier operations.
type classifierMetrics struct {
	transitions       *prometheus.CounterVec // by from and to state
	encoded           prometheus.Counter
	rejected          prometheus.Counter
	immuneActivations prometheus.Counter

	flashThreshold   prometheus.Gauge
	encodeConfidence prometheus.Gauge
}

// newClassifierMetrics creates and registers classifier metrics with the
// provided registry. A nil registry disables metrics.
func newClassifierMetrics(registry *metric.Registry) (*classifierMetrics, error) {
	if registry == nil {
		return nil, nil // Metrics disabled
	}

	m := &classifierMetrics{
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metric.Namespace,
			Subsystem: "classifier",
			Name:      "transitions_total",
			Help:      "Total number of state transitions",
		}, []string{"from", "to"}),

		encoded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metric.Namespace,
			Subsystem: "classifier",
			Name:      "encoded_total",
			Help:      "Total number of successfully encoded packets",
		}),

		rejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metric.Namespace,
			Subsystem: "classifier",
			Name:      "rejected_total",
			Help:      "Total number of encode attempts below the confidence threshold",
		}),

		immuneActivations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metric.Namespace,
			Subsystem: "classifier",
			Name:      "immune_activations_total",
			Help:      "Total number of immune suppressions",
		}),

		flashThreshold: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metric.Namespace,
			Subsystem: "classifier",
			Name:      "flash_threshold",
			Help:      "Current flash threshold",
		}),

		encodeConfidence: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metric.Namespace,
			Subsystem: "classifier",
			Name:      "encode_confidence",
			Help:      "Current encode confidence threshold",
		}),
	}

	if err := registry.RegisterCounterVec("classifier", "transitions", m.transitions); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounter("classifier", "encoded", m.encoded); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounter("classifier", "rejected", m.rejected); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounter("classifier", "immune_activations", m.immuneActivations); err != nil {
		return nil, err
	}
	if err := registry.RegisterGauge("classifier", "flash_threshold", m.flashThreshold); err != nil {
		return nil, err
	}
	if err := registry.RegisterGauge("classifier", "encode_confidence", m.encodeConfidence); err != nil {
		return nil, err
	}

	return m, nil
}

// recordTransition records one state transition.
func (m *classifierMetrics) recordTransition(from, to State) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(from.String(), to.String()).Inc()
}

// recordEncode records a successful encode.
func (m *classifierMetrics) recordEncode() {
	if m == nil {
		return
	}
	m.encoded.Inc()
}

// recordRejection records an encode rejection.
func (m *classifierMetrics) recordRejection() {
	if m == nil {
		return
	}
	m.rejected.Inc()
}

// recordImmuneActivation records an immune suppression.
func (m *classifierMetrics) recordImmuneActivation() {
	if m == nil {
		return
	}
	m.immuneActivations.Inc()
}

// setThresholds publishes the current threshold values.
func (m *classifierMetrics) setThresholds(flash, encode float64) {
	if m == nil {
		return
	}
	m.flashThreshold.Set(flash)
	m.encodeConfidence.Set(encode)
}

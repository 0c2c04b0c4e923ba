package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Namespace is the Prometheus namespace for all pipeline metrics.
const Namespace = "signaltriage"

// Metrics contains the core pipeline metrics shared by every component.
type Metrics struct {
	SamplesProcessed   *prometheus.CounterVec
	ProcessingDuration *prometheus.HistogramVec
	ErrorsTotal        *prometheus.CounterVec
}

// NewMetrics creates the core metrics set.
func NewMetrics() *Metrics {
	return &Metrics{
		SamplesProcessed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Subsystem: "pipeline",
				Name:      "samples_total",
				Help:      "Total number of samples processed by the pipeline",
			},
			[]string{"pipeline", "state"},
		),

		ProcessingDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Subsystem: "pipeline",
				Name:      "processing_duration_seconds",
				Help:      "Per-sample processing duration in seconds",
				Buckets:   []float64{0.000001, 0.000005, 0.00001, 0.00005, 0.0001, 0.0005, 0.001},
			},
			[]string{"pipeline"},
		),

		ErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Subsystem: "pipeline",
				Name:      "errors_total",
				Help:      "Total number of component errors by type",
			},
			[]string{"component", "type"},
		),
	}
}

// RecordSample records one processed sample and its duration.
func (m *Metrics) RecordSample(pipeline, state string, duration time.Duration) {
	if m == nil {
		return
	}
	m.SamplesProcessed.WithLabelValues(pipeline, state).Inc()
	m.ProcessingDuration.WithLabelValues(pipeline).Observe(duration.Seconds())
}

// RecordError records one component error.
func (m *Metrics) RecordError(component, errorType string) {
	if m == nil {
		return
	}
	m.ErrorsTotal.WithLabelValues(component, errorType).Inc()
}

package metric

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/signaltriage/errors"
)

func TestNewRegistryHasCoreMetrics(t *testing.T) {
	r := NewRegistry()

	require.NotNil(t, r.Core)
	r.Core.RecordSample("default", "idle", 5*time.Microsecond)
	r.Core.RecordError("classifier", "rejected")

	families, err := r.PrometheusRegistry().Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["signaltriage_pipeline_samples_total"])
	assert.True(t, names["signaltriage_pipeline_processing_duration_seconds"])
	assert.True(t, names["signaltriage_pipeline_errors_total"])
}

func TestRegisterAndUnregister(t *testing.T) {
	r := NewRegistry()

	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "test_counter_total",
		Help:      "test",
	})

	require.NoError(t, r.RegisterCounter("test", "counter", counter))
	assert.True(t, r.Unregister("test", "counter"))
	assert.False(t, r.Unregister("test", "counter"), "second unregister must report missing")
}

func TestRegisterDuplicateFails(t *testing.T) {
	r := NewRegistry()

	gauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "test_gauge",
		Help:      "test",
	})

	require.NoError(t, r.RegisterGauge("test", "gauge", gauge))
	err := r.RegisterGauge("test", "gauge", gauge)
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))
}

func TestNilMetricsRecordIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordSample("default", "idle", time.Microsecond)
		m.RecordError("classifier", "rejected")
	})
}

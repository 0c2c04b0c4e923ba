package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdaptToPatternHomogeneousIncreasesSensitivity(t *testing.T) {
	c := newTestClassifier(t, DefaultConfig(), 0.0)

	samples := make([]float64, 10)
	for i := range samples {
		samples[i] = 0.5
	}
	c.Adapter().AdaptToPattern(samples) // variance 0

	cfg := c.Config()
	assert.InDelta(t, 0.50*0.95, cfg.FlashThreshold, 1e-9)
	assert.InDelta(t, 0.65*0.98, cfg.EncodeConfidence, 1e-9)
}

func TestAdaptToPatternErraticDecreasesSensitivity(t *testing.T) {
	c := newTestClassifier(t, DefaultConfig(), 0.0)

	// Alternating 0/2 has population variance 1.0. The batch entry point
	// does not clamp: it tunes from whatever the operator measured.
	samples := []float64{0, 2, 0, 2, 0, 2, 0, 2}
	c.Adapter().AdaptToPattern(samples)

	cfg := c.Config()
	assert.InDelta(t, 0.50*1.05, cfg.FlashThreshold, 1e-9)
	assert.InDelta(t, 0.65*1.02, cfg.EncodeConfidence, 1e-9)
}

func TestAdaptToPatternMidVarianceChangesNothing(t *testing.T) {
	c := newTestClassifier(t, DefaultConfig(), 0.0)
	before := c.Config()

	// Alternating 0/1 has population variance 0.25, inside the dead band.
	samples := []float64{0, 1, 0, 1, 0, 1, 0, 1}
	c.Adapter().AdaptToPattern(samples)

	assert.Equal(t, before, c.Config())
}

func TestAdaptToPatternEmptyIsNoOp(t *testing.T) {
	c := newTestClassifier(t, DefaultConfig(), 0.0)
	before := c.Config()

	assert.NotPanics(t, func() {
		c.Adapter().AdaptToPattern(nil)
		c.Adapter().AdaptToPattern([]float64{})
	})
	assert.Equal(t, before, c.Config())
}

func TestEvolveFiresOnlyAboveCriteria(t *testing.T) {
	c := newTestClassifier(t, DefaultConfig(), 0.0)
	driveToBackground(t, c)

	// Reach Immune: counter equals the criteria exactly.
	c.Process(0.5)
	c.Process(0.5)
	pkt := c.Process(0.5)
	require.Equal(t, StateImmune, c.State())

	before := c.Config()
	c.Process(0.5) // Evolve runs but counter == criteria, no change
	assert.Equal(t, before, c.Config())

	// Push the counter over the criteria through the live packet view.
	pkt.ImmuneCounter = 5
	c.Process(0.5)

	cfg := c.Config()
	assert.InDelta(t, before.FlashThreshold*1.01, cfg.FlashThreshold, 1e-9)
	assert.InDelta(t, before.EncodeConfidence*1.005, cfg.EncodeConfidence, 1e-9)
}

func TestMeanVariance(t *testing.T) {
	tests := []struct {
		name         string
		samples      []float64
		wantMean     float64
		wantVariance float64
	}{
		{"constant", []float64{0.5, 0.5, 0.5}, 0.5, 0},
		{"alternating", []float64{0, 1, 0, 1}, 0.5, 0.25},
		{"spread", []float64{0, 2, 0, 2}, 1.0, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mean, variance := meanVariance(tt.samples)
			assert.InDelta(t, tt.wantMean, mean, 1e-9)
			assert.InDelta(t, tt.wantVariance, variance, 1e-9)
		})
	}
}

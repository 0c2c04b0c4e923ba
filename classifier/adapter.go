package classifier

import (
	"fmt"

	"github.com/c360/signaltriage/event"
)

// Evolution and pattern-adaptation scale factors. Each adaptation event
// moves both thresholds in one direction only.
const (
	evolveFlashFactor  = 1.01
	evolveEncodeFactor = 1.005

	homogeneousVariance   = 0.1
	erraticVariance       = 0.5
	sensitizeFlashFactor  = 0.95
	sensitizeEncodeFactor = 0.98
	desensitizeFlash      = 1.05
	desensitizeEncode     = 1.02
)

// ThresholdAdapter observes classifier outcomes and mutates its thresholds.
// It is bound to exactly one classifier and shares its serialization
// requirements: callers must not run Evolve or AdaptToPattern concurrently
// with Process.
type ThresholdAdapter struct {
	c *Classifier
}

func newThresholdAdapter(c *Classifier) *ThresholdAdapter {
	return &ThresholdAdapter{c: c}
}

// Evolve desensitizes the thresholds when the machine over-triggers inside
// an open immune window. Invoked from the Immune state on every step.
//
// There is no decrease path here: thresholds only drift upward over the
// machine's lifetime. AdaptToPattern is the resensitization mechanism.
func (a *ThresholdAdapter) Evolve() {
	c := a.c
	if c.packet.ImmuneCounter <= c.cfg.ImmuneCriteria {
		return
	}

	c.cfg.FlashThreshold *= evolveFlashFactor
	c.cfg.EncodeConfidence *= evolveEncodeFactor
	c.metrics.setThresholds(c.cfg.FlashThreshold, c.cfg.EncodeConfidence)

	c.events.Emit(event.Event{
		Type:      event.TypeEvolved,
		Component: componentName,
		Detail: fmt.Sprintf("desensitized flash=%.3f encode=%.3f",
			c.cfg.FlashThreshold, c.cfg.EncodeConfidence),
	})

	if c.logger != nil {
		c.logger.Info("Thresholds evolved",
			"flash_threshold", c.cfg.FlashThreshold,
			"encode_confidence", c.cfg.EncodeConfidence)
	}
}

// AdaptToPattern tunes the thresholds from an offline sample batch. A
// homogeneous batch (variance < 0.1) increases sensitivity; an erratic
// batch (variance > 0.5) decreases it; anything between changes nothing.
// This is a distinct policy from Evolve and may be invoked independently
// by an operator or monitoring collaborator.
func (a *ThresholdAdapter) AdaptToPattern(samples []float64) {
	if len(samples) == 0 {
		return
	}

	c := a.c
	_, variance := meanVariance(samples)

	var detail string
	switch {
	case variance < homogeneousVariance:
		c.cfg.FlashThreshold *= sensitizeFlashFactor
		c.cfg.EncodeConfidence *= sensitizeEncodeFactor
		detail = "homogeneous pattern, increased sensitivity"
	case variance > erraticVariance:
		c.cfg.FlashThreshold *= desensitizeFlash
		c.cfg.EncodeConfidence *= desensitizeEncode
		detail = "erratic pattern, decreased sensitivity"
	default:
		return
	}

	c.metrics.setThresholds(c.cfg.FlashThreshold, c.cfg.EncodeConfidence)
	c.events.Emit(event.Event{
		Type:      event.TypeEvolved,
		Component: componentName,
		Detail:    detail,
	})

	if c.logger != nil {
		c.logger.Info("Thresholds adapted to pattern",
			"variance", variance,
			"flash_threshold", c.cfg.FlashThreshold,
			"encode_confidence", c.cfg.EncodeConfidence)
	}
}

// meanVariance computes the population mean and variance of samples.
func meanVariance(samples []float64) (mean, variance float64) {
	for _, s := range samples {
		mean += s
	}
	mean /= float64(len(samples))

	for _, s := range samples {
		d := s - mean
		variance += d * d
	}
	variance /= float64(len(samples))
	return mean, variance
}

package noise

import (
	"math"
	"math/rand"

	"github.com/c360/signaltriage/errors"
)

// Source names accepted by New.
const (
	SourcePRNG          = "prng"
	SourceEntropy       = "entropy"
	SourceEnvironmental = "environmental"
	SourceFeedback      = "feedback"
)

// Source produces a blending value in [0,1]. The previous raw input
// magnitude is passed as feedback; stateless sources ignore it.
// Generate never fails: sources recover internally and always return a value.
type Source interface {
	Generate(prev float64) float64
}

// New creates a Source for the given policy name.
func New(name string) (Source, error) {
	switch name {
	case SourcePRNG:
		return NewPRNG(), nil
	case SourceEntropy:
		return NewEntropy(), nil
	case SourceEnvironmental:
		return NewEnvironmental(), nil
	case SourceFeedback:
		return NewFeedback(), nil
	default:
		return nil, errors.WrapInvalid(errors.ErrUnknownSource, "noise", "New", "policy "+name)
	}
}

// PRNG is a uniform pseudo-random source.
type PRNG struct{}

// NewPRNG creates a uniform pseudo-random source.
func NewPRNG() *PRNG {
	return &PRNG{}
}

// Generate returns a uniform pseudo-random value in [0,1).
func (p *PRNG) Generate(_ float64) float64 {
	return rand.Float64()
}

// Entropy reads from the OS random source without blocking. When entropy is
// unavailable it falls back to PRNG output; the fallback is silent.
type Entropy struct {
	fallback *PRNG
}

// NewEntropy creates an OS entropy source with a PRNG fallback.
func NewEntropy() *Entropy {
	return &Entropy{fallback: NewPRNG()}
}

// Generate returns an entropy-derived value in [0,1], or PRNG output when
// the OS cannot satisfy a non-blocking read.
func (e *Entropy) Generate(prev float64) float64 {
	v, err := readEntropy()
	if err != nil {
		return e.fallback.Generate(prev)
	}
	return v
}

// Environmental is a stateful random walk over entropy steps, a stand-in
// for real environmental sensors (microphone, accelerometer, temperature).
type Environmental struct {
	state   float64
	entropy *Entropy
}

// NewEnvironmental creates an environmental walk seeded at 0.5.
func NewEnvironmental() *Environmental {
	return &Environmental{
		state:   0.5,
		entropy: NewEntropy(),
	}
}

// Generate advances the walk by an entropy-driven step and returns the
// clamped state.
func (e *Environmental) Generate(prev float64) float64 {
	e.state += (e.entropy.Generate(prev) - 0.5) * 0.1
	e.state = clamp01(e.state)
	return e.state
}

// Feedback is a stateful exponential filter over the input magnitude. The
// accumulator persists across calls, seeded at 0.
type Feedback struct {
	acc float64
}

// NewFeedback creates a feedback filter source.
func NewFeedback() *Feedback {
	return &Feedback{}
}

// Generate folds the input into the accumulator and returns the fractional
// part of the scaled accumulator, a chaotic but input-correlated value.
func (f *Feedback) Generate(input float64) float64 {
	f.acc = 0.9*f.acc + 0.1*input
	return math.Mod(f.acc*7.33, 1.0)
}

func clamp01(v float64) float64 {
	return math.Max(0.0, math.Min(1.0, v))
}

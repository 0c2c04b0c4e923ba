package noise

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/signaltriage/errors"
)

func TestNewByName(t *testing.T) {
	tests := []struct {
		name string
		want any
	}{
		{SourcePRNG, &PRNG{}},
		{SourceEntropy, &Entropy{}},
		{SourceEnvironmental, &Environmental{}},
		{SourceFeedback, &Feedback{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := New(tt.name)
			require.NoError(t, err)
			assert.IsType(t, tt.want, src)
		})
	}
}

func TestNewUnknownSource(t *testing.T) {
	src, err := New("thermal")
	assert.Nil(t, src)
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))
}

func TestSourcesStayInRange(t *testing.T) {
	sources := map[string]Source{
		"prng":          NewPRNG(),
		"entropy":       NewEntropy(),
		"environmental": NewEnvironmental(),
		"feedback":      NewFeedback(),
	}

	for name, src := range sources {
		t.Run(name, func(t *testing.T) {
			input := 0.0
			for i := 0; i < 1000; i++ {
				v := src.Generate(input)
				require.GreaterOrEqual(t, v, 0.0, "iteration %d", i)
				require.LessOrEqual(t, v, 1.0, "iteration %d", i)
				input = v
			}
		})
	}
}

func TestEnvironmentalWalkIsBounded(t *testing.T) {
	src := NewEnvironmental()

	prev := 0.5
	for i := 0; i < 500; i++ {
		v := src.Generate(0)
		// Each step moves at most 0.05 from the previous state.
		assert.LessOrEqual(t, math.Abs(v-prev), 0.05+1e-12)
		prev = v
	}
}

func TestFeedbackFilterSequence(t *testing.T) {
	src := NewFeedback()

	// Mirror the filter by hand: acc starts at 0 and persists across calls.
	acc := 0.0
	inputs := []float64{0.5, 0.9, 0.1, 0.0, 1.0, 0.3}
	for _, in := range inputs {
		acc = 0.9*acc + 0.1*in
		want := math.Mod(acc*7.33, 1.0)
		assert.InDelta(t, want, src.Generate(in), 1e-12)
	}
}

func TestFeedbackAccumulatorIsPerInstance(t *testing.T) {
	a := NewFeedback()
	b := NewFeedback()

	a.Generate(1.0)
	a.Generate(1.0)

	// b is untouched by a's history.
	assert.InDelta(t, math.Mod(0.1*7.33, 1.0), b.Generate(1.0), 1e-12)
}

func TestEntropyFallbackNeverErrors(t *testing.T) {
	src := NewEntropy()
	for i := 0; i < 100; i++ {
		v := src.Generate(0)
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	}
}

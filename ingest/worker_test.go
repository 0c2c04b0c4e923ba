package ingest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/signaltriage/errors"
	"github.com/c360/signaltriage/pipeline"
)

func newTestWorker(t *testing.T, cfg Config) *Worker {
	t.Helper()
	p, err := pipeline.New(pipeline.DefaultConfig(), nil, nil, nil)
	require.NoError(t, err)

	w, err := NewWorker(cfg, p, nil, nil, nil)
	require.NoError(t, err)
	return w
}

func TestSimulateFeedsPipeline(t *testing.T) {
	cfg := Config{Mode: ModeSimulate, Interval: 2 * time.Millisecond}
	w := newTestWorker(t, cfg)

	require.NoError(t, w.Start(context.Background()))
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, w.Stop(time.Second))

	assert.Greater(t, w.SamplesFed(), int64(0))
	assert.Zero(t, w.FeedErrors())
}

func TestStartTwiceFails(t *testing.T) {
	w := newTestWorker(t, Config{Mode: ModeSimulate, Interval: 5 * time.Millisecond})

	require.NoError(t, w.Start(context.Background()))
	defer func() { _ = w.Stop(time.Second) }()

	err := w.Start(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsFatal(err))
}

func TestStopWithoutStartIsNoOp(t *testing.T) {
	w := newTestWorker(t, Config{Mode: ModeSimulate, Interval: 5 * time.Millisecond})
	assert.NoError(t, w.Stop(time.Second))
}

func TestContextCancellationStopsSimulator(t *testing.T) {
	w := newTestWorker(t, Config{Mode: ModeSimulate, Interval: 2 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, w.Start(ctx))

	time.Sleep(10 * time.Millisecond)
	cancel()
	time.Sleep(10 * time.Millisecond)

	fed := w.SamplesFed()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, fed, w.SamplesFed(), "cancelled simulator must stop feeding")

	require.NoError(t, w.Stop(time.Second))
}

func TestNATSModeRequiresConnection(t *testing.T) {
	w := newTestWorker(t, Config{Mode: ModeNATS, Subject: "triage.samples"})

	err := w.Start(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsFatal(err))
}

func TestNewWorkerValidation(t *testing.T) {
	p, err := pipeline.New(pipeline.DefaultConfig(), nil, nil, nil)
	require.NoError(t, err)

	_, err = NewWorker(Config{Mode: "replay"}, p, nil, nil, nil)
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))

	_, err = NewWorker(Config{Mode: ModeNATS}, p, nil, nil, nil)
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))

	_, err = NewWorker(DefaultConfig(), nil, nil, nil, nil)
	require.Error(t, err)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, ModeSimulate, cfg.Mode)
	assert.Equal(t, 100*time.Millisecond, cfg.Interval)
}

package event

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitReachesSubscribers(t *testing.T) {
	pub := NewPublisher("", nil, nil)

	var got []Event
	pub.Subscribe(func(ev Event) {
		got = append(got, ev)
	})

	pub.Emit(Event{Type: TypeTransition, Component: "classifier", From: "idle", To: "entry", Magnitude: 0.42})
	pub.Emit(Event{Type: TypeDisposed, Component: "voidsink", Strategy: "background", Magnitude: 0.5})

	require.Len(t, got, 2)
	assert.Equal(t, TypeTransition, got[0].Type)
	assert.Equal(t, "entry", got[0].To)
	assert.Equal(t, TypeDisposed, got[1].Type)
	assert.NotEmpty(t, got[0].Timestamp, "Emit must stamp events")
}

func TestEmitWithoutSubscribersOrConn(t *testing.T) {
	pub := NewPublisher("triage.events", nil, slog.New(slog.NewTextHandler(os.Stderr, nil)))

	// No conn and no handlers: must be a safe no-op.
	assert.NotPanics(t, func() {
		pub.Emit(Event{Type: TypeRejected, Component: "classifier", Magnitude: 0.3})
	})
}

func TestEmitPreservesCallerTimestamp(t *testing.T) {
	pub := NewPublisher("", nil, nil)

	var got Event
	pub.Subscribe(func(ev Event) { got = ev })

	pub.Emit(Event{Timestamp: "2026-01-02T03:04:05Z", Type: TypeEncoded, Component: "classifier"})
	assert.Equal(t, "2026-01-02T03:04:05Z", got.Timestamp)
}

func TestMultipleSubscribersAllReceive(t *testing.T) {
	pub := NewPublisher("", nil, nil)

	count := 0
	for i := 0; i < 3; i++ {
		pub.Subscribe(func(Event) { count++ })
	}

	pub.Emit(Event{Type: TypeImmune, Component: "classifier"})
	assert.Equal(t, 3, count)
}

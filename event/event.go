package event

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
)

// Type identifies the kind of pipeline event.
type Type string

const (
	// TypeTransition is a classifier state change
	TypeTransition Type = "transition"
	// TypeEncoded is a successful encode with a populated packet
	TypeEncoded Type = "encoded"
	// TypeRejected is an encode attempt below the confidence threshold
	TypeRejected Type = "rejected"
	// TypeImmune is a suppression activation inside an open immune window
	TypeImmune Type = "immune"
	// TypeEvolved is a threshold adjustment by the adapter
	TypeEvolved Type = "evolved"
	// TypeDisposed is a sink-selector disposition decision
	TypeDisposed Type = "disposed"
)

// Event is a structured record of one pipeline decision.
type Event struct {
	Timestamp string  `json:"timestamp"` // RFC3339Nano
	Type      Type    `json:"type"`
	Component string  `json:"component"`
	From      string  `json:"from,omitempty"`
	To        string  `json:"to,omitempty"`
	Magnitude float64 `json:"magnitude"`
	PacketID  string  `json:"packet_id,omitempty"`
	Strategy  string  `json:"strategy,omitempty"`
	Detail    string  `json:"detail,omitempty"`
}

// Handler receives emitted events. Handlers run synchronously on the
// emitting goroutine and must not block.
type Handler func(Event)

// Publisher fans pipeline events out to subscribers, slog, and optionally
// NATS. A zero-configured publisher (nil conn, nil logger) is valid and
// only serves subscribers added later.
type Publisher struct {
	subject string
	nc      *nats.Conn
	logger  *slog.Logger
	enabled bool // whether NATS publishing is enabled

	mu       sync.RWMutex
	handlers []Handler
}

// NewPublisher creates an event publisher. nc and logger may be nil.
func NewPublisher(subject string, nc *nats.Conn, logger *slog.Logger) *Publisher {
	return &Publisher{
		subject: subject,
		nc:      nc,
		logger:  logger,
		enabled: nc != nil && subject != "",
	}
}

// Subscribe registers an in-process handler for all subsequent events.
func (p *Publisher) Subscribe(h Handler) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.handlers = append(p.handlers, h)
}

// Emit stamps and distributes an event. Emission never fails: marshal or
// publish problems are logged locally and dropped.
func (p *Publisher) Emit(ev Event) {
	if ev.Timestamp == "" {
		ev.Timestamp = time.Now().UTC().Format(time.RFC3339Nano)
	}

	if p.logger != nil {
		p.logger.Debug("pipeline event",
			"type", string(ev.Type),
			"component", ev.Component,
			"from", ev.From,
			"to", ev.To,
			"magnitude", ev.Magnitude,
			"strategy", ev.Strategy)
	}

	p.mu.RLock()
	handlers := p.handlers
	p.mu.RUnlock()
	for _, h := range handlers {
		h(ev)
	}

	if !p.enabled {
		return
	}

	data, err := json.Marshal(ev)
	if err != nil {
		if p.logger != nil {
			p.logger.Error("Failed to marshal event", "error", err)
		}
		return
	}

	// Re-check the connection: it may be torn down after the enabled check.
	nc := p.nc
	if nc == nil {
		return
	}
	if err := nc.Publish(p.subject, data); err != nil && p.logger != nil {
		p.logger.Error("Failed to publish event",
			"subject", p.subject,
			"error", err)
	}
}

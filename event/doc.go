// Package event provides structured event emission for the triage pipeline.
//
// The classifier and sink selector narrate their decisions as Events rather
// than writing to the console, keeping the core side-effect-free for testing.
// A Publisher fans each event out to in-process subscribers, logs it at debug
// level through slog, and, when a NATS connection is configured, publishes
// the JSON encoding to a subject for remote consumption. NATS publishing is
// strictly optional: a Publisher built without a connection only serves local
// subscribers.
package event

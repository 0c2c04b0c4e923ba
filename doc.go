// Package signaltriage provides a real-time signal-triage pipeline.
//
// # Architecture
//
// The pipeline ingests scalar magnitude samples in [0,1], blends each with a
// pluggable noise source, and drives it through a finite-state classifier
// that decides whether the sample is escalated, encoded, rate-limited or
// discarded. Encoded events are routed through a second-stage sink selector
// that picks a disposition strategy for the payload.
//
//	┌─────────────────────────────────────┐
//	│            Pipeline                 │  Serialized per-sample
//	│     process(magnitude, context)     │  orchestration
//	└─────────────────────────────────────┘
//	           ↓ composes
//	┌──────────────────┐  ┌───────────────┐
//	│   SinkSelector   │→ │  Classifier   │  Disposition first,
//	│   (voidsink)     │  │  (7-state FSM)│  then classification of
//	└──────────────────┘  └───────────────┘  the sink-adjusted value
//	           ↓ emit                ↓ emit
//	┌─────────────────────────────────────┐
//	│   Events (slog + optional NATS)     │  Structured observability
//	│   Metrics (Prometheus registry)     │
//	└─────────────────────────────────────┘
//
// # Packages
//
//   - noise: blend-value sources (PRNG, OS entropy, environmental walk,
//     feedback filter)
//   - classifier: the state machine and its threshold adapter
//   - voidsink: disposition strategies, sink writer and sink metrics
//   - pipeline: composition exposed to callers
//   - ingest: sampling-cadence worker (simulator or NATS feed)
//   - event: structured event emission
//   - metric: Prometheus instrumentation
//   - config: application configuration
//   - errors: error classification and wrapping
//
// No call in the steady-state path returns an error: classification outcomes
// are reported through returned state and strategy fields, and the only
// explicit failure path (an encode rejection) self-heals on the next sample.
package signaltriage

// Package ingest provides the sampling-cadence worker that feeds a
// pipeline.
//
// Two feed modes are supported:
//
//   - simulate: a clamped random-walk magnitude generated at a fixed
//     interval, the same drive used by bench and demo rigs
//   - nats: JSON samples consumed from a NATS subject
//
// The worker follows the component lifecycle: Start begins feeding,
// Stop shuts down gracefully within a timeout. The surrounding process
// owns cadence and cancellation; the pipeline itself never blocks.
package ingest

// Package metric provides Prometheus instrumentation for the triage
// pipeline.
//
// A Registry wraps a private prometheus.Registry and tracks every collector
// registered through it under a "component/name" key, so components can
// register and unregister their own metrics without colliding. Core pipeline
// metrics (samples processed, processing duration, errors) are created and
// registered automatically; components contribute their own metrics files
// on top (classifier transitions, sink strategies).
//
// All record helpers are safe to call on a nil metrics value: metrics are
// optional everywhere and a component built without a registry simply skips
// instrumentation.
package metric

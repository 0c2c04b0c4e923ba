// Package voidsink implements the second-stage disposition of classified
// events: deciding whether a payload is fully discarded, discarded with a
// retained feature summary, deferred to background handling, or shielded
// from further processing.
//
// The Selector applies a magnitude-driven decision tree on Process and
// exposes a lower-level Write primitive for direct strategy invocation.
// Both mutate a single set of running sink metrics owned by the selector.
// The abstract sink defaults to io.Discard, the platform's null-data sink;
// any io.Writer may be substituted.
//
// Process never fails. Write fails only on an empty payload or an unknown
// strategy, both invalid-argument conditions.
package voidsink

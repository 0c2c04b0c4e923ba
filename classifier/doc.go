// Package classifier implements the finite-state signal classifier at the
// heart of the triage pipeline.
//
// # State machine
//
// Each Classifier owns exactly one active state, starting at Idle. A raw
// magnitude is blended with a noise source (0.8 raw, 0.2 noise), clamped to
// [0,1], and evaluated against the transition table:
//
//	Idle       → Entry when blended > 0.10, else stays Idle
//	Entry      → Flash when blended ≥ flash threshold, else Encode
//	Flash      → Encode, always (one-tick burst marker)
//	Encode     → Background on sufficient confidence (packet encoded,
//	             immune window opened), else Error
//	Background → counts qualifying events inside the immune window and
//	             promotes to Immune at the criteria; a lapsed window resets
//	Immune     → stays Immune, letting the threshold adapter evolve
//	Error      → Idle, always (self-healing)
//
// Entry and Flash form a two-stage admission filter: a severe burst passes
// through the momentary Flash marker before encoding, useful for alerting
// without altering the encoded data. Background and Immune implement a
// sliding-window rate limiter that suppresses repeated low-value re-encoding
// of a sustained signal.
//
// Process never returns an error; the only failure path (an encode below
// the confidence threshold) moves to Error and recovers on the next call.
//
// A Classifier is not internally synchronized. A single pipeline instance
// serializes all calls; independent classifiers share no state.
package classifier

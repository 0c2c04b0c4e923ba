// Package pipeline composes the sink selector and the classifier into the
// orchestration object exposed to callers.
//
// Each Process call runs the sink selector first, then feeds the
// sink-adjusted magnitude into the classifier, so the state machine always
// observes the processed value rather than the raw input. When the
// classifier yields an encoded packet, the packet magnitude is overwritten
// with the processed magnitude for consistency.
//
// A Pipeline serializes its mutating operations with a mutex, so one
// instance may be shared across concurrent producers; at most one Process
// call is in flight at a time. Independent Pipeline instances share no
// state and scale across workers freely.
package pipeline

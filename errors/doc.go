// Package errors provides standardized error handling patterns for
// signaltriage components. It includes error classification, standard error
// variables, and helper functions for consistent error wrapping across the
// pipeline.
//
// The pipeline is designed to keep running: no steady-state condition is
// fatal to the process. Classification distinguishes errors that recover
// locally (transient), errors caused by malformed direct calls (invalid),
// and errors that should stop a component's lifecycle (fatal).
package errors

// Package config provides application configuration for the signaltriage
// binary.
//
// Configuration is JSON, loaded from a file and validated before use.
// DefaultConfig returns a complete working configuration; a config file
// only needs the fields it overrides. Durations are expressed in
// milliseconds or seconds as named by the field to keep the JSON plain.
package config

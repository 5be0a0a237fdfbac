// Package logging wraps log/slog with the handlers and attribute helpers
// used across the daemon.
//
// It provides JSON and console output formats, standardized field keys for
// video/step/correlation identifiers, and context-aware logger derivation so
// every record emitted inside a pipeline run carries the same identifiers.
package logging

// Package services defines shared utilities consumed by the pipeline
// orchestrator and the external integration adapters.
//
// Key responsibilities:
//   - Context helpers that stamp video IDs, step names, and correlation
//     identifiers for logging and tracing.
//   - Structured error markers plus the Wrap helper that classify failures
//     into the pipeline error taxonomy (configuration, concurrency, stage
//     execution, validation).
//
// Use these helpers when wiring new step logic so operational behaviour
// (error handling, observability) stays uniform across the pipeline.
package services

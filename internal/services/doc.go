// Package services defines shared utilities consumed by the pipeline
// components and external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp run IDs, stage names, and the in-flight
//     directory for logging and tracing.
//   - Structured error markers plus the Wrap helper that translate failures
//     into consistent run accounting (skipped vs failed).
//
// Use these helpers when wiring new pipeline logic so operational behaviour
// (error handling, observability) stays uniform across components.
package services

// Package services defines shared utilities consumed by the parse and resolve
// phases and by the external collaborators (catalog, markup converter).
//
// Key responsibilities:
//   - Context helpers that stamp presentation references, slide numbers, and
//     correlation identifiers for logging.
//   - Structured error markers plus the Wrap helper that classify failures
//     into consistent CLI exit codes.
//
// Use these helpers when wiring new collaborators so error handling and
// observability stay uniform across the engine.
package services

// Package config loads, normalizes, and validates baldr configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// BALDR_CATALOG_URL and BALDR_MEDIA_URL. The Config type centralizes every knob
// the CLI and catalog server need.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config

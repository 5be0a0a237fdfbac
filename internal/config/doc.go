// Package config loads, normalizes, and validates daemon configuration from
// TOML, with defaults suitable for local development.
package config

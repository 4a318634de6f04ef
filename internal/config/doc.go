// Package config loads, normalizes, and validates teamreel configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours TEAMREEL_* environment
// overrides. The Config type centralizes the workbook markers, matching
// thresholds and state locations the CLI needs.
//
// Always obtain settings through this package so downstream code receives
// expanded paths, canonical log formats, and clear validation errors.
package config

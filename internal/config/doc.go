// Package config loads, normalizes, and validates displaysync configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// DISPLAYSYNC_INI and DISPLAYSYNC_REGISTRY_KEY. The Config type centralizes
// the registry key, the INI file and section, logging and history settings so
// the CLI discovers them in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical registry key spelling, and clear validation errors.
package config

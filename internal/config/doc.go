// Package config loads, normalizes, and validates the TOML configuration
// file. All path fields are expanded to absolute paths before any other
// package sees them.
package config

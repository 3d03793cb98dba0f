// Package config loads, normalizes, and validates the subkit TOML
// configuration file.
package config

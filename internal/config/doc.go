// Package config holds the settings of a phoneinv run and loads optional
// per-subnet overrides from a YAML file.
package config

// Package config handles YAML configuration loading with environment variable substitution.
//
// Configuration files support ${VAR} syntax for environment variable interpolation.
// Parser thresholds and per-company overrides are owned here and injected
// into the pipeline at construction; there is no module-level state.
package config

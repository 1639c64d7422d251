// Package config is the live configuration store. It layers registry
// defaults, the global and project-local config.toml files, and command-line
// overrides, and records the provenance of every effective value.
package config

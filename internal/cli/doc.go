// Package cli defines the Cobra command tree for the sprout CLI. Each file
// in this package builds one top-level command (run, hello, cache, config,
// etc.) from the shared App. Command implementations delegate to internal
// packages for business logic and only handle flag parsing, I/O formatting,
// and user interaction.
package cli

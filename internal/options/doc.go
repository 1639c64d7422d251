// Package options holds the configuration option registry and turns it into
// command-line surface. The registry is an embedded YAML catalog validated
// against a JSON schema at load time. Each option becomes a `--<key> VALUE`
// flag bound to a SPROUT_CONFIG_* environment variable fallback.
package options

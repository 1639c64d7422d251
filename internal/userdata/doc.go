// Package userdata resolves the on-disk locations the CLI reads and writes:
// the ~/.sprout home root, the cache directory, the credentials file, and the
// global and project-local config files. Each location honors a SPROUT_*
// environment override so tests and CI can sandbox them.
package userdata

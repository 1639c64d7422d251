// Package updater checks GitHub Releases for a newer version of the CLI and
// produces the upgrade banner shown before a run. The check is cached for a
// day on disk; a stale cache is refreshed in the background so the banner
// never delays a run, and every failure along the way is swallowed.
package updater

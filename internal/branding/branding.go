// Package branding provides compile-time identity values for the CLI.
//
// Forkers edit branding.yaml in this package; Go's //go:embed bakes it into
// the binary. Every user-visible name, environment variable prefix, and URL
// is derived from these values.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName          string `yaml:"cli_name"`
	DisplayName      string `yaml:"display_name"`
	Description      string `yaml:"description"`
	HomeDir          string `yaml:"home_dir"`
	EnvPrefix        string `yaml:"env_prefix"`
	GoModule         string `yaml:"go_module"`
	GitHubRepo       string `yaml:"github_repo"`
	DocsURL          string `yaml:"docs_url"`
	AnnouncementsURL string `yaml:"announcements_url"`
	UpgradeCommand   string `yaml:"upgrade_command"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing or empty.
		defaults = brand{
			CLIName:          "sprout",
			DisplayName:      "Sprout",
			Description:      "Launch data app scripts from a local path or URL",
			HomeDir:          ".sprout",
			EnvPrefix:        "SPROUT",
			GoModule:         "github.com/sprout-labs/sprout",
			GitHubRepo:       "sprout-labs/sprout",
			DocsURL:          "https://sprout-labs.github.io/sprout/docs",
			AnnouncementsURL: "https://github.com/sprout-labs/sprout/releases",
			UpgradeCommand:   "go install github.com/sprout-labs/sprout@latest",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "sprout").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name (e.g., "Sprout").
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".sprout").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "SPROUT").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// GoModule returns the Go module path. Not consumed at runtime.
func GoModule() string { load(); return defaults.GoModule }

// GitHubRepo returns the "owner/repo" string used for release lookups.
func GitHubRepo() string { load(); return defaults.GitHubRepo }

// DocsURL returns the documentation page opened by the docs command.
func DocsURL() string { load(); return defaults.DocsURL }

// AnnouncementsURL returns the page linked from the upgrade banner.
func AnnouncementsURL() string { load(); return defaults.AnnouncementsURL }

// UpgradeCommand returns the shell command suggested by the upgrade banner.
func UpgradeCommand() string { load(); return defaults.UpgradeCommand }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("HOME") → "SPROUT_HOME".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}

// ConfigEnvPrefix returns the prefix shared by every configuration option
// environment variable, e.g., "SPROUT_CONFIG_".
func ConfigEnvPrefix() string {
	return EnvVar("CONFIG") + "_"
}

package userdata

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sprout-labs/sprout/internal/branding"
)

// Directory and file name constants for the on-disk layout.
const (
	CacheDir        = "cache"
	ConfigFile      = "config.toml"
	CredentialsFile = "credentials.toml"
)

// Permission constants.
const (
	DirPermSecure  os.FileMode = 0700
	FilePermSecure os.FileMode = 0600
	DirPermNormal  os.FileMode = 0755
)

// GetHomeRoot returns the per-user state directory.
// It checks the SPROUT_HOME environment variable first,
// then falls back to ~/.sprout.
func GetHomeRoot() (string, error) {
	if v := os.Getenv(branding.EnvVar("HOME")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, branding.HomeDir()), nil
}

// GetCacheDir returns the on-disk cache directory.
// It checks SPROUT_CACHE first, then falls back to <home>/cache.
func GetCacheDir() (string, error) {
	if v := os.Getenv(branding.EnvVar("CACHE")); v != "" {
		return v, nil
	}
	root, err := GetHomeRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, CacheDir), nil
}

// GetCredentialsPath returns the path of the activation credentials file.
// It checks SPROUT_CREDENTIALS first, then falls back to <home>/credentials.toml.
func GetCredentialsPath() (string, error) {
	if v := os.Getenv(branding.EnvVar("CREDENTIALS")); v != "" {
		return v, nil
	}
	root, err := GetHomeRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, CredentialsFile), nil
}

// GetConfigPaths returns the configuration files in load order: the global
// file under the home root, then the project-local file under the working
// directory. Later files override earlier ones. Missing files are included;
// callers skip what does not exist.
func GetConfigPaths() ([]string, error) {
	root, err := GetHomeRoot()
	if err != nil {
		return nil, err
	}
	paths := []string{filepath.Join(root, ConfigFile)}

	wd, err := os.Getwd()
	if err != nil {
		return paths, nil
	}
	local := filepath.Join(wd, branding.HomeDir(), ConfigFile)
	if local != paths[0] {
		paths = append(paths, local)
	}
	return paths, nil
}

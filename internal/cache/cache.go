// Package cache manages the on-disk memoization cache that scripts write
// under the home directory.
package cache

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/sprout-labs/sprout/internal/userdata"
)

// Dir returns the cache directory, honoring the SPROUT_CACHE override.
func Dir() (string, error) {
	return userdata.GetCacheDir()
}

// Clear removes dir and everything in it. It reports false without error when
// there was nothing to remove.
func Clear(dir string) (bool, error) {
	info, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking cache directory: %w", err)
	}
	if !info.IsDir() {
		return false, fmt.Errorf("cache path %s is not a directory", dir)
	}
	if err := os.RemoveAll(dir); err != nil {
		return false, fmt.Errorf("removing cache directory: %w", err)
	}
	return true, nil
}

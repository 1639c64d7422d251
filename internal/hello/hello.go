// Package hello ships the demo script run by `sprout hello`.
package hello

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
)

// ScriptName is the file name the demo is written under.
const ScriptName = "hello.py"

//go:embed hello.py
var script []byte

// Source returns the demo script contents.
func Source() []byte {
	return script
}

// Write stores the demo script in dir and returns its path.
func Write(dir string) (string, error) {
	path := filepath.Join(dir, ScriptName)
	if err := os.WriteFile(path, script, 0644); err != nil {
		return "", fmt.Errorf("writing demo script: %w", err)
	}
	return path, nil
}

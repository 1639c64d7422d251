//go:build integration

package integration_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/cast"
	"github.com/spf13/pflag"

	"github.com/sprout-labs/sprout/internal/bootstrap"
	"github.com/sprout-labs/sprout/internal/config"
	"github.com/sprout-labs/sprout/internal/credentials"
	"github.com/sprout-labs/sprout/internal/launch"
	"github.com/sprout-labs/sprout/internal/options"
	"github.com/sprout-labs/sprout/internal/target"
	"github.com/sprout-labs/sprout/internal/updater"
	"github.com/sprout-labs/sprout/internal/userdata"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir    string // SPROUT_HOME
	ProjectDir string // working directory holding .sprout/config.toml
}

// setupTestEnv creates isolated temp directories, points every SPROUT_*
// location override at them, and makes the project the working directory.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available, skipping")
	}

	env := &testEnv{
		HomeDir:    t.TempDir(),
		ProjectDir: t.TempDir(),
	}
	t.Setenv("SPROUT_HOME", env.HomeDir)
	t.Setenv("SPROUT_CACHE", "")
	t.Setenv("SPROUT_CREDENTIALS", "")
	t.Chdir(env.ProjectDir)

	writeFile(t, filepath.Join(env.ProjectDir, ".sprout", "config.toml"), "[runner]\ninterpreter = \"sh\"\n")
	return env
}

// runResult is what one pass through the run pipeline produced.
type runResult struct {
	Output string
	Store  *config.Store
	Err    error
}

// runPipeline drives the same steps as `sprout run`: option flags with env
// fallback, config files, overrides, target resolution, and the launcher
// with a real interpreter.
func runPipeline(t *testing.T, args []string, environ map[string]string) runResult {
	t.Helper()

	reg := options.Default()
	fs := pflag.NewFlagSet("run", pflag.ContinueOnError)
	specs := options.Install(fs, reg)
	if err := fs.Parse(args); err != nil {
		return runResult{Err: err}
	}
	lookup := func(k string) (string, bool) {
		v, ok := environ[k]
		return v, ok
	}
	if err := options.ApplyEnv(fs, specs, lookup); err != nil {
		return runResult{Err: err}
	}

	paths, err := userdata.GetConfigPaths()
	if err != nil {
		t.Fatalf("GetConfigPaths: %v", err)
	}
	store, err := config.Load(reg, paths, config.WithLogger(log.New(io.Discard)))
	if err != nil {
		return runResult{Err: err}
	}
	if err := store.ApplyOverrides(options.Values(fs, specs)); err != nil {
		return runResult{Store: store, Err: err}
	}

	script, err := target.NewResolver(target.WithLogger(log.New(io.Discard))).Resolve(context.Background(), fs.Arg(0))
	if err != nil {
		return runResult{Store: store, Err: err}
	}
	defer script.Close()

	credPath, err := userdata.GetCredentialsPath()
	if err != nil {
		t.Fatalf("GetCredentialsPath: %v", err)
	}

	var out bytes.Buffer
	l := &launch.Launcher{
		Credentials: credentials.New(credPath, credentials.WithIO(strings.NewReader(""), io.Discard)),
		Versions:    updater.New("dev"),
		Bootstrap: &bootstrap.ProcessRunner{
			Interpreter: store.GetString("runner.interpreter"),
			Stdout:      &out,
			Stderr:      &out,
		},
		Out: &out,
		Env: cliEnv(store),
	}
	err = l.Run(context.Background(), script.Path, launch.CommandLine("sprout run", args), fs.Args()[1:])
	return runResult{Output: out.String(), Store: store, Err: err}
}

func cliEnv(store *config.Store) []string {
	set := store.SetBy(config.ProvenanceCLI)
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	env := make([]string, 0, len(keys))
	for _, k := range keys {
		env = append(env, fmt.Sprintf("%s=%s", options.EnvVarName(k), cast.ToString(set[k])))
	}
	return env
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

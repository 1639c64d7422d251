package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/sprout-labs/sprout/internal/bootstrap"
	"github.com/sprout-labs/sprout/internal/config"
	"github.com/sprout-labs/sprout/internal/credentials"
	"github.com/sprout-labs/sprout/internal/issue"
)

type fakeCredentials struct {
	err     error
	checked int
}

func (f *fakeCredentials) CheckActivated(bool) error {
	f.checked++
	return f.err
}

func (f *fakeCredentials) Activate() (*credentials.Activation, error) {
	return &credentials.Activation{}, nil
}

func (f *fakeCredentials) Reset() error { return nil }

type fakeVersions struct {
	notice string
}

func (f *fakeVersions) Notice() (string, bool) {
	return f.notice, f.notice != ""
}

// recordingRunner captures what a run handed to the runtime, including the
// script contents at the time of the call.
type recordingRunner struct {
	calls  int
	inv    bootstrap.Invocation
	store  *config.Store
	script []byte
	err    error
}

func (r *recordingRunner) Run(_ context.Context, inv bootstrap.Invocation) error {
	r.calls++
	r.inv = inv
	r.script, _ = os.ReadFile(inv.ScriptPath)
	return r.err
}

type testEnv struct {
	app     *App
	runner  *recordingRunner
	creds   *fakeCredentials
	env     map[string]string
	browser []string
}

func newTestEnv(t *testing.T, mutate ...func(*Dependencies)) *testEnv {
	t.Helper()
	te := &testEnv{
		runner: &recordingRunner{},
		creds:  &fakeCredentials{},
		env:    map[string]string{},
	}
	deps := Dependencies{
		Logger:      log.New(io.Discard),
		Credentials: te.creds,
		Versions:    &fakeVersions{},
		NewRunner: func(_ *cobra.Command, store *config.Store) bootstrap.Runner {
			te.runner.store = store
			return te.runner
		},
		ConfigPaths: func() ([]string, error) { return nil, nil },
		CacheDir:    func() (string, error) { return t.TempDir() + "/cache", nil },
		OpenBrowser: func(url string) error {
			te.browser = append(te.browser, url)
			return nil
		},
		LookupEnv: func(key string) (string, bool) {
			v, ok := te.env[key]
			return v, ok
		},
	}
	for _, m := range mutate {
		m(&deps)
	}
	te.app = NewApp(BuildInfo{Version: "dev"}, deps)
	return te
}

// execute runs a fresh command tree with args and returns its output.
func (te *testEnv) execute(args ...string) (string, error) {
	root := newRootCmd(te.app)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(""))
	root.SetArgs(args)
	te.app.argv = args
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestLogLevel(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		want    log.Level
		wantErr bool
	}{
		{"error", "error", log.ErrorLevel, false},
		{"warning maps to warn", "warning", log.WarnLevel, false},
		{"info", "info", log.InfoLevel, false},
		{"debug", "debug", log.DebugLevel, false},
		{"unknown", "verbose", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			te := newTestEnv(t)
			_, err := te.execute("--log_level", tt.level, "version")
			if tt.wantErr {
				if !issue.IsBadParameter(err) {
					t.Fatalf("expected bad parameter, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := te.app.logger.GetLevel(); got != tt.want {
				t.Errorf("level = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVersionCommand(t *testing.T) {
	te := newTestEnv(t)
	out, err := te.execute("version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "Sprout, version dev (built from source)\n"; out != want {
		t.Errorf("output = %q, want %q", out, want)
	}

	te.app.build = BuildInfo{Version: "1.2.3", Commit: "abc1234", Date: "2026-01-02"}
	out, err = te.execute("version", "--short")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "1.2.3\n" {
		t.Errorf("short output = %q", out)
	}
}

func TestDocsCommand(t *testing.T) {
	te := newTestEnv(t)
	out, err := te.execute("docs")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Showing help page in browser...") {
		t.Errorf("output = %q", out)
	}
	if len(te.browser) != 1 || !strings.HasPrefix(te.browser[0], "https://") {
		t.Errorf("browser calls = %v", te.browser)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, 0},
		{"bad parameter", issue.BadParameter("nope"), 2},
		{"missing argument", issue.MissingArgument("target"), 2},
		{"script exit status", &bootstrap.ExitError{Code: 7}, 7},
		{"other failure", errors.New("boom"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestActivateAndReset(t *testing.T) {
	path := t.TempDir() + "/credentials.toml"
	t.Setenv("SPROUT_CREDENTIALS", path)

	te := newTestEnv(t, func(d *Dependencies) { d.Credentials = nil })
	root := newRootCmd(te.app)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetIn(strings.NewReader("me@example.com\n"))
	root.SetArgs([]string{"activate"})
	if err := root.Execute(); err != nil {
		t.Fatalf("activate: %v", err)
	}

	store := credentials.New(path)
	a, err := store.Load()
	if err != nil || a == nil {
		t.Fatalf("activation not stored: %v", err)
	}
	if a.Email != "me@example.com" {
		t.Errorf("Email = %q", a.Email)
	}

	if _, err := te.execute("activate", "reset"); err != nil {
		t.Fatalf("activate reset: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("credentials file still present: %v", err)
	}
}

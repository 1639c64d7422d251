package launch

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/sprout-labs/sprout/internal/bootstrap"
)

type recorder struct {
	calls []string
}

type fakeCredentials struct {
	rec         *recorder
	err         error
	autoResolve bool
}

func (f *fakeCredentials) CheckActivated(autoResolve bool) error {
	f.rec.calls = append(f.rec.calls, "activation")
	f.autoResolve = autoResolve
	return f.err
}

type fakeVersions struct {
	rec    *recorder
	notice string
}

func (f *fakeVersions) Notice() (string, bool) {
	f.rec.calls = append(f.rec.calls, "notice")
	return f.notice, f.notice != ""
}

type fakeRunner struct {
	rec *recorder
	inv bootstrap.Invocation
	err error
}

func (f *fakeRunner) Run(_ context.Context, inv bootstrap.Invocation) error {
	f.rec.calls = append(f.rec.calls, "bootstrap")
	f.inv = inv
	return f.err
}

func TestRun_Order(t *testing.T) {
	rec := &recorder{}
	creds := &fakeCredentials{rec: rec}
	runner := &fakeRunner{rec: rec}
	var out bytes.Buffer

	l := &Launcher{
		Credentials: creds,
		Versions:    &fakeVersions{rec: rec, notice: "new version!\n"},
		Bootstrap:   runner,
		Out:         &out,
		Env:         []string{"SPROUT_CONFIG_SERVER_PORT=8080"},
	}
	if err := l.Run(context.Background(), "./app.py", "sprout run ./app.py", []string{"x"}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if diff := cmp.Diff([]string{"activation", "notice", "bootstrap"}, rec.calls); diff != "" {
		t.Errorf("call order mismatch (-want +got):\n%s", diff)
	}
	if !creds.autoResolve {
		t.Error("activation must be checked with auto-resolve")
	}
	if out.String() != "new version!\n" {
		t.Errorf("notice output = %q", out.String())
	}

	want := bootstrap.Invocation{
		ScriptPath:           "./app.py",
		CommandLine:          "sprout run ./app.py",
		Args:                 []string{"x"},
		RunningUnderLauncher: true,
		Env:                  []string{"SPROUT_CONFIG_SERVER_PORT=8080"},
	}
	if diff := cmp.Diff(want, runner.inv); diff != "" {
		t.Errorf("invocation mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_ActivationFailureStopsRun(t *testing.T) {
	rec := &recorder{}
	gateErr := errors.New("not activated")
	l := &Launcher{
		Credentials: &fakeCredentials{rec: rec, err: gateErr},
		Versions:    &fakeVersions{rec: rec},
		Bootstrap:   &fakeRunner{rec: rec},
		Out:         &bytes.Buffer{},
	}

	err := l.Run(context.Background(), "app.py", "sprout run app.py", nil)
	if !errors.Is(err, gateErr) {
		t.Fatalf("expected activation error, got %v", err)
	}
	if diff := cmp.Diff([]string{"activation"}, rec.calls); diff != "" {
		t.Errorf("call order mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_NoNoticeWritesNothing(t *testing.T) {
	rec := &recorder{}
	var out bytes.Buffer
	l := &Launcher{
		Credentials: &fakeCredentials{rec: rec},
		Versions:    &fakeVersions{rec: rec},
		Bootstrap:   &fakeRunner{rec: rec},
		Out:         &out,
	}
	if err := l.Run(context.Background(), "app.py", "sprout run app.py", nil); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestRun_DelegateErrorUnchanged(t *testing.T) {
	rec := &recorder{}
	exitErr := &bootstrap.ExitError{Code: 7}
	l := &Launcher{
		Credentials: &fakeCredentials{rec: rec},
		Versions:    &fakeVersions{rec: rec},
		Bootstrap:   &fakeRunner{rec: rec, err: exitErr},
		Out:         &bytes.Buffer{},
	}

	err := l.Run(context.Background(), "app.py", "sprout run app.py", nil)
	if err != exitErr {
		t.Errorf("expected the runner's error unchanged, got %v", err)
	}
}

func TestCommandLine(t *testing.T) {
	tests := []struct {
		name    string
		program string
		args    []string
		want    string
	}{
		{"no args", "sprout run", nil, "sprout run"},
		{"plain args", "sprout run", []string{"./app.py", "--server.port", "8080"}, "sprout run ./app.py --server.port 8080"},
		{"arg with space", "sprout run", []string{"app.py", "hello world"}, "sprout run app.py 'hello world'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CommandLine(tt.program, tt.args); got != tt.want {
				t.Errorf("CommandLine() = %q, want %q", got, tt.want)
			}
		})
	}
}

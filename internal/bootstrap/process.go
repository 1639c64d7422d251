package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/sprout-labs/sprout/internal/branding"
)

// ProcessRunner runs scripts with an external interpreter.
type ProcessRunner struct {
	// Interpreter is the executable name or path, e.g. "python3".
	Interpreter string

	// Stdin, Stdout and Stderr can be set for testing; they default to the
	// process's own streams.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Environ returns the inherited environment; os.Environ when nil.
	Environ func() []string
}

// Run executes `<interpreter> <script> <args...>` and waits for it.
func (p *ProcessRunner) Run(ctx context.Context, inv Invocation) error {
	if p.Interpreter == "" {
		return fmt.Errorf("no interpreter configured: set runner.interpreter")
	}
	bin, err := exec.LookPath(p.Interpreter)
	if err != nil {
		return fmt.Errorf("interpreter %q not found: %w", p.Interpreter, err)
	}

	args := append([]string{inv.ScriptPath}, inv.Args...)
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Env = p.buildEnv(inv)
	cmd.Stdin = orReader(p.Stdin, os.Stdin)
	cmd.Stdout = orWriter(p.Stdout, os.Stdout)
	cmd.Stderr = orWriter(p.Stderr, os.Stderr)

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitError{Code: exitErr.ExitCode(), Err: err}
		}
		return fmt.Errorf("starting %s: %w", p.Interpreter, err)
	}
	return nil
}

func (p *ProcessRunner) buildEnv(inv Invocation) []string {
	environ := p.Environ
	if environ == nil {
		environ = os.Environ
	}
	env := environ()

	running := "false"
	if inv.RunningUnderLauncher {
		running = "true"
	}
	env = setEnv(env, branding.EnvVar("RUNNING_UNDER_LAUNCHER"), running)
	env = setEnv(env, branding.EnvVar("COMMAND_LINE"), inv.CommandLine)
	env = setEnv(env, branding.EnvVar("MAIN_SCRIPT_PATH"), inv.ScriptPath)

	for _, kv := range inv.Env {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		env = setEnv(env, key, value)
	}
	return env
}

// setEnv sets or replaces an environment variable in the env slice.
func setEnv(env []string, key, value string) []string {
	prefix := key + "="
	for i, e := range env {
		if strings.HasPrefix(e, prefix) {
			env[i] = prefix + value
			return env
		}
	}
	return append(env, prefix+value)
}

func orReader(r, def io.Reader) io.Reader {
	if r == nil {
		return def
	}
	return r
}

func orWriter(w, def io.Writer) io.Writer {
	if w == nil {
		return def
	}
	return w
}

// Package launch runs the preamble every script execution goes through:
// the activation gate, the upgrade notice, and the hand-off to the bootstrap
// runtime.
package launch

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"mvdan.cc/sh/v3/syntax"

	"github.com/sprout-labs/sprout/internal/bootstrap"
)

// ActivationChecker gates runs on a completed activation.
type ActivationChecker interface {
	CheckActivated(autoResolve bool) error
}

// VersionNotifier reports a pending upgrade. It never fails; a check that
// could not complete reports no notice.
type VersionNotifier interface {
	Notice() (string, bool)
}

// Launcher wires the preamble collaborators to a bootstrap runner.
type Launcher struct {
	Credentials ActivationChecker
	Versions    VersionNotifier
	Bootstrap   bootstrap.Runner
	// Out receives the upgrade notice; os.Stdout when nil.
	Out io.Writer
	// Env holds KEY=VALUE entries passed to the runtime.
	Env []string
}

// Run checks activation, prints the upgrade notice when one is pending, and
// delegates to the bootstrap runner. The runner's error is returned as is.
func (l *Launcher) Run(ctx context.Context, script, commandLine string, args []string) error {
	inv := bootstrap.Invocation{
		ScriptPath:           script,
		CommandLine:          commandLine,
		Args:                 args,
		RunningUnderLauncher: true,
		Env:                  l.Env,
	}

	if l.Credentials != nil {
		if err := l.Credentials.CheckActivated(true); err != nil {
			return err
		}
	}

	if l.Versions != nil {
		if notice, ok := l.Versions.Notice(); ok {
			out := l.Out
			if out == nil {
				out = os.Stdout
			}
			fmt.Fprint(out, notice)
		}
	}

	if l.Bootstrap == nil {
		return fmt.Errorf("no bootstrap runner configured")
	}
	return l.Bootstrap.Run(ctx, inv)
}

// CommandLine renders program followed by args as a shell command line,
// quoting arguments that need it.
func CommandLine(program string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, program)
	for _, a := range args {
		q, err := syntax.Quote(a, syntax.LangBash)
		if err != nil {
			q = fmt.Sprintf("%q", a)
		}
		parts = append(parts, q)
	}
	return strings.Join(parts, " ")
}

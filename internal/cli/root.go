package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/sprout-labs/sprout/internal/bootstrap"
	"github.com/sprout-labs/sprout/internal/branding"
	"github.com/sprout-labs/sprout/internal/issue"
	"github.com/sprout-labs/sprout/internal/options"
)

// Exit codes other than a script's own status.
const (
	exitFailure      = 1
	exitBadParameter = 2
)

// logLevels maps the accepted --log_level choices to logger levels.
var logLevels = map[string]log.Level{
	"error":   log.ErrorLevel,
	"warning": log.WarnLevel,
	"info":    log.InfoLevel,
	"debug":   log.DebugLevel,
}

func newRootCmd(a *App) *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:   branding.CLIName(),
		Short: branding.Description(),
		Long: branding.DisplayName() + ` launches data app scripts from a local path or a URL.

Every configuration option is also a flag of the run command and an
environment variable, e.g. --server.port and ` + options.EnvVarName("server.port") + `.

` + SubtitleStyle.Render("Examples:") + `
  ` + branding.CLIName() + ` run app.py --server.port 8080
  ` + branding.CLIName() + ` run https://example.com/app.py
  ` + branding.CLIName() + ` config show`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setLogLevel(logLevel)
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log_level", "info", "Log level: error, warning, info, or debug")
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return badParameter(err)
	})

	root.AddCommand(
		newRunCmd(a),
		newHelloCmd(a),
		newCacheCmd(a),
		newConfigCmd(a),
		newActivateCmd(a),
		newDocsCmd(a),
		newVersionCmd(a),
	)
	root.AddCommand(newLegacyCmds(a)...)
	return root
}

func (a *App) setLogLevel(name string) error {
	level, ok := logLevels[strings.ToLower(name)]
	if !ok {
		return issue.BadParameter("%q is not one of error, warning, info, debug", name).WithParam("log_level")
	}
	a.logger.SetLevel(level)
	return nil
}

// versionString returns a formatted version string for display.
func (a *App) versionString() string {
	if a.build.Version == "" || a.build.Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", a.build.Version, a.build.Commit, a.build.Date)
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	a := NewApp(BuildInfo{Version: version, Commit: commit, Date: date}, Dependencies{})
	return fang.Execute(
		context.Background(),
		newRootCmd(a),
		fang.WithVersion(a.versionString()),
		fang.WithNotifySignal(os.Interrupt),
	)
}

// ExitCode maps an error returned by Execute to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *bootstrap.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	if issue.IsBadParameter(err) {
		return exitBadParameter
	}
	return exitFailure
}

// badParameter wraps err as a BadParameterError unless it already is one.
func badParameter(err error) error {
	if issue.IsBadParameter(err) {
		return err
	}
	return issue.BadParameter("%v", err).Wrap(err)
}

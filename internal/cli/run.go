package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/sprout-labs/sprout/internal/branding"
	"github.com/sprout-labs/sprout/internal/issue"
	"github.com/sprout-labs/sprout/internal/options"
)

func newRunCmd(a *App) *cobra.Command {
	var specs []options.FlagSpec

	cmd := &cobra.Command{
		Use:   "run [TARGET] [-- ARGS...]",
		Short: "Run a script from a local path or a URL",
		Long: `Run a script.

TARGET is a local file path or an http(s) URL. A URL is downloaded into a
temporary directory first, which is removed when the run ends. When TARGET is
omitted it is read from ` + branding.EnvVar("RUN_TARGET") + `.

Arguments after "--" are passed to the script. Every configuration option can
be set with its flag, e.g. --server.port 8080, or its environment variable.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTarget(cmd, specs, args)
		},
	}
	specs = installOptionFlags(cmd, a)
	return cmd
}

// installOptionFlags adds one flag per configuration option to cmd and
// mentions each flag's environment variable in its help.
func installOptionFlags(cmd *cobra.Command, a *App) []options.FlagSpec {
	specs := options.Install(cmd.Flags(), a.deps.Registry)
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if env, ok := options.EnvVarOf(f); ok {
			f.Usage += fmt.Sprintf(" [env var: %s]", env)
		}
	})
	return specs
}

func (a *App) runTarget(cmd *cobra.Command, specs []options.FlagSpec, args []string) error {
	store, err := a.loadConfig(cmd, specs)
	if err != nil {
		return err
	}

	raw, rest := "", args
	if len(args) > 0 {
		raw, rest = args[0], args[1:]
	} else if v, ok := a.deps.LookupEnv(branding.EnvVar("RUN_TARGET")); ok {
		raw = v
	}
	if raw == "" {
		return issue.MissingArgument("target")
	}

	script, err := a.deps.Resolver.Resolve(cmd.Context(), raw)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := script.Close(); cerr != nil {
			a.logger.Warn("removing temporary script directory", "err", cerr)
		}
	}()

	return a.launchScript(cmd, store, script.Path, rest)
}

package cli

import (
	"os"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/sprout-labs/sprout/internal/bootstrap"
	"github.com/sprout-labs/sprout/internal/branding"
	"github.com/sprout-labs/sprout/internal/cache"
	"github.com/sprout-labs/sprout/internal/config"
	"github.com/sprout-labs/sprout/internal/credentials"
	"github.com/sprout-labs/sprout/internal/launch"
	"github.com/sprout-labs/sprout/internal/options"
	"github.com/sprout-labs/sprout/internal/platform"
	"github.com/sprout-labs/sprout/internal/target"
	"github.com/sprout-labs/sprout/internal/updater"
	"github.com/sprout-labs/sprout/internal/userdata"
)

type (
	// BuildInfo is the version metadata stamped in at link time.
	BuildInfo struct {
		Version string
		Commit  string
		Date    string
	}

	// CredentialStore is the activation surface the commands need.
	CredentialStore interface {
		CheckActivated(autoResolve bool) error
		Activate() (*credentials.Activation, error)
		Reset() error
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Registry *options.Registry
		Resolver *target.Resolver
		Logger   *log.Logger

		// Credentials is built per command from the credentials path when nil,
		// so its prompts go to the command's streams.
		Credentials CredentialStore
		Versions    launch.VersionNotifier
		// NewRunner builds the bootstrap runner once the configuration for a
		// run is known.
		NewRunner func(cmd *cobra.Command, store *config.Store) bootstrap.Runner

		ConfigPaths func() ([]string, error)
		CacheDir    func() (string, error)
		OpenBrowser func(url string) error
		LookupEnv   func(key string) (string, bool)
	}

	// App wires the command tree to its collaborators.
	App struct {
		build  BuildInfo
		deps   Dependencies
		logger *log.Logger
		// argv is the raw argument list, used for the command-line display.
		argv []string
	}
)

// NewApp builds an App, filling nil dependencies with production defaults.
func NewApp(build BuildInfo, deps Dependencies) *App {
	if deps.Logger == nil {
		deps.Logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: branding.CLIName()})
	}
	if deps.Registry == nil {
		deps.Registry = options.Default()
	}
	if deps.Resolver == nil {
		deps.Resolver = target.NewResolver(target.WithLogger(deps.Logger))
	}
	if deps.Versions == nil {
		deps.Versions = newVersionNotifier(build.Version)
	}
	if deps.NewRunner == nil {
		deps.NewRunner = newProcessRunner
	}
	if deps.ConfigPaths == nil {
		deps.ConfigPaths = userdata.GetConfigPaths
	}
	if deps.CacheDir == nil {
		deps.CacheDir = cache.Dir
	}
	if deps.OpenBrowser == nil {
		deps.OpenBrowser = platform.OpenBrowser
	}
	if deps.LookupEnv == nil {
		deps.LookupEnv = os.LookupEnv
	}
	return &App{
		build:  build,
		deps:   deps,
		logger: deps.Logger,
		argv:   os.Args[1:],
	}
}

func newVersionNotifier(version string) launch.VersionNotifier {
	home, err := userdata.GetHomeRoot()
	if err != nil {
		return updater.New(version)
	}
	return updater.New(version, updater.WithCacheDir(home))
}

func newProcessRunner(cmd *cobra.Command, store *config.Store) bootstrap.Runner {
	return &bootstrap.ProcessRunner{
		Interpreter: store.GetString("runner.interpreter"),
		Stdin:       cmd.InOrStdin(),
		Stdout:      cmd.OutOrStdout(),
		Stderr:      cmd.ErrOrStderr(),
	}
}

// credentials returns the activation store, prompting on the command's
// streams.
func (a *App) credentials(cmd *cobra.Command) (CredentialStore, error) {
	if a.deps.Credentials != nil {
		return a.deps.Credentials, nil
	}
	path, err := userdata.GetCredentialsPath()
	if err != nil {
		return nil, err
	}
	return credentials.New(path, credentials.WithIO(cmd.InOrStdin(), cmd.OutOrStdout())), nil
}

// loadConfig builds the live configuration for a command that installed the
// option flags: config files, then environment fallbacks, then flags.
func (a *App) loadConfig(cmd *cobra.Command, specs []options.FlagSpec) (*config.Store, error) {
	if err := options.ApplyEnv(cmd.Flags(), specs, a.deps.LookupEnv); err != nil {
		return nil, badParameter(err)
	}

	paths, err := a.deps.ConfigPaths()
	if err != nil {
		return nil, err
	}
	store, err := config.Load(a.deps.Registry, paths, config.WithLogger(a.logger))
	if err != nil {
		return nil, err
	}

	if err := store.ApplyOverrides(options.Values(cmd.Flags(), specs)); err != nil {
		return nil, badParameter(err)
	}
	return store, nil
}

// launchScript runs the launch preamble and hands the script to the runtime.
func (a *App) launchScript(cmd *cobra.Command, store *config.Store, script string, args []string) error {
	creds, err := a.credentials(cmd)
	if err != nil {
		return err
	}
	l := &launch.Launcher{
		Credentials: creds,
		Versions:    a.deps.Versions,
		Bootstrap:   a.deps.NewRunner(cmd, store),
		Out:         cmd.OutOrStdout(),
		Env:         overrideEnv(store),
	}
	a.logger.Debug("launching script", "path", script, "args", args)
	return l.Run(cmd.Context(), script, launch.CommandLine(branding.CLIName(), a.argv), args)
}

// overrideEnv renders every option set on the command line as the
// environment variable that binds it.
func overrideEnv(store *config.Store) []string {
	set := store.SetBy(config.ProvenanceCLI)
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	env := make([]string, 0, len(keys))
	for _, k := range keys {
		env = append(env, options.EnvVarName(k)+"="+cast.ToString(set[k]))
	}
	return env
}

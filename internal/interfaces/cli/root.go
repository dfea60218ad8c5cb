// Package cli implements the keyip command line: query, projection and
// expiration commands over the examination data backend.
package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/turtacn/KeyIP-PatentClient/internal/config"
	"github.com/turtacn/KeyIP-PatentClient/internal/environment"
	"github.com/turtacn/KeyIP-PatentClient/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/KeyIP-PatentClient/pkg/errors"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

type cliContextKey struct{}

// RootOptions holds global CLI flags.
type RootOptions struct {
	ConfigPath   string
	LogLevel     string
	OutputFormat string
	Verbose      bool
	Timeout      time.Duration
	ForceXML     bool
}

// CLIContext carries initialized dependencies through the command tree.
type CLIContext struct {
	Config       *config.Config
	Logger       logging.Logger
	Env          *environment.Environment
	OutputFormat string
	ForceXML     bool

	cancel context.CancelFunc
}

// EnvFactory builds the Environment a command runs against.
type EnvFactory func(ctx context.Context, cfg *config.Config, logger logging.Logger, opts ...environment.Option) (*environment.Environment, error)

func defaultEnvFactory(ctx context.Context, cfg *config.Config, logger logging.Logger, opts ...environment.Option) (*environment.Environment, error) {
	return environment.New(ctx, cfg, append([]environment.Option{environment.WithLogger(logger)}, opts...)...)
}

// RootOption customizes NewRootCommand.
type RootOption func(*rootSettings)

type rootSettings struct {
	fs         afero.Fs
	envFactory EnvFactory
}

// WithFs sets the filesystem settings are read from and seeded on.
func WithFs(fs afero.Fs) RootOption {
	return func(s *rootSettings) { s.fs = fs }
}

func WithEnvFactory(f EnvFactory) RootOption {
	return func(s *rootSettings) { s.envFactory = f }
}

// NewRootCommand creates the root command with its global flags and every
// subcommand.
func NewRootCommand(ropts ...RootOption) *cobra.Command {
	settings := &rootSettings{fs: afero.NewOsFs(), envFactory: defaultEnvFactory}
	for _, o := range ropts {
		o(settings)
	}
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "keyip",
		Short: "Query USPTO patent prosecution records",
		Long: "keyip queries patent examination records by application, patent or\n" +
			"publication number and derives statutory term and expiration dates.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return persistentPreRun(cmd, opts, settings)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return nil
			}
			return cliCtx.close()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.ConfigPath, "config", "c", "", "settings file (default: $KEYIP_SETTINGS or ~/.keyip/settings.yaml)")
	pf.StringVar(&opts.LogLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	pf.StringVarP(&opts.OutputFormat, "output", "o", "table", "output format (table, json)")
	pf.BoolVarP(&opts.Verbose, "verbose", "v", false, "enable debug logging")
	pf.DurationVar(&opts.Timeout, "timeout", 5*time.Minute, "overall operation timeout")
	pf.BoolVar(&opts.ForceXML, "force-xml", false, "always use the bulk XML representation")

	cmd.AddCommand(
		NewGetCmd(),
		NewFilterCmd(),
		NewValuesCmd(),
		NewExpirationCmd(),
		NewFieldsCmd(),
		NewCacheCmd(),
	)
	return cmd
}

func persistentPreRun(cmd *cobra.Command, opts *RootOptions, settings *rootSettings) error {
	switch strings.ToLower(opts.OutputFormat) {
	case "table", "json":
	default:
		return errors.Validation("unsupported output format").WithDetail(opts.OutputFormat)
	}

	level := opts.LogLevel
	if opts.Verbose {
		level = "debug"
	}
	logger := logging.NewCLILogger(level)

	path := opts.ConfigPath
	if path == "" {
		path = config.DefaultSettingsPath()
	}
	cfg, err := config.Bootstrap(settings.fs, config.ExpandHome(path))
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeConfig, "config initialization failed")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cancel := context.CancelFunc(func() {})
	if opts.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
	}

	cliCtx := &CLIContext{
		Config:       cfg,
		Logger:       logger,
		OutputFormat: strings.ToLower(opts.OutputFormat),
		ForceXML:     opts.ForceXML,
		cancel:       cancel,
	}
	if needsEnvironment(cmd) {
		var envOpts []environment.Option
		if cmd.Annotations["startup_sweep"] == "false" {
			envOpts = append(envOpts, environment.WithoutStartupSweep())
		}
		env, err := settings.envFactory(ctx, cfg, logger, envOpts...)
		if err != nil {
			cancel()
			return err
		}
		cliCtx.Env = env
	}
	cmd.SetContext(context.WithValue(ctx, cliContextKey{}, cliCtx))
	return nil
}

func (c *CLIContext) close() error {
	if c.cancel != nil {
		c.cancel()
	}
	if c.Env == nil {
		return nil
	}
	return c.Env.Close()
}

// needsEnvironment reports whether cmd talks to the backend or cache.
func needsEnvironment(cmd *cobra.Command) bool {
	return cmd.Annotations["offline"] != "true"
}

// GetCLIContext extracts CLIContext from a command's context.
func GetCLIContext(cmd *cobra.Command) (*CLIContext, error) {
	ctx := cmd.Context()
	if ctx == nil {
		return nil, errors.Validation("command context is nil")
	}
	cliCtx, ok := ctx.Value(cliContextKey{}).(*CLIContext)
	if !ok || cliCtx == nil {
		return nil, errors.Validation("CLIContext not found in command context")
	}
	return cliCtx, nil
}

// Execute is the main entry point for the CLI application.
func Execute() error {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		PrintError(rootCmd, err)
		return err
	}
	return nil
}

//Personal.AI order the ending

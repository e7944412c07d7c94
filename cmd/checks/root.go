package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"digital.vasic.checks/pkg/config"
	"digital.vasic.checks/pkg/env"
	"digital.vasic.checks/pkg/logging"
	"digital.vasic.checks/pkg/plugin"
	"digital.vasic.checks/pkg/registry"
	"digital.vasic.checks/pkg/suites/builtin"
)

// app holds state shared by every subcommand.
type app struct {
	// Global flags
	configPath string
	envFile    string
	verbose    bool
	logFormat  string

	registry *registry.DefaultRegistry
	cfg      *config.Config
	logger   logging.Logger
}

// newRootCmd builds the command tree. A nil registry means the
// built-in suites.
func newRootCmd(reg *registry.DefaultRegistry) *cobra.Command {
	a := &app{registry: reg}

	rootCmd := &cobra.Command{
		Use:   "checks",
		Short: "Run non-fatal check suites and report their diagnostics",
		Long: `checks runs suites of inline checks. A failing check is reported to the
configured diagnostics sink and never stops the suite.

Configuration comes from an optional YAML file (--config) overridden by
CHECKS_* environment variables, which may also be read from a .env file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "Optional .env file with CHECKS_* variables")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "Log format: console, json or zap")

	rootCmd.AddCommand(newListCmd(a))
	rootCmd.AddCommand(newRunCmd(a))
	rootCmd.AddCommand(newServeCmd(a))
	return rootCmd
}

// close releases the logger. Subcommands defer it because cobra
// skips post-run hooks when RunE fails.
func (a *app) close() {
	if a.logger != nil {
		_ = a.logger.Close()
		a.logger = nil
	}
}

// setup resolves configuration, the logger and the registry.
func (a *app) setup(cmd *cobra.Command) error {
	cfg := config.Default()
	if a.configPath != "" {
		loaded, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	loader := env.NewLoader()
	if a.envFile != "" {
		if err := loader.Load(a.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load env file: %w", err)
		}
	}
	if err := cfg.ApplyEnv(loader); err != nil {
		return fmt.Errorf("invalid environment: %w", err)
	}

	if cmd.Flags().Changed("verbose") {
		cfg.Log.Verbose = a.verbose
	}
	if a.logFormat != "" {
		cfg.Log.Format = a.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := cfg.BuildLogger()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if a.registry == nil {
		a.registry = registry.NewRegistry()
		loader := plugin.NewLoader(plugin.NewRegistry())
		err := loader.LoadAndInit(
			[]plugin.Plugin{builtin.Pack()},
			&plugin.Context{Suites: a.registry, Logger: logger},
		)
		if err != nil {
			_ = logger.Close()
			return err
		}
	}

	a.cfg = cfg
	a.logger = logger
	logger.Debug("configuration loaded",
		logging.StringField("config", a.configPath),
		logging.StringField("log_format", cfg.Log.Format),
		logging.IntField("suites", a.registry.Count()),
	)
	return nil
}

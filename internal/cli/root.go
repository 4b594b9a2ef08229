// Package cli defines the kerfcut command-line interface.
package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/piwi3910/kerfcut/internal/config"
	"github.com/piwi3910/kerfcut/internal/logging"
)

// Options stores global CLI options shared between commands.
type Options struct {
	ConfigPath string
	EnvFile    string
	LogLevel   logging.Level
}

// Execute builds the root command, runs it with the provided args and logger, and returns any error.
func Execute(args []string, logger *slog.Logger) error {
	if logger == nil {
		logger = logging.NewLogger(os.Stderr, logging.LevelInfo)
	}

	rootOpts := &Options{
		ConfigPath: config.DefaultConfigPath(),
		EnvFile:    ".env",
		LogLevel:   logging.LevelInfo,
	}

	rootCmd := newRootCommand(rootOpts, logger)
	rootCmd.SetArgs(args)

	return rootCmd.Execute()
}

func newRootCommand(opts *Options, logger *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "kerfcut",
		Short:         "kerfcut lays out rectangular parts on stock sheets",
		Long:          "kerfcut packs a cut list onto stock sheets with the guillotine, shelf or branch-and-bound strategies, accounting for saw kerf, and exports the layouts.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.ConfigPath, opts.EnvFile)
			if err != nil {
				return err
			}

			levelName := cfg.LogLevel
			if flag := cmd.Flag("log-level"); flag != nil && flag.Changed {
				levelName = flag.Value.String()
			}
			level := logging.ParseLevel(levelName)
			opts.LogLevel = level
			logger = logging.NewLogger(cmd.ErrOrStderr(), level)

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx = context.WithValue(ctx, loggerKey{}, logger)
			ctx = context.WithValue(ctx, configKey{}, cfg)
			cmd.SetContext(ctx)
			logger.Debug("config loaded", "path", opts.ConfigPath, "algorithm", cfg.Algorithm, "kerf", cfg.Kerf)
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", opts.ConfigPath, "Path to the kerfcut config file")
	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", opts.EnvFile, "Path to a .env file with KERFCUT_* variables")
	cmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		newOptimizeCommand(),
		newCompareCommand(),
		newPresetsCommand(),
		newOffcutsCommand(),
		newServeCommand(),
	)

	return cmd
}

// loggerKey is a private context key used to store a logger in command contexts.
type loggerKey struct{}

// configKey stores the loaded *config.Config.
type configKey struct{}

// LoggerFromContext extracts a logger from the context or falls back to a default logger.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return logging.NewLogger(os.Stderr, logging.LevelInfo)
	}
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	return logging.NewLogger(os.Stderr, logging.LevelInfo)
}

// ConfigFromContext returns the loaded config, or the defaults when none was loaded.
func ConfigFromContext(ctx context.Context) *config.Config {
	if ctx != nil {
		if c, ok := ctx.Value(configKey{}).(*config.Config); ok && c != nil {
			return c
		}
	}
	return config.Default()
}

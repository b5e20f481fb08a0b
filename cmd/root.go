// Package cmd implements the CLI commands for qbformat using Cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/gaurav-prasanna/qbformat/config"
	"github.com/gaurav-prasanna/qbformat/core"
)

// Persistent flag variables.
var (
	flagConfig  string
	flagVerbose bool
	flagMode    string
)

var (
	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "qbformat",
	Short: "qbformat - reshape exported question banks into flat quiz records",
	Long: `qbformat converts creative-question exports (nested JSON with HTML
markup) into flat records with a canonical chapter name, a plain-text
stimulus and four question/answer slots.

Usage:
  qbformat convert <file|url|-> [flags]
  qbformat serve
  qbformat chapters --mode ict
  qbformat classify --mode physics "<chapter label>"`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(flagConfig)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("mode") {
			if _, err := core.ParseTaxonomy(flagMode); err != nil {
				return err
			}
			loaded.Mode = flagMode
		}
		cfg = loaded

		logger, err = newLogger(cfg.Log, flagVerbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagMode, "mode", "physics", "Chapter taxonomy: physics or ict")
}

// newLogger builds the process logger. Logs go to stderr so that
// --stdout output stays clean.
func newLogger(lc config.LogConfig, verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if lc.Format == "console" {
		zc = zap.NewDevelopmentConfig()
	}

	level := zapcore.InfoLevel
	if lc.Level != "" {
		parsed, err := zapcore.ParseLevel(lc.Level)
		if err != nil {
			return nil, err
		}
		level = parsed
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}

	return zc.Build()
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

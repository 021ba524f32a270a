// Package main is the entry point for the stone-format CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/askiada/stone-format/internal/config"
	"github.com/askiada/stone-format/internal/logging"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// cfg holds the settings resolved before any subcommand runs.
	cfg config.Config

	logger = zap.NewNop()

	settings = viper.New()
)

// rootCmd is the base command for the stone-format CLI.
var rootCmd = &cobra.Command{
	Use:   "stone-format",
	Short: "Format stone challenge inputs and solutions",
	Long: `stone-format converts the files exchanged with the stone challenge solver.

matrix turns a grid text file into the JSON matrix read by the solver, and moves
turns a solver result into the U/D/L/R move string submitted as a solution.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		cfgFile, _ := cmd.Flags().GetString("config")

		used, err := config.ReadInConfig(settings, cfgFile)
		if err != nil {
			return err
		}

		cfg, err = config.Load(settings)
		if err != nil {
			return err
		}

		logger, err = logging.New(cfg.Verbose)
		if err != nil {
			return err
		}

		if used != "" {
			logger.Debug("Using config file", zap.String("path", used))
		}

		return nil
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		_ = logger.Sync()
	},
}

func init() {
	config.SetDefaults(settings)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default: ./stone-format.yaml or ~/.config/stone-format/stone-format.yaml)")
	flags.BoolP("verbose", "v", false, "enable debug logs")
	flags.Bool("measure", false, "log the average duration of every pipeline step")
	flags.String("graph-dir", "", "write a Graphviz DOT file of each conversion pipeline to this directory")

	bindFlag(flags.Lookup("verbose"), config.KeyVerbose)
	bindFlag(flags.Lookup("measure"), config.KeyMeasure)
	bindFlag(flags.Lookup("graph-dir"), config.KeyGraphDir)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1) //nolint:gocritic // stop already ran
	}
}

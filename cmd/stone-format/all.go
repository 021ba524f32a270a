package main

import (
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Run the matrix and moves conversions concurrently",
	Long: `all runs matrix and moves at the same time with the configured paths.
The first failure cancels the other conversion.`,
	Args: cobra.NoArgs,
	RunE: runAll,
}

func init() {
	rootCmd.AddCommand(allCmd)
}

func runAll(cmd *cobra.Command, _ []string) error {
	errGrp, ctx := errgroup.WithContext(commandContext(cmd))

	errGrp.Go(func() error {
		return convertMatrix(ctx, cfg.Matrix)
	})

	errGrp.Go(func() error {
		return convertMoves(ctx, cfg.Moves)
	})

	return errGrp.Wait() //nolint:wrapcheck // conversions wrap their errors
}

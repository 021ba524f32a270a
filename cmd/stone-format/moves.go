package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/askiada/stone-format/internal/config"
	"github.com/askiada/stone-format/internal/moves"
)

var movesCmd = &cobra.Command{
	Use:   "moves",
	Short: "Convert a solver result into a move string",
	Long: `moves reads a solver result, a JSON array of [row, column] positions, and writes
the U/D/L/R move between each pair of consecutive positions, separated by spaces.
Consecutive positions must be one orthogonal cell apart; nothing is written otherwise.`,
	Args: cobra.NoArgs,
	RunE: runMoves,
}

func init() {
	movesCmd.Flags().String("input", config.DefaultMovesInput, "solver result file")
	movesCmd.Flags().String("output", config.DefaultMovesOutput, "move string file, replaced if it exists")

	bindFlag(movesCmd.Flags().Lookup("input"), config.KeyMovesInput)
	bindFlag(movesCmd.Flags().Lookup("output"), config.KeyMovesOutput)

	rootCmd.AddCommand(movesCmd)
}

func runMoves(cmd *cobra.Command, _ []string) error {
	return convertMoves(commandContext(cmd), cfg.Moves)
}

func convertMoves(ctx context.Context, paths config.Paths) error {
	opts, report, err := pipelineOptions("moves")
	if err != nil {
		return err
	}

	_, err = moves.NewEncoder(logger.Named("moves"), opts...).ConvertFile(ctx, paths.Input, paths.Output)
	if err != nil {
		return err
	}

	report()

	return nil
}

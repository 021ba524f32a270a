package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/askiada/stone-format/internal/config"
	"github.com/askiada/stone-format/internal/matrix"
)

var matrixCmd = &cobra.Command{
	Use:   "matrix",
	Short: "Convert a grid text file into a JSON matrix",
	Long: `matrix reads a grid, one row per line with cells separated by single spaces,
and writes it as a JSON array of arrays. The first 3 of the document becomes 2 and
then the first 4 becomes 3, matching the start and finish cells expected by the solver.`,
	Args: cobra.NoArgs,
	RunE: runMatrix,
}

func init() {
	matrixCmd.Flags().String("input", config.DefaultMatrixInput, "grid text file")
	matrixCmd.Flags().String("output", config.DefaultMatrixOutput, "JSON matrix file, replaced if it exists")

	bindFlag(matrixCmd.Flags().Lookup("input"), config.KeyMatrixInput)
	bindFlag(matrixCmd.Flags().Lookup("output"), config.KeyMatrixOutput)

	rootCmd.AddCommand(matrixCmd)
}

func runMatrix(cmd *cobra.Command, _ []string) error {
	return convertMatrix(commandContext(cmd), cfg.Matrix)
}

func convertMatrix(ctx context.Context, paths config.Paths) error {
	opts, report, err := pipelineOptions("matrix")
	if err != nil {
		return err
	}

	err = matrix.NewConverter(logger.Named("matrix"), opts...).ConvertFile(ctx, paths.Input, paths.Output)
	if err != nil {
		return err
	}

	report()

	return nil
}

package moves

import (
	"context"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/askiada/stone-format/pkg/pipeline"
	"github.com/askiada/stone-format/pkg/pipeline/model"
)

// Encoder turns solver results into move sequences.
type Encoder struct {
	logger *zap.Logger
	opts   []model.PipelineOption
}

// NewEncoder creates an encoder. opts are applied to every encoding pipeline.
func NewEncoder(logger *zap.Logger, opts ...model.PipelineOption) *Encoder {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Encoder{
		logger: logger,
		opts:   opts,
	}
}

// pairwise returns a step function encoding the move from the previous position to the
// current one. The first position has no predecessor and yields no move, so the step
// must not run concurrently.
func pairwise() func(ctx context.Context, to Coordinate) (Move, error) {
	var from *Coordinate

	return func(_ context.Context, to Coordinate) (Move, error) {
		if from == nil {
			from = &to

			return 0, nil
		}

		move, err := EncodeMove(*from, to)
		if err != nil {
			return 0, err
		}

		from = &to

		return move, nil
	}
}

// Encode returns one move per pair of consecutive positions.
// Nothing is returned unless every pair is one orthogonal cell apart.
func (e *Encoder) Encode(ctx context.Context, coords []Coordinate) ([]Move, error) {
	pipe, err := pipeline.New(ctx, e.opts...)
	if err != nil {
		return nil, errors.Wrap(err, "unable to create pipeline")
	}

	positions, err := pipeline.AddRootStep(pipe, "emit positions", func(ctx context.Context, rootChan chan<- Coordinate) error {
		for _, coord := range coords {
			err := pipeline.SendOrDone(ctx, rootChan, coord)
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "unable to add emit positions step")
	}

	encoded, err := pipeline.AddStepOneToOneOrZero(pipe, "encode move", positions, pairwise())
	if err != nil {
		return nil, errors.Wrap(err, "unable to add encode move step")
	}

	moves := make([]Move, 0, len(coords))

	err = pipeline.AddSink(pipe, "collect moves", encoded, func(_ context.Context, move Move) error {
		moves = append(moves, move)

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "unable to add collect moves sink")
	}

	err = pipe.Run()
	if err != nil {
		return nil, errors.Wrap(err, "unable to run moves pipeline")
	}

	return moves, nil
}

// ConvertFile encodes the result stored at inputPath and writes the move sequence to
// outputPath, replacing it. It returns the number of moves as reported in the logs.
// Nothing is written if the result cannot be encoded.
func (e *Encoder) ConvertFile(ctx context.Context, inputPath, outputPath string) (int, error) {
	coords, err := LoadResultFile(inputPath)
	if err != nil {
		return 0, err
	}

	moves, err := e.Encode(ctx, coords)
	if err != nil {
		return 0, errors.Wrapf(err, "unable to encode %s", inputPath)
	}

	sequence := Assemble(moves)
	count := CountMoves(sequence)

	err = os.WriteFile(outputPath, []byte(sequence), 0o644) //nolint:gosec // the solution is not sensitive
	if err != nil {
		return 0, errors.Wrapf(err, "unable to write %s", outputPath)
	}

	e.logger.Info("Wrote solution with "+strconv.Itoa(count)+" moves.",
		zap.Int("moves", count),
		zap.Int("encoded", len(moves)),
		zap.String("output", outputPath),
	)

	return count, nil
}

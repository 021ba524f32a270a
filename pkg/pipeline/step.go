package pipeline

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/askiada/stone-format/pkg/pipeline/model"
)

// details returns the step details, falling back to the start step for steps
// created outside of the pipeline.
func details[O any](step *model.Step[O]) *model.StepInfo {
	if step == nil || step.Details == nil {
		return model.StartStep.Details
	}

	return step.Details
}

func onStepOutput(opts []model.PipelineOption, parent, step *model.StepInfo, iterationDuration, computationDuration time.Duration) error {
	for _, opt := range opts {
		err := opt.OnStepOutput(parent, step, iterationDuration, computationDuration)
		if err != nil {
			return errors.Wrap(err, "unable to run on step output function")
		}
	}

	return nil
}

func sequentialOneToMany[I, O any](
	ctx context.Context,
	goIdx int,
	input *model.Step[I],
	output *model.Step[O],
	oneToManyFn func(context.Context, I) ([]O, error),
	opts []model.PipelineOption,
) error {
	for {
		start := time.Now()
		select {
		case <-ctx.Done():
			return errors.Wrapf(ctx.Err(), "go routine %d", goIdx)
		case in, ok := <-input.Output:
			if !ok {
				return nil
			}

			startFn := time.Now()

			outs, err := oneToManyFn(ctx, in)
			if err != nil {
				return errors.Wrapf(err, "go routine %d", goIdx)
			}

			endFn := time.Since(startFn)

			for _, out := range outs {
				// check the context again so that running go routines
				// stop adding new elements to the pipeline
				select {
				case <-ctx.Done():
					return errors.Wrapf(ctx.Err(), "go routine %d", goIdx)
				case output.Output <- out:
				}
			}

			err = onStepOutput(opts, details(input), details(output), time.Since(start)-endFn, endFn)
			if err != nil {
				return err
			}
		}
	}
}

func concurrentOneToMany[I, O any](
	ctx context.Context,
	concurrent int,
	input *model.Step[I],
	output *model.Step[O],
	oneToManyFn func(context.Context, I) ([]O, error),
	opts []model.PipelineOption,
) error {
	errGrp, dCtx := errgroup.WithContext(ctx)
	errGrp.SetLimit(concurrent)
	// each consumer stops as soon as an error happens
	for goIdx := range concurrent {
		errGrp.Go(func() error {
			return sequentialOneToMany(dCtx, goIdx, input, output, oneToManyFn, opts)
		})
	}

	return errGrp.Wait() //nolint:wrapcheck // already wrapped by the consumers
}

func runOneToMany[I, O any](
	ctx context.Context,
	input *model.Step[I],
	output *model.Step[O],
	oneToManyFn func(context.Context, I) ([]O, error),
	opts ...model.PipelineOption,
) error {
	concurrent := details(output).Concurrent
	if concurrent <= 1 {
		return sequentialOneToMany(ctx, 0, input, output, oneToManyFn, opts)
	}

	return concurrentOneToMany(ctx, concurrent, input, output, oneToManyFn, opts)
}

// runOneToOne pushes one output per input. When skip is set, outputs it reports
// are dropped.
func runOneToOne[I, O any](
	ctx context.Context,
	input *model.Step[I],
	output *model.Step[O],
	oneToOneFn func(context.Context, I) (O, error),
	skip func(O) bool,
	opts ...model.PipelineOption,
) error {
	return runOneToMany(ctx, input, output, func(ctx context.Context, in I) ([]O, error) {
		out, err := oneToOneFn(ctx, in)
		if err != nil {
			return nil, err
		}

		if skip != nil && skip(out) {
			return nil, nil
		}

		return []O{out}, nil
	}, opts...)
}

func prepareStep[I, O any](pipe *Pipeline, name string, input *model.Step[I], opts ...StepOption[O]) (*model.Step[O], error) {
	if pipe == nil {
		return nil, ErrPipelineMustBeSet
	}

	if input == nil {
		return nil, ErrInputMustBeSet
	}

	step := &model.Step[O]{
		Details: &model.StepInfo{
			Type:       model.NormalStepType,
			Name:       name,
			Concurrent: 1,
		},
		Output: make(chan O),
	}

	for _, opt := range opts {
		opt(step)
	}

	for _, opt := range pipe.opts {
		err := opt.PrepareStep(details(input), step.Details)
		if err != nil {
			return nil, errors.Wrap(err, "unable to run before step function")
		}
	}

	return step, nil
}

func addStep[I, O any](pipe *Pipeline, input *model.Step[I], step *model.Step[O], stepFn func(ctx context.Context, input *model.Step[I], output *model.Step[O]) error) *model.Step[O] {
	errC := make(chan error, 1)
	decoratedError := newErrorChan(step.Details.Name, errC)

	pipe.goFn = append(pipe.goFn, func(ctx context.Context) {
		defer func() {
			close(step.Output)
			close(errC)
		}()

		err := stepFn(ctx, input, step)
		if err != nil {
			errC <- err
		}
	})

	pipe.errcList.add(decoratedError)

	return step
}

// AddStepOneToOne adds a step producing exactly one output per input.
func AddStepOneToOne[I, O any](
	pipe *Pipeline,
	name string,
	input *model.Step[I],
	oneToOneFn func(context.Context, I) (O, error),
	opts ...StepOption[O],
) (*model.Step[O], error) {
	step, err := prepareStep(pipe, name, input, opts...)
	if err != nil {
		return nil, err
	}

	return addStep(pipe, input, step, func(ctx context.Context, in *model.Step[I], out *model.Step[O]) error {
		return runOneToOne(ctx, in, out, oneToOneFn, nil, pipe.opts...)
	}), nil
}

// AddStepOneToOneOrZero adds a step producing at most one output per input.
// Zero values returned by oneToOneFn are not pushed to the output.
func AddStepOneToOneOrZero[I any, O comparable](
	pipe *Pipeline,
	name string,
	input *model.Step[I],
	oneToOneFn func(context.Context, I) (O, error),
	opts ...StepOption[O],
) (*model.Step[O], error) {
	step, err := prepareStep(pipe, name, input, opts...)
	if err != nil {
		return nil, err
	}

	isZero := func(out O) bool {
		var zero O

		return out == zero
	}

	return addStep(pipe, input, step, func(ctx context.Context, in *model.Step[I], out *model.Step[O]) error {
		return runOneToOne(ctx, in, out, oneToOneFn, isZero, pipe.opts...)
	}), nil
}

// AddStepOneToMany adds a step producing any number of outputs per input.
func AddStepOneToMany[I, O any](
	pipe *Pipeline,
	name string,
	input *model.Step[I],
	oneToManyFn func(context.Context, I) ([]O, error),
	opts ...StepOption[O],
) (*model.Step[O], error) {
	step, err := prepareStep(pipe, name, input, opts...)
	if err != nil {
		return nil, err
	}

	return addStep(pipe, input, step, func(ctx context.Context, in *model.Step[I], out *model.Step[O]) error {
		return runOneToMany(ctx, in, out, oneToManyFn, pipe.opts...)
	}), nil
}

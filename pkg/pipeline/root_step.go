package pipeline

import (
	"context"

	"github.com/pkg/errors"

	"github.com/askiada/stone-format/pkg/pipeline/model"
)

func prepareRootStep[O any](pipe *Pipeline, step *model.Step[O], opts ...StepOption[O]) error {
	for _, opt := range opts {
		opt(step)
	}

	for _, opt := range pipe.opts {
		err := opt.PrepareStep(model.StartStep.Details, step.Details)
		if err != nil {
			return errors.Wrap(err, "unable to run before step function")
		}
	}

	return nil
}

// AddRootStep adds a step feeding the pipeline. stepFn must stop sending to rootChan
// once ctx is done. rootChan is closed when stepFn returns.
func AddRootStep[O any](pipe *Pipeline, name string, stepFn func(ctx context.Context, rootChan chan<- O) error, opts ...StepOption[O]) (*model.Step[O], error) {
	if pipe == nil {
		return nil, ErrPipelineMustBeSet
	}

	errC := make(chan error, 1)
	decoratedError := newErrorChan(name, errC)
	output := make(chan O)
	step := &model.Step[O]{
		Details: &model.StepInfo{
			Type:       model.RootStepType,
			Name:       name,
			Concurrent: 1,
		},
		Output: output,
	}

	err := prepareRootStep(pipe, step, opts...)
	if err != nil {
		return nil, err
	}

	pipe.goFn = append(pipe.goFn, func(ctx context.Context) {
		defer func() {
			close(output)
			close(errC)
		}()

		err := stepFn(ctx, output)
		if err != nil {
			errC <- err
		}
	})

	pipe.errcList.add(decoratedError)

	return step, nil
}

// SendOrDone pushes elem to output unless ctx is done first.
func SendOrDone[O any](ctx context.Context, output chan<- O, elem O) error {
	select {
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "unable to send element")
	case output <- elem:
		return nil
	}
}

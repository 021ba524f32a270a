package pipeline

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/stone-format/pkg/pipeline/model"
)

func prepareSink[I any](pipe *Pipeline, name string, input *model.Step[I]) (*model.Step[I], error) {
	if pipe == nil {
		return nil, ErrPipelineMustBeSet
	}

	if input == nil {
		return nil, ErrInputMustBeSet
	}

	step := &model.Step[I]{
		Details: &model.StepInfo{
			Type:       model.SinkStepType,
			Name:       name,
			Concurrent: 1,
		},
	}

	for _, opt := range pipe.opts {
		err := opt.PrepareSink(details(input), step.Details)
		if err != nil {
			return nil, errors.Wrap(err, "unable to run before sink function")
		}
	}

	return step, nil
}

func runSink[I any](ctx context.Context, pipe *Pipeline, input, step *model.Step[I], sinkFn func(ctx context.Context, input I) error) error {
	for {
		startInputChan := time.Now()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case in, ok := <-input.Output:
			if !ok {
				return nil
			}

			endInputChan := time.Since(startInputChan)
			startFn := time.Now()

			err := sinkFn(ctx, in)
			if err != nil {
				return err
			}

			endFn := time.Since(startFn)

			for _, opt := range pipe.opts {
				err := opt.OnSinkOutput(details(input), step.Details, endInputChan, endFn)
				if err != nil {
					return errors.Wrap(err, "unable to run on sink output function")
				}
			}
		}
	}
}

// AddSink adds the last step of a branch. sinkFn is called once per input, in order.
func AddSink[I any](pipe *Pipeline, name string, input *model.Step[I], sinkFn func(ctx context.Context, input I) error) error {
	step, err := prepareSink(pipe, name, input)
	if err != nil {
		return err
	}

	errC := make(chan error, 1)
	decoratedError := newErrorChan(name, errC)

	pipe.goFn = append(pipe.goFn, func(ctx context.Context) {
		defer close(errC)

		err := runSink(ctx, pipe, input, step, sinkFn)
		if err != nil {
			errC <- err

			return
		}

		for _, opt := range pipe.opts {
			err := opt.AfterSink(step.Details, time.Since(pipe.startTime))
			if err != nil {
				errC <- errors.Wrap(err, "unable to run after sink function")

				return
			}
		}
	})

	pipe.errcList.add(decoratedError)

	return nil
}

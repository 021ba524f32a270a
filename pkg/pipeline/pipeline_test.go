package pipeline_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/stone-format/pkg/pipeline"
	"github.com/askiada/stone-format/pkg/pipeline/model"
)

func TestAddRootStepNilPipe(t *testing.T) {
	t.Parallel()

	_, err := pipeline.AddRootStep(nil, "root step", func(_ context.Context, _ chan<- int) error {
		return nil
	})
	assert.ErrorIs(t, err, pipeline.ErrPipelineMustBeSet)
}

func TestAddStepNilPipeOrInput(t *testing.T) {
	t.Parallel()

	identity := func(_ context.Context, input int) (int, error) {
		return input, nil
	}

	_, err := pipeline.AddStepOneToOne(nil, "step", (*model.Step[int])(nil), identity)
	require.ErrorIs(t, err, pipeline.ErrPipelineMustBeSet)

	pipe, err := pipeline.New(t.Context())
	require.NoError(t, err)

	_, err = pipeline.AddStepOneToOne(pipe, "step", (*model.Step[int])(nil), identity)
	require.ErrorIs(t, err, pipeline.ErrInputMustBeSet)

	_, err = pipeline.AddStepOneToOneOrZero(pipe, "step", (*model.Step[int])(nil), identity)
	require.ErrorIs(t, err, pipeline.ErrInputMustBeSet)

	_, err = pipeline.AddStepOneToMany(pipe, "step", (*model.Step[int])(nil), func(_ context.Context, input int) ([]int, error) {
		return []int{input}, nil
	})
	require.ErrorIs(t, err, pipeline.ErrInputMustBeSet)

	err = pipeline.AddSink(pipe, "sink", (*model.Step[int])(nil), func(_ context.Context, _ int) error {
		return nil
	})
	require.ErrorIs(t, err, pipeline.ErrInputMustBeSet)

	require.NoError(t, pipe.Run())
}

func TestPipelineKeepsOrder(t *testing.T) {
	t.Parallel()

	pipe, err := pipeline.New(t.Context())
	require.NoError(t, err)

	root := addNumbers(t, pipe, 50)

	step, err := pipeline.AddStepOneToOne(pipe, "square", root, func(_ context.Context, input int) (int, error) {
		return input * input, nil
	})
	require.NoError(t, err)

	sink := &collector{}
	require.NoError(t, pipeline.AddSink(pipe, "collect", step, sink.add))

	require.NoError(t, pipe.Run())

	expected := make([]int, 50)
	for i := range expected {
		expected[i] = i * i
	}

	assert.Equal(t, expected, sink.values())
}

func TestAddStepOneToOneConcurrent(t *testing.T) {
	t.Parallel()

	pipe, err := pipeline.New(t.Context())
	require.NoError(t, err)

	root := addNumbers(t, pipe, 10)

	step, err := pipeline.AddStepOneToOne(pipe, "identity", root, func(_ context.Context, input int) (int, error) {
		return input, nil
	}, pipeline.StepConcurrency[int](4))
	require.NoError(t, err)
	assert.Equal(t, 4, step.Details.Concurrent)

	sink := &collector{}
	require.NoError(t, pipeline.AddSink(pipe, "collect", step, sink.add))

	require.NoError(t, pipe.Run())
	assert.ElementsMatch(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, sink.values())
}

func TestAddStepOneToOneOrZero(t *testing.T) {
	t.Parallel()

	pipe, err := pipeline.New(t.Context())
	require.NoError(t, err)

	root := addNumbers(t, pipe, 10)

	step, err := pipeline.AddStepOneToOneOrZero(pipe, "first step", root, func(_ context.Context, input int) (int, error) {
		return input, nil
	})
	require.NoError(t, err)

	sink := &collector{}
	require.NoError(t, pipeline.AddSink(pipe, "collect", step, sink.add))

	require.NoError(t, pipe.Run())
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9}, sink.values())
}

func TestAddStepOneToMany(t *testing.T) {
	t.Parallel()

	pipe, err := pipeline.New(t.Context())
	require.NoError(t, err)

	root := addNumbers(t, pipe, 3)

	step, err := pipeline.AddStepOneToMany(pipe, "first step", root, func(_ context.Context, input int) ([]int, error) {
		return []int{input, input * 10}, nil
	})
	require.NoError(t, err)

	sink := &collector{}
	require.NoError(t, pipeline.AddSink(pipe, "collect", step, sink.add))

	require.NoError(t, pipe.Run())
	assert.Equal(t, []int{0, 0, 1, 10, 2, 20}, sink.values())
}

func TestPipelineErrors(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		failRoot, failStep, failSink bool
		stepName                     string
	}{
		"root step": {failRoot: true, stepName: "numbers"},
		"step":      {failStep: true, stepName: "identity"},
		"sink":      {failSink: true, stepName: "collect"},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			pipe, err := pipeline.New(t.Context())
			require.NoError(t, err)

			root, err := pipeline.AddRootStep(pipe, "numbers", func(ctx context.Context, rootChan chan<- int) error {
				for i := range 100 {
					if tc.failRoot && i == 5 {
						return assert.AnError
					}

					err := pipeline.SendOrDone(ctx, rootChan, i)
					if err != nil {
						return err
					}
				}

				return nil
			})
			require.NoError(t, err)

			step, err := pipeline.AddStepOneToOne(pipe, "identity", root, func(_ context.Context, input int) (int, error) {
				if tc.failStep && input == 5 {
					return 0, assert.AnError
				}

				return input, nil
			})
			require.NoError(t, err)

			err = pipeline.AddSink(pipe, "collect", step, func(_ context.Context, input int) error {
				if tc.failSink && input == 5 {
					return assert.AnError
				}

				return nil
			})
			require.NoError(t, err)

			err = pipe.Run()
			require.ErrorIs(t, err, assert.AnError)
			assert.Contains(t, err.Error(), tc.stepName)
		})
	}
}

func TestPipelineParentContextCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())

	pipe, err := pipeline.New(ctx)
	require.NoError(t, err)

	root, err := pipeline.AddRootStep(pipe, "forever", func(ctx context.Context, rootChan chan<- int) error {
		for i := 0; ; i++ {
			if i == 10 {
				cancel()
			}

			err := pipeline.SendOrDone(ctx, rootChan, i)
			if err != nil {
				return err
			}
		}
	})
	require.NoError(t, err)

	require.NoError(t, pipeline.AddSink(pipe, "drain", root, func(_ context.Context, _ int) error {
		return nil
	}))

	err = pipe.Run()
	require.ErrorIs(t, err, context.Canceled)
}

type hookOption struct {
	newErr    error
	failStep  string
	prepared  []string
	sinkDone  []string
	finished  bool
	outputs   int
	sinkInput int
}

func (h *hookOption) New() error { return h.newErr }

func (h *hookOption) PrepareStep(parentStep, step *model.StepInfo) error {
	if step.Name == h.failStep {
		return assert.AnError
	}

	h.prepared = append(h.prepared, parentStep.Name+"->"+step.Name)

	return nil
}

func (h *hookOption) OnStepOutput(_, _ *model.StepInfo, _, _ time.Duration) error {
	h.outputs++

	return nil
}

func (h *hookOption) PrepareSink(parentStep, step *model.StepInfo) error {
	h.prepared = append(h.prepared, parentStep.Name+"->"+step.Name)

	return nil
}

func (h *hookOption) OnSinkOutput(_, _ *model.StepInfo, _, _ time.Duration) error {
	h.sinkInput++

	return nil
}

func (h *hookOption) AfterSink(step *model.StepInfo, _ time.Duration) error {
	h.sinkDone = append(h.sinkDone, step.Name)

	return nil
}

func (h *hookOption) Finish() error {
	h.finished = true

	return nil
}

func TestPipelineOptionHooks(t *testing.T) {
	t.Parallel()

	opt := &hookOption{}

	pipe, err := pipeline.New(t.Context(), opt)
	require.NoError(t, err)

	root := addNumbers(t, pipe, 4)

	step, err := pipeline.AddStepOneToOne(pipe, "identity", root, func(_ context.Context, input int) (int, error) {
		return input, nil
	})
	require.NoError(t, err)

	require.NoError(t, pipeline.AddSink(pipe, "collect", step, func(_ context.Context, _ int) error {
		return nil
	}))

	require.NoError(t, pipe.Run())

	assert.Equal(t, []string{"start->numbers", "numbers->identity", "identity->collect"}, opt.prepared)
	assert.Equal(t, 4, opt.outputs)
	assert.Equal(t, 4, opt.sinkInput)
	assert.Equal(t, []string{"collect"}, opt.sinkDone)
	assert.True(t, opt.finished)
}

func TestAddStepErrorStartsNothing(t *testing.T) {
	t.Parallel()

	opt := &hookOption{failStep: "identity"}

	pipe, err := pipeline.New(t.Context(), opt)
	require.NoError(t, err)

	var started atomic.Bool

	root, err := pipeline.AddRootStep(pipe, "numbers", func(ctx context.Context, rootChan chan<- int) error {
		started.Store(true)

		return pipeline.SendOrDone(ctx, rootChan, 1)
	})
	require.NoError(t, err)

	_, err = pipeline.AddStepOneToOne(pipe, "identity", root, func(_ context.Context, input int) (int, error) {
		return input, nil
	})
	require.ErrorIs(t, err, assert.AnError)

	// goleak in TestMain reports the root step if it was left blocked on its send
	assert.False(t, started.Load())
}

func TestNewOptionError(t *testing.T) {
	t.Parallel()

	_, err := pipeline.New(t.Context(), &hookOption{newErr: assert.AnError})
	require.ErrorIs(t, err, assert.AnError)
}

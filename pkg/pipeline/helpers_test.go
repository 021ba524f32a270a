package pipeline_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/askiada/stone-format/pkg/pipeline"
	"github.com/askiada/stone-format/pkg/pipeline/model"
)

func addNumbers(t *testing.T, pipe *pipeline.Pipeline, total int) *model.Step[int] {
	t.Helper()

	step, err := pipeline.AddRootStep(pipe, "numbers", func(ctx context.Context, rootChan chan<- int) error {
		for i := range total {
			err := pipeline.SendOrDone(ctx, rootChan, i)
			if err != nil {
				return err
			}
		}

		return nil
	})
	require.NoError(t, err)

	return step
}

type collector struct {
	mu  sync.Mutex
	got []int
}

func (c *collector) add(_ context.Context, i int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.got = append(c.got, i)

	return nil
}

func (c *collector) values() []int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]int{}, c.got...)
}

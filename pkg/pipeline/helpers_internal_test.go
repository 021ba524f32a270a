package pipeline

import (
	"context"
	"testing"
)

func createInputChan(t *testing.T, ctx context.Context, total int) chan int {
	t.Helper()

	inputChan := make(chan int)

	go func() {
		defer close(inputChan)

		for i := range total {
			select {
			case <-ctx.Done():
				return
			case inputChan <- i:
			}
		}
	}()

	return inputChan
}

func createInputChanWithCancel(t *testing.T, ctx context.Context, total int, offset int, cancel context.CancelFunc) chan int {
	t.Helper()

	inputChan := make(chan int)

	go func() {
		defer close(inputChan)

		for i := range total {
			if i == offset {
				cancel()
			}

			if ctx.Err() != nil {
				return
			}

			select {
			case <-ctx.Done():
				return
			case inputChan <- i:
			}
		}
	}()

	return inputChan
}

func processOutputChan(t *testing.T, output <-chan int) []int {
	t.Helper()

	res := []int{}

	for out := range output {
		res = append(res, out)
	}

	return res
}

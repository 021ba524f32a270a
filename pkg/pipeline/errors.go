package pipeline

import (
	"sync"

	"github.com/pkg/errors"
)

var (
	ErrPipelineMustBeSet = errors.New("p must be set")
	ErrInputMustBeSet    = errors.New("input must be set")
)

type errorChans struct {
	mu   sync.Mutex
	list []*errorChan
}

func (ec *errorChans) add(errChan *errorChan) {
	ec.mu.Lock()
	defer ec.mu.Unlock()

	ec.list = append(ec.list, errChan)
}

func (ec *errorChans) all() []*errorChan {
	ec.mu.Lock()
	defer ec.mu.Unlock()

	return append([]*errorChan(nil), ec.list...)
}

type errorChan struct {
	c    <-chan error
	name string
}

func newErrorChan(name string, c <-chan error) *errorChan {
	return &errorChan{
		c:    c,
		name: name,
	}
}

// mergeErrors merges multiple channels of errors.
// Based on https://blog.golang.org/pipelines.
func mergeErrors(cs ...*errorChan) <-chan error {
	var wg sync.WaitGroup
	// The output channel holds as many errors as there are error channels,
	// so it never blocks even if waitForPipeline returns early.
	out := make(chan error, len(cs))

	output := func(c *errorChan) {
		defer wg.Done()

		if c.c == nil {
			return
		}

		for n := range c.c {
			out <- errors.Wrap(n, c.name)
		}
	}

	wg.Add(len(cs))

	for _, c := range cs {
		go output(c)
	}

	// Must start after the wg.Add call.
	go func() {
		wg.Wait()
		close(out)
	}()

	return out
}

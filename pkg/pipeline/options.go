package pipeline

import "github.com/askiada/stone-format/pkg/pipeline/model"

// StepOption configures a step.
type StepOption[O any] func(s *model.Step[O])

// StepConcurrency sets how many goroutines consume the input of the step.
// Output order is only preserved with a concurrency of 1.
func StepConcurrency[O any](concurrent int) StepOption[O] {
	return func(s *model.Step[O]) {
		s.Details.Concurrent = concurrent
	}
}

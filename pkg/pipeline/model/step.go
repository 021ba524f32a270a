package model

type stepType string

const (
	RootStepType   stepType = "root"
	NormalStepType stepType = "step"
	SinkStepType   stepType = "sink"
)

// StepInfo describes a step to the pipeline options.
type StepInfo struct {
	Type       stepType
	Name       string
	Concurrent int
}

var (
	StartStep = &Step[any]{Details: &StepInfo{Name: "start"}}
	EndStep   = &Step[any]{Details: &StepInfo{Name: "end"}}
)

// Step is a node of the pipeline. Output is closed once the step is done producing.
type Step[O any] struct {
	Output  chan O
	Details *StepInfo
}

// Package pipeline provides a pipeline for processing data.
//
// A pipeline is a graph of steps linked by channels. A root step feeds the pipeline,
// intermediate steps transform each element, and sinks consume them. Every step runs in
// its own goroutine, so steps execute in parallel while data flows through them. Steps
// only start when Run is called.
//
// The pipeline stops on the first error returned by any step: the shared context is
// cancelled, the remaining steps drain, and Run returns the error wrapped with the name of
// the step that failed.
//
// Options implementing model.PipelineOption observe the pipeline as it is built and run;
// the measure and drawer sub packages use them to time steps and render the step graph.
package pipeline

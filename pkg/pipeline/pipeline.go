package pipeline

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/stone-format/pkg/pipeline/model"
)

// Pipeline is a pipeline of steps.
type Pipeline struct {
	ctx       context.Context //nolint:containedctx // parent of the context given to the steps by Run
	errcList  *errorChans
	opts      []model.PipelineOption
	startTime time.Time
	goFn      []func(ctx context.Context)
}

// New creates a new pipeline. Steps added to the pipeline only start in Run and
// stop as soon as ctx is done.
func New(ctx context.Context, opts ...model.PipelineOption) (*Pipeline, error) {
	pipe := &Pipeline{
		ctx:       ctx,
		errcList:  &errorChans{},
		startTime: time.Now(),
		opts:      opts,
	}

	for _, opt := range opts {
		err := opt.New()
		if err != nil {
			return nil, errors.Wrap(err, "unable to apply pipeline option")
		}
	}

	return pipe, nil
}

// waitForPipeline waits for results from all error channels.
// It returns early on the first error.
func waitForPipeline(errs ...*errorChan) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}

	return nil
}

// Run starts every step of the pipeline and waits for them to finish.
// The first error cancels the remaining steps and is returned.
func (p *Pipeline) Run() error {
	dCtx, cancel := context.WithCancel(p.ctx)
	defer cancel()

	p.startTime = time.Now()
	for _, fn := range p.goFn {
		go fn(dCtx)
	}

	err := waitForPipeline(p.errcList.all()...)
	if err != nil {
		return err
	}

	return p.finishRun()
}

func (p *Pipeline) finishRun() error {
	for _, opt := range p.opts {
		err := opt.Finish()
		if err != nil {
			return errors.Wrap(err, "unable to finish pipeline option")
		}
	}

	return nil
}

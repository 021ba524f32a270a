package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/askiada/stone-format/pkg/pipeline/drawer"
	"github.com/askiada/stone-format/pkg/pipeline/measure"
	"github.com/askiada/stone-format/pkg/pipeline/model"
)

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}

	return context.Background()
}

// pipelineOptions returns the options requested by --measure and --graph-dir for the
// conversion called name, and a function logging the measures once it is done.
func pipelineOptions(name string) ([]model.PipelineOption, func(), error) {
	if !cfg.Measure && cfg.GraphDir == "" {
		return nil, func() {}, nil
	}

	msr := measure.NewDefaultMeasure()
	opts := []model.PipelineOption{measure.PipelineMeasure(msr)}

	if cfg.GraphDir != "" {
		err := os.MkdirAll(cfg.GraphDir, 0o755)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "unable to create %s", cfg.GraphDir)
		}

		dotFile := filepath.Join(cfg.GraphDir, name+".dot")
		opts = append(opts, drawer.PipelineDrawer(drawer.NewDOTDrawer(dotFile), msr))

		logger.Debug("Drawing pipeline", zap.String("pipeline", name), zap.String("path", dotFile))
	}

	report := func() {
		if !cfg.Measure {
			return
		}

		for step, metric := range msr.AllMetrics() {
			logger.Info("Step measure",
				zap.String("pipeline", name),
				zap.String("step", step),
				zap.Int64("items", metric.Total()),
				zap.Duration("avg", metric.AVGDuration()),
				zap.Duration("end", metric.GetTotalDuration()),
			)
		}
	}

	return opts, report, nil
}

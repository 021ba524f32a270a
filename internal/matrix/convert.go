package matrix

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/askiada/stone-format/pkg/pipeline"
	"github.com/askiada/stone-format/pkg/pipeline/model"
)

const maxLineSize = 16 * 1024 * 1024

// Converter turns grid text files into JSON documents.
type Converter struct {
	logger *zap.Logger
	opts   []model.PipelineOption
}

// NewConverter creates a converter. opts are applied to every conversion pipeline.
func NewConverter(logger *zap.Logger, opts ...model.PipelineOption) *Converter {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Converter{
		logger: logger,
		opts:   opts,
	}
}

// scanLines is bufio.ScanLines that also breaks lines on a lone \r.
func scanLines(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	idx := bytes.IndexAny(data, "\r\n")

	switch {
	case idx < 0:
		if atEOF {
			return len(data), data, nil
		}
	case data[idx] == '\n':
		return idx + 1, data[:idx], nil
	case idx+1 < len(data):
		if data[idx+1] == '\n' {
			return idx + 2, data[:idx], nil
		}

		return idx + 1, data[:idx], nil
	case atEOF:
		return idx + 1, data[:idx], nil
	}

	// request more data, a trailing \r may be followed by \n
	return 0, nil, nil
}

func readLines(rdr io.Reader) func(ctx context.Context, rootChan chan<- string) error {
	return func(ctx context.Context, rootChan chan<- string) error {
		scanner := bufio.NewScanner(rdr)
		scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineSize)
		scanner.Split(scanLines)

		for scanner.Scan() {
			err := pipeline.SendOrDone(ctx, rootChan, scanner.Text())
			if err != nil {
				return err
			}
		}

		return errors.Wrap(scanner.Err(), "unable to read line")
	}
}

func formatLine(_ context.Context, line string) (string, error) {
	return FormatLine(line), nil
}

// Convert reads every line of rdr and returns the patched JSON document.
// Nothing is returned unless all lines were read and formatted.
func (c *Converter) Convert(ctx context.Context, rdr io.Reader) (string, error) {
	pipe, err := pipeline.New(ctx, c.opts...)
	if err != nil {
		return "", errors.Wrap(err, "unable to create pipeline")
	}

	lines, err := pipeline.AddRootStep(pipe, "read lines", readLines(rdr))
	if err != nil {
		return "", errors.Wrap(err, "unable to add read lines step")
	}

	formatted, err := pipeline.AddStepOneToOne(pipe, "format line", lines, formatLine)
	if err != nil {
		return "", errors.Wrap(err, "unable to add format line step")
	}

	rows := []string{}

	err = pipeline.AddSink(pipe, "collect rows", formatted, func(_ context.Context, row string) error {
		rows = append(rows, row)

		return nil
	})
	if err != nil {
		return "", errors.Wrap(err, "unable to add collect rows sink")
	}

	err = pipe.Run()
	if err != nil {
		return "", errors.Wrap(err, "unable to run matrix pipeline")
	}

	c.logger.Debug("Rows formatted", zap.Int("rows", len(rows)))

	doc, applied := PatchDigits(Assemble(rows))
	for _, sub := range applied {
		c.logger.Info("Replaced "+string(sub.From)+" by "+string(sub.To), zap.Int("index", sub.Index))
	}

	return doc, nil
}

// ConvertFile converts inputPath and writes the document to outputPath, replacing it.
// The output is written once, after the whole input was converted; a failed write may
// leave a partial file.
func (c *Converter) ConvertFile(ctx context.Context, inputPath, outputPath string) error {
	file, err := os.Open(inputPath)
	if err != nil {
		return errors.Wrapf(err, "unable to open %s", inputPath)
	}
	defer file.Close()

	doc, err := c.Convert(ctx, file)
	if err != nil {
		return errors.Wrapf(err, "unable to convert %s", inputPath)
	}

	err = os.WriteFile(outputPath, []byte(doc), 0o644) //nolint:gosec // the document is not sensitive
	if err != nil {
		return errors.Wrapf(err, "unable to write %s", outputPath)
	}

	c.logger.Info("File processed successfully.", zap.String("input", inputPath), zap.String("output", outputPath))

	return nil
}

package service

import (
	"context"
	"fmt"
	"sync"

	"mosaicbot/internal/core/domain"
	"mosaicbot/internal/core/port"

	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type Runner struct {
	decoder port.ImageDecoder
	filter  port.ImageFilter
	encoder port.ImageEncoder
	prefix  string
	workers int
}

// NewRunner wires the batch runner. workers below 2 process items strictly one after another.
func NewRunner(decoder port.ImageDecoder, filter port.ImageFilter, encoder port.ImageEncoder,
	prefix string, workers int) *Runner {
	if workers < 1 {
		workers = 1
	}

	return &Runner{decoder: decoder, filter: filter, encoder: encoder, prefix: prefix, workers: workers}
}

// Run processes uploads in order and returns exactly one result per upload, in input order.
// Per-item failures are recorded in the result. If ctx is cancelled, no further items are
// started and the finished results are returned together with the context error.
func (r *Runner) Run(ctx context.Context, uploads []domain.Upload,
	progress domain.ProgressFunc) ([]domain.ProcessedResult, error) {
	total := len(uploads)
	if total == 0 {
		return []domain.ProcessedResult{}, nil
	}

	l := log.With().Str("run", runID()).Int("total", total).Logger()
	l.Info().Int("workers", r.workers).Msg("starting batch")

	names := make([]string, total)
	for i, u := range uploads {
		names[i] = u.Name
	}
	outputNames := domain.OutputNames(r.prefix, names)

	results := make([]domain.ProcessedResult, total)
	finished := make([]bool, total)

	var (
		mu        sync.Mutex
		completed int
		g         errgroup.Group
	)
	g.SetLimit(r.workers)

	for i, upload := range uploads {
		if ctx.Err() != nil {
			break
		}

		g.Go(func() error {
			// Go blocks until a worker is free, so cancellation may have happened meanwhile.
			if ctx.Err() != nil {
				return nil
			}

			res := r.process(l, upload, outputNames[i])

			mu.Lock()
			defer mu.Unlock()

			results[i] = res
			finished[i] = true
			completed++
			if progress != nil {
				progress(completed, total)
			}

			return nil
		})
	}

	_ = g.Wait()

	if err := ctx.Err(); err != nil && completed < total {
		partial := make([]domain.ProcessedResult, 0, completed)
		for i, ok := range finished {
			if ok {
				partial = append(partial, results[i])
			}
		}

		l.Warn().Err(err).Int("completed", completed).Msg("batch aborted")
		return partial, fmt.Errorf("batch aborted after %d of %d images: %w", completed, total, err)
	}

	failed := 0
	for _, res := range results {
		if !res.OK() {
			failed++
		}
	}

	l.Info().Int("succeeded", total-failed).Int("failed", failed).Msg("batch finished")

	return results, nil
}

func (r *Runner) process(l zerolog.Logger, upload domain.Upload, outputName string) domain.ProcessedResult {
	res := domain.ProcessedResult{Name: upload.Name, OutputName: outputName, Outcome: domain.Failure}

	src, err := r.decoder.Decode(upload)
	if err != nil {
		return fail(l, res, err)
	}
	res.Original = src.Image

	res.BlockSize = domain.BlockSize(src.Width, src.Height)

	processed, err := r.filter.Mosaic(src.Image, res.BlockSize)
	if err != nil {
		return fail(l, res, err)
	}

	encoded, err := r.encoder.Encode(processed)
	if err != nil {
		return fail(l, res, err)
	}

	res.Processed = processed
	res.Encoded = encoded
	res.Outcome = domain.Success

	l.Debug().
		Str("name", upload.Name).
		Str("output", outputName).
		Int("blockSize", res.BlockSize).
		Int("bytes", len(encoded)).
		Msg("image processed")

	return res
}

func fail(l zerolog.Logger, res domain.ProcessedResult, err error) domain.ProcessedResult {
	l.Warn().Err(err).Str("name", res.Name).Msg("image failed")

	res.Err = err
	res.Outcome = domain.Failure

	return res
}

func runID() string {
	id, err := uuid.NewV4()
	if err != nil {
		return "unknown"
	}

	return id.String()
}

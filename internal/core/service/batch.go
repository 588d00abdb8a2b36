package service

import (
	"context"
	"fmt"

	"mosaicbot/internal/core/domain"

	"github.com/rs/zerolog/log"
)

type BatchRunner interface {
	Run(ctx context.Context, uploads []domain.Upload, progress domain.ProgressFunc) ([]domain.ProcessedResult, error)
}

// Batch guards a runner with the batch size limit the hosts accept.
type Batch struct {
	runner    BatchRunner
	maxImages int
}

func NewBatch(runner BatchRunner, maxImages int) *Batch {
	if maxImages <= 0 {
		maxImages = domain.DefaultMaxImages
	}

	return &Batch{runner: runner, maxImages: maxImages}
}

func (b *Batch) MaxImages() int {
	return b.maxImages
}

// Check reports whether a batch of count images is acceptable.
func (b *Batch) Check(count int) error {
	if count > b.maxImages {
		log.Warn().Int("images", count).Int("limit", b.maxImages).Msg("rejecting batch")
		return fmt.Errorf("%w: %d images, limit is %d", domain.ErrBatchTooLarge, count, b.maxImages)
	}

	return nil
}

// Process rejects batches above the limit before touching any image, otherwise delegates to the runner.
func (b *Batch) Process(ctx context.Context, uploads []domain.Upload,
	progress domain.ProgressFunc) ([]domain.ProcessedResult, error) {
	if err := b.Check(len(uploads)); err != nil {
		return nil, err
	}

	return b.runner.Run(ctx, uploads, progress)
}

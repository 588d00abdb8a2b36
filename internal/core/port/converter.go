package port

import (
	"context"
	"image"

	"mosaicbot/internal/core/domain"
)

type ImageDecoder interface {
	// Decode turns a raw upload into a SourceImage, failing with domain.ErrDecode for unreadable data.
	Decode(upload domain.Upload) (*domain.SourceImage, error)
}

type ImageEncoder interface {
	// Encode serializes an image into the download format.
	Encode(img image.Image) ([]byte, error)
}

type ImageFilter interface {
	// Mosaic returns a pixelated copy of img with the same dimensions, built from a blockSize x blockSize grid.
	Mosaic(img image.Image, blockSize int) (image.Image, error)
}

type BatchProcessor interface {
	// Process runs a mosaic batch over uploads, rejecting batches over the configured limit before any work.
	Process(ctx context.Context, uploads []domain.Upload, progress domain.ProgressFunc) ([]domain.ProcessedResult, error)
}

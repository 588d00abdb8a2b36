package converter

import (
	"fmt"
	"image"

	"mosaicbot/internal/core/domain"

	"github.com/rs/zerolog/log"
	"golang.org/x/image/draw"
)

// Mosaic pixelates images by scaling them down to a tiny square and back up, both with
// nearest-neighbour sampling.
type Mosaic struct{}

func NewMosaic() *Mosaic {
	return &Mosaic{}
}

func (m *Mosaic) Mosaic(img image.Image, blockSize int) (out image.Image, err error) {
	if img == nil {
		return nil, fmt.Errorf("%w: missing image", domain.ErrTransform)
	}

	if blockSize < 1 {
		return nil, fmt.Errorf("%w: invalid block size %d", domain.ErrTransform, blockSize)
	}

	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("%w: empty image", domain.ErrTransform)
	}

	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Int("blockSize", blockSize).Msg("scaler panicked")
			out = nil
			err = fmt.Errorf("%w: %v", domain.ErrTransform, r)
		}
	}()

	small := image.NewRGBA(image.Rect(0, 0, blockSize, blockSize))
	draw.NearestNeighbor.Scale(small, small.Bounds(), img, bounds, draw.Src, nil)

	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), small, small.Bounds(), draw.Src, nil)

	log.Debug().
		Int("width", bounds.Dx()).
		Int("height", bounds.Dy()).
		Int("blockSize", blockSize).
		Msg("mosaic applied")

	return dst, nil
}

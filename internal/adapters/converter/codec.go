package converter

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	"mosaicbot/internal/core/domain"

	"github.com/rs/zerolog/log"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

const DefaultMaxPixels = 50_000_000

// Codec decodes uploaded images and encodes results as PNG.
type Codec struct {
	maxPixels int
	encoder   *png.Encoder
}

// NewCodec returns a codec rejecting images with more than maxPixels pixels. A non-positive
// limit falls back to DefaultMaxPixels.
func NewCodec(maxPixels int) *Codec {
	if maxPixels <= 0 {
		maxPixels = DefaultMaxPixels
	}

	return &Codec{
		maxPixels: maxPixels,
		encoder:   &png.Encoder{CompressionLevel: png.DefaultCompression},
	}
}

func (c *Codec) Decode(upload domain.Upload) (*domain.SourceImage, error) {
	if len(upload.Data) == 0 {
		return nil, fmt.Errorf("%w: empty file", domain.ErrDecode)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(upload.Data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDecode, err)
	}

	if cfg.Width*cfg.Height > c.maxPixels {
		return nil, fmt.Errorf("%w: %w: %dx%d", domain.ErrDecode, domain.ErrImageTooLarge, cfg.Width, cfg.Height)
	}

	img, _, err := image.Decode(bytes.NewReader(upload.Data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDecode, err)
	}

	bounds := img.Bounds()

	log.Debug().
		Str("name", upload.Name).
		Str("format", format).
		Int("bytes", len(upload.Data)).
		Int("width", bounds.Dx()).
		Int("height", bounds.Dy()).
		Msg("decoded image")

	return &domain.SourceImage{
		Name:   upload.Name,
		Data:   upload.Data,
		Image:  img,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Format: format,
	}, nil
}

func (c *Codec) Encode(img image.Image) ([]byte, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nothing to encode", domain.ErrTransform)
	}

	buf := new(bytes.Buffer)
	if err := c.encoder.Encode(buf, img); err != nil {
		return nil, fmt.Errorf("%w: encoding png: %w", domain.ErrTransform, err)
	}

	return buf.Bytes(), nil
}

package converter

import (
	"bytes"
	"image/jpeg"
	"image/png"
	"testing"

	"mosaicbot/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()

	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, gradient(width, height)))

	return buf.Bytes()
}

func encodeJPEG(t *testing.T, width, height int) []byte {
	t.Helper()

	buf := new(bytes.Buffer)
	require.NoError(t, jpeg.Encode(buf, gradient(width, height), &jpeg.Options{Quality: 90}))

	return buf.Bytes()
}

func TestCodecDecode(t *testing.T) {
	tests := []struct {
		name       string
		data       func(t *testing.T) []byte
		wantFormat string
		wantWidth  int
		wantHeight int
	}{
		{
			name:       "png",
			data:       func(t *testing.T) []byte { return encodePNG(t, 30, 20) },
			wantFormat: "png",
			wantWidth:  30,
			wantHeight: 20,
		},
		{
			name:       "jpeg",
			data:       func(t *testing.T) []byte { return encodeJPEG(t, 64, 48) },
			wantFormat: "jpeg",
			wantWidth:  64,
			wantHeight: 48,
		},
	}

	c := NewCodec(0)

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			data := tc.data(t)

			src, err := c.Decode(domain.Upload{Name: "in." + tc.wantFormat, Data: data})
			require.NoError(t, err)

			assert.Equal(t, "in."+tc.wantFormat, src.Name)
			assert.Equal(t, tc.wantFormat, src.Format)
			assert.Equal(t, tc.wantWidth, src.Width)
			assert.Equal(t, tc.wantHeight, src.Height)
			assert.Equal(t, data, src.Data)
			assert.NotNil(t, src.Image)
		})
	}
}

func TestCodecDecodeErrors(t *testing.T) {
	tests := []struct {
		name      string
		data      []byte
		maxPixels int
		wantErrs  []error
	}{
		{
			name:     "empty",
			data:     nil,
			wantErrs: []error{domain.ErrDecode},
		},
		{
			name:     "garbage",
			data:     []byte("definitely not an image"),
			wantErrs: []error{domain.ErrDecode},
		},
		{
			name:      "too many pixels",
			data:      encodePNG(t, 100, 100),
			maxPixels: 9999,
			wantErrs:  []error{domain.ErrDecode, domain.ErrImageTooLarge},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			src, err := NewCodec(tc.maxPixels).Decode(domain.Upload{Name: "x", Data: tc.data})

			assert.Nil(t, src)
			for _, want := range tc.wantErrs {
				require.ErrorIs(t, err, want)
			}
		})
	}
}

func TestCodecDecodeTruncated(t *testing.T) {
	data := encodePNG(t, 50, 50)

	_, err := NewCodec(0).Decode(domain.Upload{Name: "cut.png", Data: data[:len(data)/2]})
	require.ErrorIs(t, err, domain.ErrDecode)
}

func TestCodecEncode(t *testing.T) {
	c := NewCodec(0)

	data, err := c.Encode(gradient(25, 15))
	require.NoError(t, err)

	decoded, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 25, decoded.Bounds().Dx())
	assert.Equal(t, 15, decoded.Bounds().Dy())

	_, err = c.Encode(nil)
	require.ErrorIs(t, err, domain.ErrTransform)
}

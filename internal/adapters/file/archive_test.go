package file

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"testing"

	"mosaicbot/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readArchive(t *testing.T, data []byte) map[string]string {
	t.Helper()

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	entries := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		content, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		entries[f.Name] = string(content)
	}

	return entries
}

func TestWriteArchive(t *testing.T) {
	tests := []struct {
		name    string
		results []domain.ProcessedResult
		want    map[string]string
	}{
		{
			name: "all successful",
			results: []domain.ProcessedResult{
				{Name: "a.png", OutputName: "mosaic_a.png", Encoded: []byte("A"), Outcome: domain.Success},
				{Name: "b.png", OutputName: "mosaic_b.png", Encoded: []byte("B"), Outcome: domain.Success},
			},
			want: map[string]string{"mosaic_a.png": "A", "mosaic_b.png": "B"},
		},
		{
			name: "with failures",
			results: []domain.ProcessedResult{
				{Name: "a.png", OutputName: "mosaic_a.png", Encoded: []byte("A"), Outcome: domain.Success},
				{Name: "broken.jpg", OutputName: "mosaic_broken.png", Outcome: domain.Failure,
					Err: errors.New("decode error: invalid JPEG format")},
			},
			want: map[string]string{
				"mosaic_a.png":  "A",
				ErrorReportName: "broken.jpg: decode error: invalid JPEG format\n",
			},
		},
		{
			name:    "empty",
			results: nil,
			want:    map[string]string{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			buf := new(bytes.Buffer)
			require.NoError(t, WriteArchive(buf, tc.results))

			assert.Equal(t, tc.want, readArchive(t, buf.Bytes()))
		})
	}
}

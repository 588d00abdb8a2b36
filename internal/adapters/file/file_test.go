package file

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"mosaicbot/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownload(t *testing.T) {
	tests := []struct {
		name       string
		inputBytes []byte
		status     int
		wantErr    bool
	}{
		{
			name:       "success",
			inputBytes: []byte("test\n"),
			status:     http.StatusOK,
			wantErr:    false,
		},
		{
			name:       "not found",
			inputBytes: []byte("not found"),
			status:     http.StatusNotFound,
			wantErr:    true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, err := w.Write(tc.inputBytes)
				assert.NoError(t, err)
			}))
			defer srv.Close()

			res, err := Download(t.Context(), srv.URL)
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.inputBytes, res)
			}
		})
	}
}

func TestReadUploads(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.png")
	b := filepath.Join(dir, "b.jpg")
	missing := filepath.Join(dir, "missing.png")

	require.NoError(t, os.WriteFile(a, []byte("aaa"), 0o600))
	require.NoError(t, os.WriteFile(b, []byte("bb"), 0o600))

	uploads := ReadUploads([]string{b, missing, a})

	require.Len(t, uploads, 3)
	assert.Equal(t, domain.Upload{Name: b, Data: []byte("bb")}, uploads[0])
	assert.Equal(t, missing, uploads[1].Name)
	assert.Empty(t, uploads[1].Data)
	assert.Equal(t, domain.Upload{Name: a, Data: []byte("aaa")}, uploads[2])
}

func TestWriteResults(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	results := []domain.ProcessedResult{
		{Name: "a.png", OutputName: "mosaic_a.png", Encoded: []byte("one"), Outcome: domain.Success},
		{Name: "b.png", OutputName: "mosaic_b.png", Outcome: domain.Failure, Err: errors.New("bad")},
		{Name: "c.png", OutputName: "mosaic_c.png", Encoded: []byte("three"), Outcome: domain.Success},
	}

	written, err := WriteResults(dir, results)
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(dir, "mosaic_a.png"), filepath.Join(dir, "mosaic_c.png")}, written)

	got, err := os.ReadFile(filepath.Join(dir, "mosaic_c.png"))
	require.NoError(t, err)
	assert.Equal(t, []byte("three"), got)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "no temp files left behind")
}

func TestWriteResultsOverwrites(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mosaic_a.png"), []byte("old"), 0o600))

	_, err := WriteResults(dir, []domain.ProcessedResult{
		{Name: "a.png", OutputName: "mosaic_a.png", Encoded: []byte("new"), Outcome: domain.Success},
	})
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(dir, "mosaic_a.png"))
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), got)
}

package file

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"mosaicbot/internal/core/domain"

	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog/log"
)

// Download returns the byte content of a file on a provided URL.
func Download(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, path, nil)
	if err != nil {
		err = fmt.Errorf("error creating request %w", err)
		log.Error().Err(err).Send()
		return nil, err
	}

	client := &http.Client{}
	res, err := client.Do(req)
	if err != nil {
		err = fmt.Errorf("error executing request %w", err)
		log.Error().Err(err).Send()
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		err = fmt.Errorf("unexpected status code on download: %d", res.StatusCode)
		log.Error().Err(err).Send()
		return nil, err
	}

	buf, err := io.ReadAll(res.Body)
	if err != nil {
		err = fmt.Errorf("error reading response %w", err)
		log.Error().Err(err).Send()
		return nil, err
	}

	return buf, nil
}

// ReadUploads reads the given files into uploads, keeping their order. Files that cannot be read
// are returned as empty uploads so they surface as decode failures of the batch.
func ReadUploads(paths []string) []domain.Upload {
	uploads := make([]domain.Upload, 0, len(paths))

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Warn().Str("path", path).Err(err).Msg("could not read input file")
		}

		uploads = append(uploads, domain.Upload{Name: path, Data: data})
	}

	return uploads
}

// WriteResults stores every successful result in dir under its output name and returns the
// written paths. Each file is written to a temporary name first and renamed into place.
func WriteResults(dir string, results []domain.ProcessedResult) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("error creating output directory %w", err)
	}

	var written []string

	for _, res := range results {
		if !res.OK() {
			continue
		}

		path := filepath.Join(dir, res.OutputName)
		if err := writeAtomic(path, res.Encoded); err != nil {
			return written, err
		}

		log.Debug().Str("path", path).Int("bytes", len(res.Encoded)).Msg("wrote result")
		written = append(written, path)
	}

	return written, nil
}

func writeAtomic(path string, data []byte) error {
	id, err := uuid.NewV4()
	if err != nil {
		return err
	}

	tmp := filepath.Join(filepath.Dir(path), fmt.Sprintf(".%s.tmp", id.String()))

	f, err := os.Create(tmp)
	if err != nil {
		err = fmt.Errorf("error creating temp file %w", err)
		log.Error().Err(err).Send()
		return err
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		removeTemp(tmp)
		err = fmt.Errorf("error writing temp file %w", err)
		log.Error().Err(err).Send()
		return err
	}

	if err := f.Close(); err != nil {
		removeTemp(tmp)
		return fmt.Errorf("error closing temp file %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		removeTemp(tmp)
		return fmt.Errorf("error moving result into place %w", err)
	}

	return nil
}

func removeTemp(path string) {
	err := os.Remove(path)
	if err != nil {
		log.Warn().Str("path", path).Err(err).Msg("could not clean up temp file")
		return
	}
	log.Debug().Str("path", path).Msg("cleaned up temp file")
}

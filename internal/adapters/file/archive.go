package file

import (
	"archive/zip"
	"fmt"
	"io"
	"strings"
	"time"

	"mosaicbot/internal/core/domain"
)

const ErrorReportName = "errors.txt"

// WriteArchive packages all successful results into a zip archive. If any result failed, an
// errors.txt entry lists the failed inputs with their reasons.
func WriteArchive(w io.Writer, results []domain.ProcessedResult) error {
	zw := zip.NewWriter(w)
	modified := time.Now()

	var report strings.Builder

	for _, res := range results {
		if !res.OK() {
			fmt.Fprintf(&report, "%s: %s\n", res.Name, res.Reason())
			continue
		}

		entry, err := zw.CreateHeader(&zip.FileHeader{
			Name:     res.OutputName,
			Method:   zip.Store,
			Modified: modified,
		})
		if err != nil {
			return fmt.Errorf("error creating archive entry %w", err)
		}

		if _, err := entry.Write(res.Encoded); err != nil {
			return fmt.Errorf("error writing archive entry %w", err)
		}
	}

	if report.Len() > 0 {
		entry, err := zw.Create(ErrorReportName)
		if err != nil {
			return fmt.Errorf("error creating error report %w", err)
		}

		if _, err := io.WriteString(entry, report.String()); err != nil {
			return fmt.Errorf("error writing error report %w", err)
		}
	}

	return zw.Close()
}

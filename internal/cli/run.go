package cli

import (
	"fmt"

	"mosaicbot/internal/adapters/file"
	"mosaicbot/internal/core/domain"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newRunCmd(a *app) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "run [files...]",
		Short: "Pixelate the given image files",
		Long: `Pixelates every given file and writes the results as PNG files into the output directory.

Files that cannot be decoded are reported and skipped; the rest of the batch is still written.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			batch := a.batch()
			if err := batch.Check(len(args)); err != nil {
				return err
			}

			if cmd.Flags().Changed("out") {
				a.cfg.OutputDir = outDir
			}

			log.Debug().Int("files", len(args)).Int("limit", batch.MaxImages()).Msg("reading inputs")
			uploads := file.ReadUploads(args)

			results, err := batch.Process(cmd.Context(), uploads, func(completed, total int) {
				log.Info().Int("completed", completed).Int("total", total).Msg("progress")
			})

			// Whatever finished before an abort is still written.
			written, writeErr := file.WriteResults(a.cfg.OutputDir, results)
			printSummary(cmd, results, written)

			if err != nil {
				return err
			}

			return writeErr
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "directory the mosaics are written to")

	return cmd
}

func printSummary(cmd *cobra.Command, results []domain.ProcessedResult, written []string) {
	out := cmd.OutOrStdout()

	failed := 0
	for _, res := range results {
		if res.OK() {
			fmt.Fprintf(out, "ok    %s -> %s (block %d)\n", res.Name, res.OutputName, res.BlockSize)
			continue
		}

		failed++
		fmt.Fprintf(out, "fail  %s: %s\n", res.Name, res.Reason())
	}

	fmt.Fprintf(out, "%d written, %d failed\n", len(written), failed)
}

package cli

import (
	"mosaicbot/internal/adapters/converter"
	"mosaicbot/internal/config"
	"mosaicbot/internal/core/service"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type app struct {
	cfg *config.Config
}

// NewRootCmd creates the mosaic command with the run, serve and bot hosts attached.
func NewRootCmd(ver string) *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:           "mosaic",
		Short:         "Pixelate images in batches",
		Long:          "mosaic turns images into coarse pixel mosaics, from the command line, over HTTP or as a Telegram bot.",
		Version:       ver,
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: `  # Pixelate files into ./out
  mosaic run --out out photos/*.jpg

  # Serve the HTTP API
  mosaic serve --addr :8080

  # Run the Telegram bot
  MOSAIC_TELEGRAM_BOT_TOKEN=... mosaic bot`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.Read(); err != nil {
				return err
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				cfg.LogLevel = "debug"
			}

			config.SetupLogging(cfg)
			a.cfg = cfg

			log.Debug().Str("command", cmd.Name()).Msg("config loaded")

			return nil
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.AddCommand(newRunCmd(a), newServeCmd(a), newBotCmd(a))

	return cmd
}

func (a *app) batch() *service.Batch {
	codec := converter.NewCodec(a.cfg.MaxPixels)
	runner := service.NewRunner(codec, converter.NewMosaic(), codec, a.cfg.OutputPrefix, a.cfg.Workers)

	return service.NewBatch(runner, a.cfg.MaxImages)
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"mosaicbot/internal/adapters/file"
	"mosaicbot/internal/adapters/handler"
	"mosaicbot/internal/adapters/sender"
	"mosaicbot/internal/core/domain/command"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var errNoToken = errors.New("telegram.bot_token is not set")

func newBotCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Run the Telegram bot",
		Long:  "Runs a Telegram bot that answers /mosaic on a photo, or on a reply to one, with the pixelated image.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.cfg.BotToken == "" {
				return errNoToken
			}

			b, err := bot.New(a.cfg.BotToken, bot.WithDefaultHandler(noOpHandler))
			if err != nil {
				return fmt.Errorf("failed initializing telegram bot: %w", err)
			}

			s := sender.NewTelegram(b)

			registry := &command.Registry{}
			registry.Register(command.NewMosaic(a.batch(), file.Download, s, s, command.MosaicCommand))
			registry.Register(command.NewHelp(registry, s, "/help"))
			registry.Register(command.NewHelp(registry, s, "/start"))

			commandHandler := handler.NewCommand(registry, b, a.cfg.HandlerTimeout)

			b.RegisterHandler(bot.HandlerTypeMessageText, "/", bot.MatchTypePrefix, commandHandler.Handle)
			b.RegisterHandler(bot.HandlerTypePhotoCaption, "/", bot.MatchTypePrefix, commandHandler.Handle)
			b.RegisterHandlerMatchFunc(isDocumentCommand, commandHandler.Handle)

			log.Info().Msg("bot listening")
			b.Start(cmd.Context())

			return nil
		},
	}
}

// isDocumentCommand matches images sent as files with a command in their caption.
func isDocumentCommand(update *models.Update) bool {
	return update.Message != nil &&
		update.Message.Document != nil &&
		strings.HasPrefix(update.Message.Caption, "/")
}

func noOpHandler(_ context.Context, _ *bot.Bot, _ *models.Update) {}

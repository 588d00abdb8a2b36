package command

import (
	"context"
	"fmt"
	"strings"
	"time"

	"mosaicbot/internal/core/domain"
	"mosaicbot/internal/core/port"

	"github.com/rs/zerolog/log"
)

type Help struct {
	registry   port.CommandRegistry
	textSender port.TextSender
	command    string
}

func NewHelp(registry port.CommandRegistry, textSender port.TextSender, command string) *Help {
	return &Help{registry: registry, textSender: textSender, command: command}
}

func (h *Help) GetCommand() string {
	return h.command
}

const helpTemplate = `Send an image with %s as caption, or reply to an image with %s, to get a pixelated copy back.

Available commands: %s`

func (h *Help) Respond(ctx context.Context, _ time.Duration, message *domain.Message) error {
	log.Info().
		Int("messageId", message.ID).
		Int64("chatId", message.ChatID).
		Str("command", h.GetCommand()).
		Msg("handling request")

	_, err := h.textSender.SendMessageReply(ctx, message,
		fmt.Sprintf(helpTemplate, MosaicCommand, MosaicCommand, strings.Join(h.registry.ListCommands(), ", ")))

	return err
}

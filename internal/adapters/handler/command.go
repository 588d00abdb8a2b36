package handler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"mosaicbot/internal/core/domain"
	"mosaicbot/internal/core/domain/command"
	"mosaicbot/internal/core/port"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
)

// FileResolver turns Telegram file IDs into download links.
type FileResolver interface {
	GetFile(ctx context.Context, params *bot.GetFileParams) (*models.File, error)
	FileDownloadLink(f *models.File) string
}

type Command struct {
	commandRegistry port.CommandRegistry
	files           FileResolver
	timeout         time.Duration
}

func NewCommand(commandRegistry port.CommandRegistry, files FileResolver, timeout time.Duration) *Command {
	return &Command{commandRegistry: commandRegistry, files: files, timeout: timeout}
}

func (c *Command) Handle(ctx context.Context, _ *bot.Bot, update *models.Update) {
	if update.Message == nil {
		log.Debug().Msg("update without message")
		return
	}

	msg := update.Message
	text := msg.Text
	if text == "" {
		text = msg.Caption
	}

	log.Debug().Str("message", text).Msg("received command")

	cmd := command.ParseCommand(text)
	commandHandler, err := c.commandRegistry.Get(cmd)
	if err != nil {
		log.Debug().Str("command", cmd).Err(err).Msg("no handler for command")
		return
	}

	message := &domain.Message{
		ID:       msg.ID,
		ChatID:   msg.Chat.ID,
		Username: getUserNameFromMessage(msg.From),
		Text:     text,
	}

	if msg.ReplyToMessage != nil {
		replyID := msg.ReplyToMessage.ID
		message.ReplyToMessageID = &replyID
	}

	fileID, fileName := findImage(msg)
	if fileID != "" {
		message.ImageURL = c.resolveURL(ctx, fileID)
		message.FileName = fileName
	}

	err = commandHandler.Respond(ctx, c.timeout, message)
	if err != nil {
		log.Err(err).Str("command", cmd).Msg("failed to respond to command")
	}
}

func (c *Command) resolveURL(ctx context.Context, fileID string) string {
	f, err := c.files.GetFile(ctx, &bot.GetFileParams{FileID: fileID})
	if err != nil {
		log.Error().Err(err).Str("fileId", fileID).Msg("error getting file from telegram api")
		return ""
	}

	return c.files.FileDownloadLink(f)
}

// findImage returns the file ID and name of the image attached to the message, or to the message
// it replies to. The message's own attachment wins.
func findImage(msg *models.Message) (string, string) {
	if id, name := attachedImage(msg); id != "" {
		return id, name
	}

	if msg.ReplyToMessage != nil {
		return attachedImage(msg.ReplyToMessage)
	}

	return "", ""
}

func attachedImage(msg *models.Message) (string, string) {
	if msg.Document != nil && strings.HasPrefix(msg.Document.MimeType, "image/") {
		name := msg.Document.FileName
		if name == "" {
			name = fmt.Sprintf("%d", msg.ID)
		}
		return msg.Document.FileID, name
	}

	if len(msg.Photo) > 0 {
		return findLargestImage(msg.Photo), fmt.Sprintf("%d.jpg", msg.ID)
	}

	return "", ""
}

func findLargestImage(photos []models.PhotoSize) string {
	largest := photos[0]
	for _, photo := range photos[1:] {
		if photo.Width*photo.Height > largest.Width*largest.Height {
			largest = photo
		}
	}

	return largest.FileID
}

func getUserNameFromMessage(user *models.User) string {
	if user == nil {
		return ""
	}

	if user.Username == "" {
		return user.FirstName
	}

	return "@" + user.Username
}

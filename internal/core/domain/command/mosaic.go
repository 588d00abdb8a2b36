package command

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mosaicbot/internal/core/domain"
	"mosaicbot/internal/core/port"

	"github.com/rs/zerolog/log"
)

const MosaicCommand = "/mosaic"

// DownloadFunc fetches the raw bytes behind a file URL.
type DownloadFunc func(ctx context.Context, url string) ([]byte, error)

type Mosaic struct {
	batch      port.BatchProcessor
	download   DownloadFunc
	textSender port.TextSender
	fileSender port.FileSender
	command    string
}

func NewMosaic(batch port.BatchProcessor, download DownloadFunc, textSender port.TextSender,
	fileSender port.FileSender, command string) *Mosaic {
	return &Mosaic{batch: batch, download: download, textSender: textSender, fileSender: fileSender,
		command: command}
}

func (m *Mosaic) GetCommand() string {
	return m.command
}

func (m *Mosaic) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	l := log.With().
		Int("messageId", message.ID).
		Int64("chatId", message.ChatID).
		Str("command", m.GetCommand()).
		Logger()

	l.Info().Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if message.ImageURL == "" {
		_ = m.textSender.NotifyAndReturnError(ctx, errors.New("send an image with /mosaic as caption or reply to one"),
			message)
		return nil
	}

	go m.textSender.SendChatAction(ctx, message.ChatID, domain.SendingFile)

	data, err := m.download(ctx, message.ImageURL)
	if err != nil {
		return m.textSender.NotifyAndReturnError(ctx, fmt.Errorf("failed to download image: %w", err), message)
	}

	results, err := m.batch.Process(ctx, []domain.Upload{{Name: message.FileName, Data: data}}, nil)
	if err != nil {
		return m.textSender.NotifyAndReturnError(ctx, fmt.Errorf("failed to process image: %w", err), message)
	}

	if len(results) != 1 {
		return m.textSender.NotifyAndReturnError(ctx,
			fmt.Errorf("failed to process image: got %d results", len(results)), message)
	}

	res := results[0]
	if !res.OK() {
		_ = m.textSender.NotifyAndReturnError(ctx, fmt.Errorf("could not pixelate image: %w", res.Err), message)
		return nil
	}

	l.Debug().Int("blockSize", res.BlockSize).Str("output", res.OutputName).Msg("sending mosaic")

	err = m.fileSender.SendFileReply(ctx, message, res.OutputName, res.Encoded)
	if err != nil {
		return m.textSender.NotifyAndReturnError(ctx, fmt.Errorf("failed to send mosaic: %w", err), message)
	}

	return nil
}

package command

import (
	"errors"
	"testing"
	"time"

	"mosaicbot/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelpRespond(t *testing.T) {
	cr := &Registry{}
	ts := &MockTextSender{}

	help := NewHelp(cr, ts, "/help")
	cr.Register(help)
	cr.Register(&MockResponder{command: MosaicCommand})

	err := help.Respond(t.Context(), time.Minute, &domain.Message{ID: 1, ChatID: 1})
	require.NoError(t, err)

	assert.Equal(t, "/help", help.GetCommand())
	assert.Contains(t, ts.Message, "Send an image with /mosaic as caption")
	assert.Contains(t, ts.Message, "Available commands: /help, /mosaic")
}

func TestHelpRespondSendFailed(t *testing.T) {
	ts := &MockTextSender{err: errors.New("mock error")}

	err := NewHelp(&Registry{}, ts, "/help").Respond(t.Context(), time.Minute, &domain.Message{})
	require.EqualError(t, err, "mock error")
}

package domain

import "image"

// Message is a chat message as seen by the command handlers, independent of the messenger API.
type Message struct {
	ID               int
	ChatID           int64
	Username         string
	ReplyToMessageID *int
	ImageURL         string
	FileName         string
	Text             string
}

type Action string

const (
	Typing       Action = "typing"
	SendingPhoto Action = "upload_photo"
	SendingFile  Action = "upload_document"
)

// Upload is one file as submitted by a host, before decoding.
type Upload struct {
	Name string
	Data []byte
}

// SourceImage is a decoded upload. It is not modified after decoding.
type SourceImage struct {
	Name   string
	Data   []byte
	Image  image.Image
	Width  int
	Height int
	Format string
}

type Outcome string

const (
	Success Outcome = "success"
	Failure Outcome = "failure"
)

// ProcessedResult is the outcome of one upload in a batch run.
type ProcessedResult struct {
	Name       string
	OutputName string
	Original   image.Image
	Processed  image.Image
	Encoded    []byte
	BlockSize  int
	Outcome    Outcome
	Err        error
}

func (r ProcessedResult) OK() bool {
	return r.Outcome == Success
}

// Reason returns the failure reason, or an empty string for successful results.
func (r ProcessedResult) Reason() string {
	if r.Err == nil {
		return ""
	}

	return r.Err.Error()
}

// ProgressFunc receives the number of finished items and the batch size after each item.
type ProgressFunc func(completed, total int)

package domain

import "errors"

var (
	ErrSendingReplyFailed = errors.New("failed to send reply")
	ErrDecode             = errors.New("decode error")
	ErrTransform          = errors.New("transform error")
	ErrImageTooLarge      = errors.New("image exceeds pixel limit")
	ErrBatchTooLarge      = errors.New("batch exceeds image limit")
	ErrEmptyBatch         = errors.New("no images in batch")
)

const (
	MinBlockSize        = 4
	BlockSizeDivisor    = 100
	DefaultMaxImages    = 500
	DefaultOutputPrefix = "mosaic_"
	OutputExtension     = ".png"
)

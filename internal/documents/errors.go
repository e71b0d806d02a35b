package documents

import "errors"

var (
	ErrNotFound       = errors.New("document not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrTooLarge       = errors.New("file exceeds the size limit")
	ErrLimitReached   = errors.New("document limit reached")
	ErrUnsupportedExt = errors.New("file type not allowed")
)

package reports

import "errors"

var (
	ErrNotFound          = errors.New("report not found")
	ErrAlreadyExists     = errors.New("report already exists")
	ErrInvalidInput      = errors.New("invalid input")
	ErrUnsupportedFormat = errors.New("unsupported report format")
)

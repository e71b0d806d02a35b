package quiz

import "errors"

var (
	ErrNotFound     = errors.New("quiz submission not found")
	ErrInvalidInput = errors.New("invalid input")
)

package llm

import (
	"context"
	"errors"
)

// Client abstracts text completion providers.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Request is a single-turn completion request.
type Request struct {
	System    string
	Prompt    string
	MaxTokens int64
}

// DefaultMaxTokens bounds a completion when the request leaves MaxTokens unset.
const DefaultMaxTokens int64 = 1024

// MaxTokensOrDefault returns the request budget or DefaultMaxTokens.
func (r Request) MaxTokensOrDefault() int64 {
	if r.MaxTokens > 0 {
		return r.MaxTokens
	}
	return DefaultMaxTokens
}

// ErrNotImplemented is returned by the placeholder client.
var ErrNotImplemented = errors.New("LLM not implemented")

// PlaceholderClient stands in when no provider is configured.
type PlaceholderClient struct{}

// Complete returns ErrNotImplemented.
func (PlaceholderClient) Complete(ctx context.Context, req Request) (string, error) {
	_ = ctx
	_ = req
	return "", ErrNotImplemented
}

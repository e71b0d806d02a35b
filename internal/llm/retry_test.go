package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedClient struct {
	errs  []error
	calls int
}

func (s *scriptedClient) Complete(ctx context.Context, req Request) (string, error) {
	i := s.calls
	s.calls++
	if i < len(s.errs) && s.errs[i] != nil {
		return "", s.errs[i]
	}
	return "ok", nil
}

func TestRetryOnTransientError(t *testing.T) {
	base := &scriptedClient{errs: []error{errors.New("openai http status 503: busy")}}
	client := retrying{base: base, delay: time.Millisecond}

	out, err := client.Complete(context.Background(), Request{Prompt: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, 2, base.calls)
}

func TestNoRetryOnPermanentError(t *testing.T) {
	base := &scriptedClient{errs: []error{errors.New("invalid api key")}}
	client := retrying{base: base, delay: time.Millisecond}

	_, err := client.Complete(context.Background(), Request{})
	require.Error(t, err)
	assert.Equal(t, 1, base.calls)
}

func TestRetryGivesUpOnce(t *testing.T) {
	transient := errors.New("connection reset by peer")
	base := &scriptedClient{errs: []error{transient, transient, nil}}
	client := retrying{base: base, delay: time.Millisecond}

	_, err := client.Complete(context.Background(), Request{})
	assert.ErrorIs(t, err, transient)
	assert.Equal(t, 2, base.calls)
}

func TestRetryHonoursCancellation(t *testing.T) {
	base := &scriptedClient{errs: []error{errors.New("request timeout")}}
	client := retrying{base: base, delay: time.Hour}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := client.Complete(ctx, Request{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, base.calls)
}

func TestShouldRetry(t *testing.T) {
	assert.False(t, ShouldRetry(nil))
	assert.False(t, ShouldRetry(ErrNotImplemented))
	assert.True(t, ShouldRetry(context.DeadlineExceeded))
	assert.True(t, ShouldRetry(errors.New("anthropic: 529 overloaded")))
	assert.False(t, ShouldRetry(errors.New("bad request")))
}

func TestWithRetryNil(t *testing.T) {
	assert.Nil(t, WithRetry(nil, "x"))
}

func TestPlaceholder(t *testing.T) {
	_, err := PlaceholderClient{}.Complete(context.Background(), Request{})
	assert.ErrorIs(t, err, ErrNotImplemented)
	assert.Equal(t, DefaultMaxTokens, Request{}.MaxTokensOrDefault())
	assert.Equal(t, int64(10), Request{MaxTokens: 10}.MaxTokensOrDefault())
}

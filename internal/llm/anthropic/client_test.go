package anthropic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aerogap-backend/internal/llm"
)

func newTestServer(t *testing.T, content []map[string]any, seen *map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, "/messages")
		if seen != nil {
			_ = json.NewDecoder(r.Body).Decode(seen)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
			"id":          "msg_test",
			"type":        "message",
			"role":        "assistant",
			"content":     content,
			"model":       "claude-sonnet-4-5-20250929",
			"stop_reason": "end_turn",
			"usage":       map[string]any{"input_tokens": 12, "output_tokens": 7},
		})
	}))
}

func TestCompleteJoinsTextBlocks(t *testing.T) {
	var body map[string]any
	ts := newTestServer(t, []map[string]any{
		{"type": "text", "text": "First paragraph."},
		{"type": "text", "text": "Second paragraph."},
	}, &body)
	defer ts.Close()

	client, err := NewClient("test-key", "claude-sonnet-4-5-20250929", option.WithBaseURL(ts.URL), option.WithMaxRetries(0))
	require.NoError(t, err)

	out, err := client.Complete(context.Background(), llm.Request{System: "be brief", Prompt: "summarize", MaxTokens: 300})
	require.NoError(t, err)
	assert.Equal(t, "First paragraph.\nSecond paragraph.", out)
	assert.EqualValues(t, 300, body["max_tokens"])
	assert.NotNil(t, body["system"])
}

func TestCompleteEmptyReply(t *testing.T) {
	ts := newTestServer(t, []map[string]any{}, nil)
	defer ts.Close()

	client, err := NewClient("test-key", "claude-sonnet-4-5-20250929", option.WithBaseURL(ts.URL), option.WithMaxRetries(0))
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), llm.Request{Prompt: "summarize"})
	assert.Error(t, err)
}

func TestNewClientRequiresKeyAndModel(t *testing.T) {
	_, err := NewClient("", "m")
	assert.Error(t, err)
	_, err = NewClient("k", "")
	assert.Error(t, err)
}

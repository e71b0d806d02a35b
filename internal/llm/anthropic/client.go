package anthropic

import (
	"context"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rotisserie/eris"

	"aerogap-backend/internal/llm"
	"aerogap-backend/internal/shared/telemetry"
)

// Client implements llm.Client with the Anthropic Messages API.
type Client struct {
	client sdk.Client
	model  string
}

// NewClient creates a client for the given model. Extra options are applied
// after the API key, which lets tests point the client at a local server.
func NewClient(apiKey, model string, opts ...option.RequestOption) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, eris.New("ANTHROPIC_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		return nil, eris.New("LLM_MODEL is required for Anthropic")
	}
	all := append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &Client{client: sdk.NewClient(all...), model: model}, nil
}

// Complete sends a single user turn and joins the text blocks of the reply.
func (c *Client) Complete(ctx context.Context, req llm.Request) (string, error) {
	params := sdk.MessageNewParams{
		Model:     sdk.Model(c.model),
		MaxTokens: req.MaxTokensOrDefault(),
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(req.Prompt)),
		},
	}
	if strings.TrimSpace(req.System) != "" {
		params.System = []sdk.TextBlockParam{{Text: req.System}}
	}

	msg, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return "", eris.Wrap(err, "anthropic: create message")
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type != "text" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(block.Text)
	}
	telemetry.Info("llm.usage", map[string]any{
		"provider":      "anthropic",
		"model":         c.model,
		"input_tokens":  msg.Usage.InputTokens,
		"output_tokens": msg.Usage.OutputTokens,
	})

	out := strings.TrimSpace(b.String())
	if out == "" {
		return "", eris.New("anthropic: empty response")
	}
	return out, nil
}

var _ llm.Client = (*Client)(nil)

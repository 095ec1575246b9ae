// Package anthropic generates roadmap candidates with the Anthropic Messages API.
package anthropic

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/heartmarshall/skillquest-backend/internal/provider"
)

const (
	defaultModel   = "claude-sonnet-4-5"
	defaultTimeout = 20 * time.Second
	maxTokens      = 2048
)

// Client calls the Messages API with SDK retries disabled.
type Client struct {
	api     anthropic.Client
	model   string
	timeout time.Duration
	log     *slog.Logger
}

// NewClient creates a Client against the public Anthropic endpoint.
func NewClient(apiKey, model string, timeout time.Duration, logger *slog.Logger) *Client {
	return newClient(model, timeout, logger, option.WithAPIKey(apiKey))
}

// NewClientWithURL creates a Client with a custom base URL (for testing).
func NewClientWithURL(baseURL, apiKey, model string, timeout time.Duration, logger *slog.Logger) *Client {
	return newClient(model, timeout, logger, option.WithAPIKey(apiKey), option.WithBaseURL(baseURL))
}

func newClient(model string, timeout time.Duration, logger *slog.Logger, opts ...option.RequestOption) *Client {
	if model == "" {
		model = defaultModel
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	opts = append(opts, option.WithMaxRetries(0))
	return &Client{
		api:     anthropic.NewClient(opts...),
		model:   model,
		timeout: timeout,
		log:     logger.With("adapter", "anthropic"),
	}
}

// GenerateRoadmap asks the model for a roadmap for field and returns the raw
// JSON object it produced. The result is not checked against the roadmap schema.
func (c *Client) GenerateRoadmap(ctx context.Context, field string) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	c.log.DebugContext(ctx, "anthropic request", slog.String("field", field), slog.String("model", c.model))

	msg, err := c.api.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(provider.RoadmapPrompt(field))),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("anthropic: messages call: %w: %w", provider.ErrUnexpectedStatus, err)
	}

	var text string
	for _, block := range msg.Content {
		if block.Type == "text" && block.Text != "" {
			text = block.Text
			break
		}
	}
	if text == "" {
		return nil, fmt.Errorf("anthropic: %w", provider.ErrEmptyResponse)
	}

	obj, err := provider.ExtractJSON(text)
	if err != nil {
		return nil, fmt.Errorf("anthropic: %w", err)
	}
	if !json.Valid([]byte(obj)) {
		return nil, fmt.Errorf("anthropic: message text: %w", provider.ErrMalformedJSON)
	}

	return json.RawMessage(obj), nil
}

// Package gemini generates roadmap candidates with the Gemini generateContent API.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/heartmarshall/skillquest-backend/internal/provider"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultModel   = "gemini-1.5-flash"
	defaultTimeout = 20 * time.Second
	maxBodyBytes   = 1 << 20
)

// Client calls the Gemini API. It never retries.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	timeout    time.Duration
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a Client against the public Gemini endpoint.
func NewClient(apiKey, model string, timeout time.Duration, logger *slog.Logger) *Client {
	return NewClientWithURL(defaultBaseURL, apiKey, model, timeout, logger)
}

// NewClientWithURL creates a Client with a custom base URL (for testing).
func NewClientWithURL(baseURL, apiKey, model string, timeout time.Duration, logger *slog.Logger) *Client {
	if model == "" {
		model = defaultModel
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
		timeout:    timeout,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "gemini"),
	}
}

// GenerateRoadmap asks the model for a roadmap for field and returns the raw
// JSON object it produced. The result is not checked against the roadmap schema.
func (c *Client) GenerateRoadmap(ctx context.Context, field string) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(apiRequest{
		Contents: []apiContent{{
			Role:  "user",
			Parts: []apiPart{{Text: provider.RoadmapPrompt(field)}},
		}},
		GenerationConfig: apiGenerationConfig{ResponseMIMEType: "application/json"},
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("gemini: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.log.DebugContext(ctx, "gemini request", slog.String("field", field), slog.String("model", c.model))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// url.Error carries the request URL, which holds the API key.
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return nil, fmt.Errorf("gemini: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("gemini: status %d: %w", resp.StatusCode, provider.ErrUnexpectedStatus)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("gemini: read body: %w", err)
	}

	var parsed apiResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("gemini: decode envelope: %w", provider.ErrMalformedJSON)
	}

	text := parsed.text()
	if text == "" {
		return nil, fmt.Errorf("gemini: %w", provider.ErrEmptyResponse)
	}

	obj, err := provider.ExtractJSON(text)
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	if !json.Valid([]byte(obj)) {
		return nil, fmt.Errorf("gemini: candidate text: %w", provider.ErrMalformedJSON)
	}

	c.log.DebugContext(ctx, "gemini response", slog.String("field", field), slog.Int("bytes", len(obj)))

	return json.RawMessage(obj), nil
}

func (c *Client) endpoint() string {
	return fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		c.baseURL, url.PathEscape(c.model), url.QueryEscape(c.apiKey))
}

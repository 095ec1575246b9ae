// Package libretranslate translates text with a LibreTranslate server.
package libretranslate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/skillquest-backend/internal/provider"
)

const (
	defaultURL     = "https://libretranslate.com/translate"
	defaultTimeout = 4 * time.Second
	maxBodyBytes   = 1 << 20
)

type apiRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
	APIKey string `json:"api_key,omitempty"`
}

type apiResponse struct {
	TranslatedText string `json:"translatedText"`
}

// Provider posts translation requests to a LibreTranslate /translate endpoint.
type Provider struct {
	url        string
	apiKey     string
	timeout    time.Duration
	httpClient *http.Client
	log        *slog.Logger
}

// NewProvider creates a Provider. An empty url selects the public instance.
func NewProvider(url, apiKey string, timeout time.Duration, logger *slog.Logger) *Provider {
	if url == "" {
		url = defaultURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Provider{
		url:        url,
		apiKey:     apiKey,
		timeout:    timeout,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "libretranslate"),
	}
}

// Translate returns q translated from source into target.
// An empty translatedText in a successful response yields "".
func (p *Provider) Translate(ctx context.Context, q, source, target string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	body, err := json.Marshal(apiRequest{Q: q, Source: source, Target: target, Format: "text", APIKey: p.apiKey})
	if err != nil {
		return "", fmt.Errorf("libretranslate: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("libretranslate: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.log.WarnContext(ctx, "libretranslate request failed",
			slog.String("target", target), slog.String("error", err.Error()))
		return "", fmt.Errorf("libretranslate: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("libretranslate: status %d: %w", resp.StatusCode, provider.ErrUnexpectedStatus)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("libretranslate: read body: %w", err)
	}

	var out apiResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("libretranslate: decode json: %w", provider.ErrMalformedJSON)
	}

	p.log.DebugContext(ctx, "libretranslate response",
		slog.String("source", source), slog.String("target", target), slog.Int("chars", len(out.TranslatedText)))

	return out.TranslatedText, nil
}

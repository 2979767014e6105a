// Package chatbotapi is a client for the legacy chatbot backend API.
package chatbotapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"gateway/internal/config"
	"gateway/pkg/serrors"
)

// Options configure the chatbot API client.
type Options struct {
	BaseURL string
	Timeout time.Duration
	// Headers are sent with every request.
	Headers http.Header
	// HTTPClient overrides the default client built from Timeout.
	HTTPClient *http.Client
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		BaseURL: cfg.ChatbotAPI.BaseURL,
		Timeout: cfg.ChatbotAPI.Timeout,
	}
}

// Client posts events to the chatbot backend. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	headers    http.Header
}

// New constructs a Client. It fails when no base URL is configured.
func New(options Options) (*Client, error) {
	if options.BaseURL == "" {
		return nil, serrors.With(serrors.ErrBadRequest, "CHATBOT_API_BASE_URL is not configured")
	}

	httpClient := options.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: options.Timeout}
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(options.BaseURL, "/"),
		headers:    options.Headers.Clone(),
	}, nil
}

// PostEvent posts payload as JSON to endpoint, relative to the base URL, and
// returns the decoded JSON object answered by the chatbot.
func (c *Client) PostEvent(ctx context.Context, endpoint string, payload map[string]any) (map[string]any, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("could not marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(endpoint), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	for k, v := range c.headers {
		req.Header[k] = v
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrUnavailable, err, "could not send request")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, serrors.With(serrors.ErrUpstream,
			"chatbot api answered %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var out map[string]any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, serrors.Wrap(serrors.ErrUpstream, err, "could not decode response")
	}

	return out, nil
}

func (c *Client) url(endpoint string) string {
	if strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		return endpoint
	}

	return c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
}

package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// StatusError reports a non-2xx response from the completion gateway.
// Rate-limit (429) and quota (402) statuses are passed through to the
// caller so the inbound handler can surface them verbatim.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream: gateway returned %d: %s", e.StatusCode, strings.TrimSpace(e.Body))
}

// IsRateLimited reports whether err is an upstream 429.
func IsRateLimited(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusTooManyRequests
}

// IsQuotaExhausted reports whether err is an upstream 402.
func IsQuotaExhausted(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusPaymentRequired
}

// ErrNotConfigured is returned when the gateway credential is missing.
var ErrNotConfigured = errors.New("upstream: gateway key not configured")

// Config describes how to reach the completion gateway.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Client calls the chat-completions gateway.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	http    *http.Client
}

// NewClient validates the configuration and returns a ready-to-use client.
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, errors.New("upstream: base URL required")
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, errors.New("upstream: model required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		http: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// Model returns the configured model identifier.
func (c *Client) Model() string { return c.model }

// StreamChat opens a streaming completion and returns the raw SSE body.
// The caller owns the returned reader and must close it; the stream stays
// bound to ctx, so cancelling the request aborts the read.
func (c *Client) StreamChat(ctx context.Context, messages []Message, tools []Tool) (io.ReadCloser, error) {
	if strings.TrimSpace(c.apiKey) == "" {
		return nil, ErrNotConfigured
	}
	if len(messages) == 0 {
		return nil, errors.New("upstream: messages required")
	}

	payload := ChatRequest{
		Model:    c.model,
		Messages: messages,
		Tools:    tools,
		Stream:   true,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("upstream: failed to encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("upstream: request build failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upstream: request failed: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		_ = resp.Body.Close()
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return resp.Body, nil
}

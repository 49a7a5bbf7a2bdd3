package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// CapabilityClient calls the capability endpoints that ground tool calls:
// hospital search, flight search, and cost estimates.
type CapabilityClient struct {
	baseURL string
	token   string
	http    *http.Client
}

// CapabilityConfig describes how to reach the capability endpoints.
type CapabilityConfig struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

func NewCapabilityClient(cfg CapabilityConfig) *CapabilityClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &CapabilityClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		http:    &http.Client{Timeout: timeout},
	}
}

// Post sends body to the capability path and returns the raw JSON response.
func (c *CapabilityClient) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("chat: encoding capability request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("chat: building capability request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("chat: calling capability %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("chat: reading capability response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("chat: capability %s returned %d: %s",
			path, resp.StatusCode, strings.TrimSpace(string(data)))
	}
	return data, nil
}

package images

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrNotConfigured is returned when no Freepik API key is set. Image lookups
// are cosmetic, so callers fall back to stock defaults.
var ErrNotConfigured = errors.New("images: freepik key not configured")

const defaultBaseURL = "https://api.freepik.com"

// Config describes the Freepik connection.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client searches stock imagery through the Freepik resources API.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(cfg Config) *Client {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: base,
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: timeout},
	}
}

// Configured reports whether the client holds a usable credential.
func (c *Client) Configured() bool { return c.apiKey != "" }

// Image is one search hit.
type Image struct {
	ID    json.Number `json:"id"`
	Title string      `json:"title"`
	URL   string      `json:"url"`
}

type searchResponse struct {
	Data []struct {
		ID    json.Number `json:"id"`
		Title string      `json:"title"`
		Image struct {
			Source struct {
				URL string `json:"url"`
			} `json:"source"`
		} `json:"image"`
	} `json:"data"`
	Meta struct {
		Total int `json:"total"`
	} `json:"meta"`
}

// Search returns up to limit stock images matching term.
func (c *Client) Search(ctx context.Context, term string, limit, page int) ([]Image, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	if strings.TrimSpace(term) == "" {
		return nil, errors.New("images: search term required")
	}
	if limit <= 0 {
		limit = 10
	}
	if page <= 0 {
		page = 1
	}

	q := url.Values{}
	q.Set("term", term)
	q.Set("limit", strconv.Itoa(limit))
	q.Set("page", strconv.Itoa(page))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/resources?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("images: building request: %w", err)
	}
	req.Header.Set("x-freepik-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("images: calling freepik: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("images: freepik returned %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("images: decoding response: %w", err)
	}

	out := make([]Image, 0, len(parsed.Data))
	for _, d := range parsed.Data {
		out = append(out, Image{ID: d.ID, Title: d.Title, URL: d.Image.Source.URL})
	}
	return out, nil
}

// FirstURL is a convenience for "any decent picture of X": the first hit's
// URL, or empty when nothing matched.
func (c *Client) FirstURL(ctx context.Context, term string) (string, error) {
	hits, err := c.Search(ctx, term, 1, 1)
	if err != nil {
		return "", err
	}
	if len(hits) == 0 {
		return "", nil
	}
	return hits[0].URL, nil
}

package scrape

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

// ErrNotConfigured is returned when no Firecrawl API key is set. Callers
// treat scraped content as optional enrichment and continue without it.
var ErrNotConfigured = errors.New("scrape: firecrawl key not configured")

const defaultBaseURL = "https://api.firecrawl.dev"

// Config describes the Firecrawl connection.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client fetches page content through the Firecrawl scrape API.
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
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: base,
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: timeout},
	}
}

// Configured reports whether the client holds a usable credential.
func (c *Client) Configured() bool { return c.apiKey != "" }

// PageResult is the outcome of scraping a single URL.
type PageResult struct {
	URL      string `json:"url"`
	Success  bool   `json:"success"`
	Markdown string `json:"markdown,omitempty"`
	Error    string `json:"error,omitempty"`
}

type scrapeRequest struct {
	URL     string   `json:"url"`
	Formats []string `json:"formats"`
}

type scrapeResponse struct {
	Data struct {
		Markdown string `json:"markdown"`
	} `json:"data"`
}

// ScrapeOne fetches one page as markdown.
func (c *Client) ScrapeOne(ctx context.Context, url string) (PageResult, error) {
	if !c.Configured() {
		return PageResult{}, ErrNotConfigured
	}

	body, err := json.Marshal(scrapeRequest{URL: url, Formats: []string{"markdown"}})
	if err != nil {
		return PageResult{}, fmt.Errorf("scrape: encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/scrape", bytes.NewReader(body))
	if err != nil {
		return PageResult{}, fmt.Errorf("scrape: building request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return PageResult{}, fmt.Errorf("scrape: calling firecrawl: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return PageResult{
			URL:     url,
			Error:   fmt.Sprintf("firecrawl returned %d: %s", resp.StatusCode, strings.TrimSpace(string(detail))),
		}, nil
	}

	var parsed scrapeResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return PageResult{}, fmt.Errorf("scrape: decoding response: %w", err)
	}
	return PageResult{URL: url, Success: true, Markdown: parsed.Data.Markdown}, nil
}

// ScrapeAll fetches every URL concurrently; per-URL failures are recorded in
// the results rather than aborting the batch. Result order follows urls.
func (c *Client) ScrapeAll(ctx context.Context, urls []string) ([]PageResult, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	if len(urls) == 0 {
		return nil, errors.New("scrape: at least one url required")
	}

	results := make([]PageResult, len(urls))
	var wg sync.WaitGroup
	for i, url := range urls {
		wg.Add(1)
		go func(i int, url string) {
			defer wg.Done()
			res, err := c.ScrapeOne(ctx, url)
			if err != nil {
				res = PageResult{URL: url, Error: err.Error()}
			}
			results[i] = res
		}(i, url)
	}
	wg.Wait()
	return results, nil
}

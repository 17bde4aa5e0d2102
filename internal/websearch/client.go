// Package websearch resolves product names to real purchase pages through a
// Tavily-style search API.
//
// Resolution is best effort: a failed or empty lookup degrades the affected
// product instead of failing the batch.
package websearch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/agentpay/agentpay/internal/log"
)

// DefaultBaseURL is the Tavily API endpoint.
const DefaultBaseURL = "https://api.tavily.com"

// maxResponseSize bounds search response bodies (1MB).
const maxResponseSize = 1 << 20

// Result is one search hit.
type Result struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

// Config contains all required parameters for the search client.
type Config struct {
	APIKey string
	Logger log.Logger

	// BaseURL overrides the API endpoint; used in tests.
	BaseURL string

	// HTTPClient is optional; nil uses a 15s-timeout default client.
	HTTPClient *http.Client

	// RateLimiter is optional; nil uses a default of 10 req/s, burst 30.
	RateLimiter *rate.Limiter
}

// Client queries the search API for product purchase pages.
//
// Client is safe for concurrent use by multiple goroutines.
type Client struct {
	apiKey  string
	baseURL string
	httpc   *http.Client
	limiter *rate.Limiter
	logger  log.Logger
}

// New creates a search client.
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("websearch: API key is required")
	}
	if cfg.Logger == nil {
		return nil, errors.New("websearch: logger is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	httpc := cfg.HTTPClient
	if httpc == nil {
		httpc = &http.Client{Timeout: 15 * time.Second}
	}
	limiter := cfg.RateLimiter
	if limiter == nil {
		limiter = rate.NewLimiter(10, 30)
	}

	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		httpc:   httpc,
		limiter: limiter,
		logger:  cfg.Logger,
	}, nil
}

type searchRequest struct {
	APIKey     string `json:"api_key"`
	Query      string `json:"query"`
	MaxResults int    `json:"max_results"`
}

type searchResponse struct {
	Results []Result `json:"results"`
}

// Resolve searches for a direct purchase page for the named product.
// It prefers the first hit that looks like an actual product page and falls
// back to the first hit of any kind. Returns (nil, nil) when nothing was
// found.
func (c *Client) Resolve(ctx context.Context, productName string) (*Result, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("websearch: rate limit wait: %w", err)
	}

	payload, err := json.Marshal(searchRequest{
		APIKey:     c.apiKey,
		Query:      "buy " + productName,
		MaxResults: 5,
	})
	if err != nil {
		return nil, fmt.Errorf("websearch: encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("websearch: building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("websearch: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("websearch: search returned status %d: %s", resp.StatusCode, body)
	}

	var data searchResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&data); err != nil {
		return nil, fmt.Errorf("websearch: decoding response: %w", err)
	}
	if len(data.Results) == 0 {
		c.logger.Debug("no search results", "product", productName)
		return nil, nil
	}

	for i := range data.Results {
		if isProductPage(data.Results[i].URL) {
			return &data.Results[i], nil
		}
	}
	return &data.Results[0], nil
}

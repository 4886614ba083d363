// Package httpds downloads a listing export over HTTP(S), retrying
// transient failures with exponential backoff.
package httpds

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Config configures the download client. Zero values get defaults:
// Timeout 60s, MaxRetries 0, InitialBackoff 200ms, MaxBackoff 5s.
type Config struct {
	Timeout        time.Duration
	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	// Transport replaces http.DefaultTransport, mainly for tests.
	Transport http.RoundTripper
}

// Client is an http.Client with retry on 429 and 5xx responses.
type Client struct {
	httpClient     *http.Client
	maxRetries     int
	initialBackoff time.Duration
	maxBackoff     time.Duration

	// wait blocks for d or until ctx is done.
	wait func(ctx context.Context, d time.Duration) error
}

// NewClient constructs a Client from cfg.
func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = 200 * time.Millisecond
	}
	if cfg.MaxBackoff <= 0 {
		cfg.MaxBackoff = 5 * time.Second
	}
	return &Client{
		httpClient:     &http.Client{Timeout: cfg.Timeout, Transport: cfg.Transport},
		maxRetries:     cfg.MaxRetries,
		initialBackoff: cfg.InitialBackoff,
		maxBackoff:     cfg.MaxBackoff,
		wait:           waitContext,
	}
}

// Get fetches url. A response with a non-retryable status is returned as
// is; the caller checks the status and closes the body.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			if err := c.wait(ctx, backoff(c.initialBackoff, attempt-1, c.maxBackoff)); err != nil {
				return nil, err
			}
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("httpds: build request: %w", err)
		}
		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			continue
		}
		if !retryable(resp.StatusCode) {
			return resp, nil
		}
		resp.Body.Close()
		lastErr = fmt.Errorf("httpds: GET %s: %s", url, resp.Status)
	}
	return nil, lastErr
}

// retryable reports whether status is worth another attempt: 429 and 5xx.
func retryable(status int) bool {
	return status == http.StatusTooManyRequests || (status >= 500 && status <= 599)
}

// backoff returns initial * 2^retry, capped at max.
func backoff(initial time.Duration, retry int, max time.Duration) time.Duration {
	if retry >= 32 {
		return max
	}
	d := initial << retry
	if d > max || d <= 0 {
		return max
	}
	return d
}

func waitContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

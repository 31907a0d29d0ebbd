// Package source fetches the leaderboard from the remote mining pool.
package source

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/okian/minerboard/pkg/logger"
	"github.com/okian/minerboard/pkg/metrics"
)

const defaultMaxBodyBytes = 32 << 20

// Client performs the single GET of a run. No retries, no auth headers.
type Client struct {
	url          string
	httpClient   *http.Client
	insecure     bool
	timeout      time.Duration
	maxBodyBytes int64
	logger       logger.Logger
}

// New creates a Client for url.
func New(url string, opts ...Option) *Client {
	c := &Client{
		url:          url,
		maxBodyBytes: defaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = newHTTPClient(c.insecure, c.timeout)
	}
	if c.logger == nil {
		c.logger = logger.Get()
	}
	return c
}

// newHTTPClient clones the default transport so the TLS setting stays local
// to this client.
func newHTTPClient(insecure bool, timeout time.Duration) *http.Client {
	tr := http.DefaultTransport.(*http.Transport).Clone()
	if insecure {
		tr.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // explicit opt-in via source_insecure_skip_verify
	}
	return &http.Client{Transport: tr, Timeout: timeout}
}

// URL returns the configured endpoint.
func (c *Client) URL() string { return c.url }

// Insecure reports whether certificate verification is disabled.
func (c *Client) Insecure() bool { return c.insecure }

// Fetch GETs the endpoint and returns the body of a 2xx response.
func (c *Client) Fetch(ctx context.Context) ([]byte, error) {
	start := time.Now()
	body, outcome, err := c.fetch(ctx)
	elapsed := time.Since(start)
	metrics.RecordFetch(outcome, float64(elapsed.Milliseconds()), len(body))

	if err != nil {
		c.logger.Warn(ctx, "leaderboard fetch failed",
			logger.String("url", c.url),
			logger.String("outcome", outcome),
			logger.Duration("elapsed", elapsed),
			logger.Error(err))
		return nil, err
	}
	c.logger.Debug(ctx, "leaderboard fetched",
		logger.String("url", c.url),
		logger.Int("bytes", len(body)),
		logger.Duration("elapsed", elapsed))
	return body, nil
}

func (c *Client) fetch(ctx context.Context) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, metrics.OutcomeTransportErr, fmt.Errorf("%w: %w", ErrRequest, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, metrics.OutcomeTransportErr, fmt.Errorf("%w: %w", ErrRequest, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, c.maxBodyBytes))
		return nil, metrics.OutcomeBadStatus, &StatusError{Code: resp.StatusCode, URL: c.url}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodyBytes+1))
	if err != nil {
		return nil, metrics.OutcomeBadBody, fmt.Errorf("%w: %w", ErrBody, err)
	}
	if int64(len(body)) > c.maxBodyBytes {
		return nil, metrics.OutcomeBadBody, fmt.Errorf("%w: body exceeds %d bytes", ErrBody, c.maxBodyBytes)
	}
	return body, metrics.OutcomeSuccess, nil
}

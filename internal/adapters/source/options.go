package source

import (
	"net/http"
	"time"

	"github.com/okian/minerboard/pkg/logger"
)

// Option configures a Client.
type Option func(*Client)

// WithInsecureSkipVerify disables TLS certificate verification.
func WithInsecureSkipVerify(insecure bool) Option {
	return func(c *Client) {
		c.insecure = insecure
	}
}

// WithTimeout bounds each request; zero or negative means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithHTTPClient replaces the HTTP client; TLS and timeout options are then
// left to the caller.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithMaxBodyBytes caps the accepted response size.
func WithMaxBodyBytes(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxBodyBytes = n
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

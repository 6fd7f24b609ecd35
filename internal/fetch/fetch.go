// Package fetch provides polite HTTP fetching for government sites: bounded
// timeouts, a per-origin minimum inter-request delay, and size-capped body
// reads. Every request issued by the scanner goes through this package.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultTimeout is the per-request timeout. Government sites are slow.
const DefaultTimeout = 45 * time.Second

// DefaultUserAgent identifies the scanner to upstream sites.
const DefaultUserAgent = "Mozilla/5.0 (compatible; PayrollRadar/1.0)"

// DefaultMaxBodyBytes caps how much of a response body is read.
const DefaultMaxBodyBytes = 10 << 20 // 10 MB

// DefaultOriginDelay is the minimum gap between requests to one host.
const DefaultOriginDelay = 1500 * time.Millisecond

// Result holds a fetched response.
type Result struct {
	URL         string
	Body        []byte
	ContentType string
	StatusCode  int
}

// HTML returns the body as a string.
func (r *Result) HTML() string {
	return string(r.Body)
}

// Error represents a failure while fetching a URL.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures a Client.
type Options struct {
	Timeout      time.Duration
	UserAgent    string
	MaxBodyBytes int64
	OriginDelay  time.Duration
}

// DefaultOptions returns sensible defaults for scanning.
func DefaultOptions() *Options {
	return &Options{
		Timeout:      DefaultTimeout,
		UserAgent:    DefaultUserAgent,
		MaxBodyBytes: DefaultMaxBodyBytes,
		OriginDelay:  DefaultOriginDelay,
	}
}

// Client issues rate-disciplined HTTP GETs. It is safe for concurrent use;
// requests to the same origin are spaced out by the limiter.
type Client struct {
	http    *http.Client
	limiter *originLimiter
	opts    Options
}

// NewClient creates a Client with the given options (nil for defaults).
func NewClient(opts *Options) *Client {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.MaxBodyBytes == 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	return &Client{
		http:    &http.Client{Timeout: opts.Timeout},
		limiter: newOriginLimiter(opts.OriginDelay),
		opts:    *opts,
	}
}

// Get fetches a URL. A non-2xx status returns both the Result (with status
// and body) and an *Error, so callers can inspect what came back.
func (c *Client) Get(ctx context.Context, urlStr string) (*Result, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, &Error{URL: urlStr, Message: "invalid URL", Cause: err}
	}

	if err := c.limiter.Wait(ctx, parsed.Host); err != nil {
		return nil, &Error{URL: urlStr, Message: "canceled while rate limited", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.ContentLength > c.opts.MaxBodyBytes {
		return nil, &Error{
			URL:     urlStr,
			Message: fmt.Sprintf("response too large (%d bytes)", resp.ContentLength),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.opts.MaxBodyBytes))
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to read response body", Cause: err}
	}

	result := &Result{
		URL:         urlStr,
		Body:        body,
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
	}

	if resp.StatusCode != http.StatusOK {
		return result, &Error{URL: urlStr, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}
	return result, nil
}

// Package http provides an HTTP-based implementation of sitechat.Fetcher.
package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/sitechat"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultUserAgent identifies sitechat to the servers it fetches from.
const DefaultUserAgent = "Mozilla/5.0 (compatible; sitechat/1.0)"

// maxBodySize bounds how much of a response body is read.
const maxBodySize = 10 << 20

// Ensure Fetcher implements sitechat.Fetcher at compile time.
var _ sitechat.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using HTTP requests.
// JavaScript is not executed.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the HTML content from the given URL.
// Transport failures, timeouts and non-2xx responses return EFETCH.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", sitechat.Errorf(sitechat.EFETCH, "invalid request for %s: %v", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return "", err
		}
		return "", sitechat.Errorf(sitechat.EFETCH, "request to %s failed: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", NewStatusError(resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", sitechat.Errorf(sitechat.EFETCH, "reading body of %s: %v", url, err)
	}

	return string(body), nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

// StatusError is returned for non-2xx responses. It unwraps to an EFETCH
// application error, so ErrorCode and ErrorMessage see it as a fetch failure.
type StatusError struct {
	StatusCode int
	err        *sitechat.Error
}

// NewStatusError returns the error for a response with the given status.
func NewStatusError(statusCode int, url string) *StatusError {
	return &StatusError{
		StatusCode: statusCode,
		err:        sitechat.Errorf(sitechat.EFETCH, "HTTP %d for %s", statusCode, url),
	}
}

func (e *StatusError) Error() string { return e.err.Error() }

func (e *StatusError) Unwrap() error { return e.err }

// Permanent reports whether a repeated request would get the same answer.
// Client errors are permanent except 408 Request Timeout and 429 Too Many
// Requests.
func (e *StatusError) Permanent() bool {
	switch e.StatusCode {
	case http.StatusRequestTimeout, http.StatusTooManyRequests:
		return false
	}
	return e.StatusCode >= 400 && e.StatusCode < 500
}

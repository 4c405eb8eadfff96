package sitechat

import "context"

// Fetcher retrieves raw HTML from URLs.
// JavaScript is not executed; the document is returned as served.
type Fetcher interface {
	// Fetch retrieves the document at url.
	// Returns EFETCH on transport failure, timeout or a non-2xx status.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}

// Package http provides HTTP implementations of blocklib.Fetcher for
// published pages and blocklib.URLSource for the admin status API.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/blocklib"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// Ensure Fetcher implements blocklib.Fetcher at compile time.
var _ blocklib.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves published page HTML using plain HTTP requests.
// Block markup is served fully decorated, so no script execution is needed.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
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

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
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
// A missing page is reported as ENOTFOUND and a refused one as
// EUNAUTHORIZED; neither is worth retrying.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", blocklib.Errorf(blocklib.EINVALID, "invalid page URL %q: %v", url, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if err := statusError(resp, url); err != nil {
		return "", err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

// statusError maps unsuccessful responses to application errors.
func statusError(resp *http.Response, url string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	switch resp.StatusCode {
	case http.StatusNotFound, http.StatusGone:
		return blocklib.Errorf(blocklib.ENOTFOUND, "HTTP %d for %s", resp.StatusCode, url)
	case http.StatusUnauthorized, http.StatusForbidden:
		return blocklib.Errorf(blocklib.EUNAUTHORIZED, "HTTP %d for %s", resp.StatusCode, url)
	}
	return fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
}

// Package http provides the HTTP-based implementations of fetching,
// robots.txt checking, and sitemap discovery. The fetcher sees pages
// exactly the way a non-rendering crawler does, which is also what most
// AI crawlers are.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/geolens"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
// Kept consistent with rod.DefaultFetchTimeout (10s).
const DefaultFetchTimeout = 10 * time.Second

// DefaultUserAgent identifies the analyzer to the sites it fetches.
const DefaultUserAgent = "geolens/1.0"

var _ geolens.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML over plain HTTP without executing JavaScript.
// The gap between what it sees and what rod.Fetcher sees is itself a
// signal the analysis measures.
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

	f.client = &http.Client{Timeout: f.timeout}

	return f
}

// Fetch retrieves the HTML document at url. Non-200 responses come back as
// coded errors: 404 and 410 map to ENOTFOUND, everything else to
// EUNAVAILABLE.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return "", geolens.Errorf(geolens.ENOTFOUND, "HTTP %d for %s", resp.StatusCode, url)
	case resp.StatusCode != http.StatusOK:
		return "", geolens.Errorf(geolens.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// Close is a no-op; http.Client holds nothing that needs cleanup.
func (f *Fetcher) Close() error {
	return nil
}

// Package rod provides a headless-Chrome implementation of fetching.
// It sees a page the way a rendering crawler does, after client-side
// JavaScript has run, which makes it the counterpart to the plain HTTP
// fetcher when measuring how much of a page's content depends on
// rendering.
package rod

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/fwojciec/geolens"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout is the default time allowed for a single render.
const DefaultFetchTimeout = 10 * time.Second

// DefaultStabilization is how long the DOM must stay unchanged after
// the load event before the render is read.
const DefaultStabilization = 300 * time.Millisecond

// Ensure Fetcher implements geolens.Fetcher at compile time.
var _ geolens.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser
// automation. Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager       *BrowserManager
	fetchTimeout  time.Duration
	stabilization time.Duration
	recycleAfter  int64
	closed        atomic.Bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout bounds each Fetch call.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.fetchTimeout = d
	}
}

// WithStabilization sets how long the DOM must stay unchanged before
// the rendered HTML is read. Zero disables the wait.
// Defaults to DefaultStabilization if not specified.
func WithStabilization(d time.Duration) Option {
	return func(f *Fetcher) {
		f.stabilization = d
	}
}

// WithRecycleAfter sets how many pages the underlying browser renders
// before it is recycled. Defaults to DefaultMaxPages if not specified.
func WithRecycleAfter(n int64) Option {
	return func(f *Fetcher) {
		f.recycleAfter = n
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome
// browser. Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		fetchTimeout:  DefaultFetchTimeout,
		stabilization: DefaultStabilization,
		recycleAfter:  DefaultMaxPages,
	}
	for _, opt := range opts {
		opt(f)
	}

	manager, err := NewBrowserManager(WithMaxPages(f.recycleAfter))
	if err != nil {
		return nil, err
	}
	f.manager = manager

	return f, nil
}

// Fetch navigates to the URL and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.closed.Load() {
		return "", geolens.Errorf(geolens.EINVALID, "fetcher is closed")
	}

	// Check context before starting
	if err := ctx.Err(); err != nil {
		return "", err
	}

	browser := f.manager.Browser()

	// Create a new page
	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	// Bound the whole render and propagate cancellation
	ctx, cancel := context.WithTimeout(ctx, f.fetchTimeout)
	defer cancel()
	page = page.Context(ctx)

	// Navigate to URL
	if err := page.Navigate(url); err != nil {
		return "", err
	}

	// Wait for page to load
	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	// The load event does not wait for framework hydration; let the
	// DOM settle before reading it
	if f.stabilization > 0 {
		if err := page.WaitDOMStable(f.stabilization, 0); err != nil {
			return "", err
		}
	}

	// Get rendered HTML
	html, err := page.HTML()
	if err != nil {
		return "", err
	}

	f.manager.IncrementPageCount()
	return html, nil
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	return f.manager.Close()
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}

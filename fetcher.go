package geolens

import "context"

// Fetcher retrieves raw HTML for a URL or local path. Implementations may
// use plain HTTP, a headless browser, or the filesystem. The core never
// retries a fetch; retry policy belongs to the caller.
type Fetcher interface {
	// Fetch returns the document at ref.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, ref string) (html string, err error)

	// Close releases any resources held by the fetcher.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// RobotsService reads a site's robots.txt policy for AI crawlers.
type RobotsService interface {
	// Check fetches the site's robots.txt and evaluates access for the
	// known AI crawler agents. A missing robots.txt means every agent
	// is allowed.
	Check(ctx context.Context, siteURL string) (*Robots, error)
}

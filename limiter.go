package geolens

import "context"

// DomainLimiter provides per-domain rate limiting. The site auditor uses
// it to keep concurrent page fetches polite to each host.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

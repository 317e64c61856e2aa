package crawl

import (
	"context"
	"sync"

	"github.com/fwojciec/geolens"
	"golang.org/x/time/rate"
)

var _ geolens.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter throttles fetches per host. Every host gets its own token
// bucket, so a slow crawl of one site never stalls pages queued for another.
type DomainLimiter struct {
	mu      sync.Mutex
	buckets map[string]*rate.Limiter
	rps     float64
}

// NewDomainLimiter allows rps requests per second to each host. Burst is
// fixed at 1, so requests space out evenly instead of clustering.
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{
		buckets: make(map[string]*rate.Limiter),
		rps:     rps,
	}
}

// Wait blocks until the host's bucket has a token, or the context ends.
func (d *DomainLimiter) Wait(ctx context.Context, host string) error {
	return d.bucketFor(host).Wait(ctx)
}

func (d *DomainLimiter) bucketFor(host string) *rate.Limiter {
	d.mu.Lock()
	defer d.mu.Unlock()

	b, ok := d.buckets[host]
	if !ok {
		b = rate.NewLimiter(rate.Limit(d.rps), 1)
		d.buckets[host] = b
	}
	return b
}

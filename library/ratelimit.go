package library

import (
	"context"
	"net/url"
	"sync"

	"github.com/fwojciec/blocklib"
	"golang.org/x/time/rate"
)

var _ blocklib.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter throttles page fetches per host using token buckets, so a
// large site is not hit with every request of the fan-out at once while
// pages on other hosts proceed independently.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
	burst    int
}

// NewDomainLimiter creates a DomainLimiter allowing rps requests per second
// to each host with the given burst. A burst below one is treated as one.
func NewDomainLimiter(rps float64, burst int) *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
		burst:    max(burst, 1),
	}
}

// Wait blocks until a request to domain is allowed.
// Returns an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return d.limiter(domain).Wait(ctx)
}

func (d *DomainLimiter) limiter(domain string) *rate.Limiter {
	d.mu.Lock()
	defer d.mu.Unlock()

	l, ok := d.limiters[domain]
	if !ok {
		l = rate.NewLimiter(rate.Limit(d.rps), d.burst)
		d.limiters[domain] = l
	}
	return l
}

// waitForURL waits on limiter for the host of rawURL. A nil limiter never blocks.
func waitForURL(ctx context.Context, limiter blocklib.DomainLimiter, rawURL string) error {
	if limiter == nil {
		return nil
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return blocklib.Errorf(blocklib.EINVALID, "invalid page URL %q: %v", rawURL, err)
	}
	return limiter.Wait(ctx, u.Host)
}

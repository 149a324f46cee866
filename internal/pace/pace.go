// Package pace spaces outbound API calls so external services see a steady
// request rate rather than bursts.
package pace

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer blocks callers so that successive calls are at least one interval
// apart. A zero or negative interval disables pacing, which tests rely on.
type Pacer struct {
	limiter *rate.Limiter
}

// New returns a Pacer enforcing the given minimum interval between calls.
func New(interval time.Duration) *Pacer {
	if interval <= 0 {
		return &Pacer{}
	}
	return &Pacer{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

// Wait blocks until the next call is allowed or the context is done.
func (p *Pacer) Wait(ctx context.Context) error {
	if p == nil || p.limiter == nil {
		return nil
	}
	return p.limiter.Wait(ctx)
}

package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"founderfolio/internal/quote"
)

// Limiter wraps a provider and gates calls through a token bucket.
// The bucket is sized from the upstream's published rate limit, so the
// pacing policy is tunable without touching the provider itself.
type Limiter struct {
	P quote.Provider
	L *rate.Limiter
}

// NewLimiter builds a Limiter from a requests-per-minute budget.
func NewLimiter(p quote.Provider, maxPerMinute int, burst int) *Limiter {
	if burst <= 0 {
		burst = 1
	}
	return &Limiter{P: p, L: rate.NewLimiter(rate.Limit(float64(maxPerMinute)/60.0), burst)}
}

func (l *Limiter) Name() string { return l.P.Name() }

func (l *Limiter) Fetch(ctx context.Context, ticker string) (quote.Snapshot, error) {
	if l.L != nil {
		if err := l.L.Wait(ctx); err != nil {
			return quote.Snapshot{}, fmt.Errorf("%w: rate limit wait: %v", quote.ErrProvider, err)
		}
	}
	return l.P.Fetch(ctx, ticker)
}

// MinInterval wraps a provider and enforces a minimum time between calls.
// Each caller reserves the next start slot under the lock before waiting, so
// concurrent callers are serialized Interval apart instead of all observing
// the same stale last-call time and reaching upstream together.
type MinInterval struct {
	P        quote.Provider
	Interval time.Duration

	mu   sync.Mutex
	next time.Time
}

func (m *MinInterval) Name() string { return m.P.Name() }

func (m *MinInterval) Fetch(ctx context.Context, ticker string) (quote.Snapshot, error) {
	if m.Interval > 0 {
		m.mu.Lock()
		target := m.next
		if now := time.Now(); target.Before(now) {
			target = now
		}
		m.next = target.Add(m.Interval)
		m.mu.Unlock()

		if wait := time.Until(target); wait > 0 {
			t := time.NewTimer(wait)
			defer t.Stop()
			select {
			case <-ctx.Done():
				return quote.Snapshot{}, fmt.Errorf("%w: pacing wait: %v", quote.ErrProvider, ctx.Err())
			case <-t.C:
			}
		}
	}
	return m.P.Fetch(ctx, ticker)
}

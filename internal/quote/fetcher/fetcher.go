package fetcher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"founderfolio/internal/quote"
	"founderfolio/internal/quote/cache"
)

// Config tunes the retry behavior around transient provider failures.
type Config struct {
	// RetryAttempts is the number of extra attempts after the first call
	// fails with quote.ErrProvider. Not-found results are never retried.
	RetryAttempts int
	// RetryBackoff is the wait before a retry, doubled per attempt.
	RetryBackoff time.Duration
}

// Fetcher is the cache-first, coalescing front for a quote provider.
//
// A cache hit returns immediately. On a miss, concurrent callers for the
// same ticker join one in-flight fetch instead of issuing duplicates; the
// pacing delay of a rate-limited provider is therefore paid once per miss,
// not once per caller. The completed snapshot is written back to the cache
// before any caller sees it.
type Fetcher struct {
	provider quote.Provider
	cache    *cache.Cache
	cfg      Config
	log      zerolog.Logger

	sf    singleflight.Group
	sleep func(ctx context.Context, d time.Duration) error
}

func New(p quote.Provider, c *cache.Cache, cfg Config, log zerolog.Logger) *Fetcher {
	return &Fetcher{
		provider: p,
		cache:    c,
		cfg:      cfg,
		log:      log,
		sleep:    sleepCtx,
	}
}

// Source names the underlying provider.
func (f *Fetcher) Source() string { return f.provider.Name() }

// CacheSize reports the number of cached snapshots, stale ones included.
func (f *Fetcher) CacheSize() int { return f.cache.Size() }

// Fetch returns a fresh snapshot for the ticker, from cache when possible.
func (f *Fetcher) Fetch(ctx context.Context, ticker string) (quote.Snapshot, error) {
	if s, ok := f.cache.Get(ticker); ok {
		return s, nil
	}

	v, err, _ := f.sf.Do(ticker, func() (any, error) {
		// A flight that just completed may have filled the cache between
		// our miss and joining here.
		if s, ok := f.cache.Get(ticker); ok {
			return s, nil
		}
		s, err := f.fetchWithRetry(ctx, ticker)
		if err != nil {
			return nil, err
		}
		f.cache.Put(ticker, s)
		return s, nil
	})
	if err != nil {
		return quote.Snapshot{}, err
	}
	return v.(quote.Snapshot), nil
}

func (f *Fetcher) fetchWithRetry(ctx context.Context, ticker string) (quote.Snapshot, error) {
	s, err := f.provider.Fetch(ctx, ticker)
	backoff := f.cfg.RetryBackoff
	for attempt := 1; err != nil && errors.Is(err, quote.ErrProvider) && attempt <= f.cfg.RetryAttempts; attempt++ {
		f.log.Warn().
			Str("ticker", ticker).
			Int("attempt", attempt).
			Dur("backoff", backoff).
			Err(err).
			Msg("provider failure, retrying")
		if serr := f.sleep(ctx, backoff); serr != nil {
			return quote.Snapshot{}, fmt.Errorf("%w: retry wait: %v", quote.ErrProvider, serr)
		}
		s, err = f.provider.Fetch(ctx, ticker)
		backoff *= 2
	}
	return s, err
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

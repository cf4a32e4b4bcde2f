package cache

import (
	"sync"
	"time"

	"founderfolio/internal/quote"
)

// Cache stores the last fetched snapshot per ticker with a TTL.
// Expiry is passive: a stale entry is reported as a miss on Get but stays in
// the map until the next Put replaces it. Growth is bounded by the catalog
// size, so there is no eviction.
type Cache struct {
	ttl time.Duration

	mu    sync.RWMutex
	items map[string]quote.Snapshot

	now func() time.Time
}

func New(ttl time.Duration) *Cache {
	return &Cache{
		ttl:   ttl,
		items: make(map[string]quote.Snapshot),
		now:   time.Now,
	}
}

// Get returns the stored snapshot for ticker if it is still fresh,
// i.e. now - fetched_at < TTL. A stale entry is a miss.
func (c *Cache) Get(ticker string) (quote.Snapshot, bool) {
	c.mu.RLock()
	s, ok := c.items[ticker]
	c.mu.RUnlock()
	if !ok {
		return quote.Snapshot{}, false
	}
	if c.now().Sub(s.FetchedAt) >= c.ttl {
		return quote.Snapshot{}, false
	}
	return s, true
}

// Put unconditionally replaces any existing entry for the ticker.
func (c *Cache) Put(ticker string, s quote.Snapshot) {
	c.mu.Lock()
	c.items[ticker] = s
	c.mu.Unlock()
}

// Size counts stored entries, stale ones included. Exposed for diagnostics.
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

package cache

import (
	"testing"
	"time"

	"founderfolio/internal/quote"
)

func TestGet_TTLBoundary(t *testing.T) {
	const ttl = time.Hour
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	c := New(ttl)
	now := t0
	c.now = func() time.Time { return now }

	snap := quote.Snapshot{Ticker: "META", CurrentPrice: 600, FetchedAt: t0}
	c.Put("META", snap)

	// One second before expiry: still fresh.
	now = t0.Add(ttl - time.Second)
	got, ok := c.Get("META")
	if !ok {
		t.Fatal("want hit before TTL")
	}
	if got.CurrentPrice != 600 {
		t.Fatalf("unexpected snapshot: %+v", got)
	}

	// One second past expiry: a miss, but the entry is not deleted.
	now = t0.Add(ttl + time.Second)
	if _, ok := c.Get("META"); ok {
		t.Fatal("want miss after TTL")
	}
	if c.Size() != 1 {
		t.Fatalf("stale entries stay counted, size=%d", c.Size())
	}
}

func TestGet_MissingTicker(t *testing.T) {
	c := New(time.Hour)
	if _, ok := c.Get("NVDA"); ok {
		t.Fatal("want miss for unknown ticker")
	}
}

func TestPut_Replaces(t *testing.T) {
	t0 := time.Now()
	c := New(time.Hour)

	c.Put("META", quote.Snapshot{Ticker: "META", CurrentPrice: 1, FetchedAt: t0})
	c.Put("META", quote.Snapshot{Ticker: "META", CurrentPrice: 2, FetchedAt: t0})

	got, ok := c.Get("META")
	if !ok || got.CurrentPrice != 2 {
		t.Fatalf("want replaced snapshot, got %+v ok=%v", got, ok)
	}
	if c.Size() != 1 {
		t.Fatalf("size=%d", c.Size())
	}
}

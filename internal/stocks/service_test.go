package stocks

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"founderfolio/internal/catalog"
	"founderfolio/internal/quote"
)

type fakeFetcher struct {
	mu    sync.Mutex
	snaps map[string]quote.Snapshot
	errs  map[string]error
	calls map[string]int
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		snaps: make(map[string]quote.Snapshot),
		errs:  make(map[string]error),
		calls: make(map[string]int),
	}
}

func (f *fakeFetcher) set(ticker string, price, ma, ytd float64) {
	f.snaps[ticker] = quote.Snapshot{
		Ticker:          ticker,
		CurrentPrice:    price,
		MovingAvg200Day: ma,
		YTDReturnPct:    ytd,
		MABasis:         quote.MABasisExact,
		FetchedAt:       time.Now(),
	}
}

func (f *fakeFetcher) Fetch(_ context.Context, ticker string) (quote.Snapshot, error) {
	f.mu.Lock()
	f.calls[ticker]++
	f.mu.Unlock()
	if err := f.errs[ticker]; err != nil {
		return quote.Snapshot{}, err
	}
	s, ok := f.snaps[ticker]
	if !ok {
		return quote.Snapshot{}, quote.ErrNotFound
	}
	return s, nil
}

func (f *fakeFetcher) Source() string { return "fake" }

func (f *fakeFetcher) CacheSize() int { return len(f.snaps) }

func (f *fakeFetcher) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func newTestService(t *testing.T, f Fetcher) *Service {
	t.Helper()
	return NewService(catalog.Default(), f, zerolog.Nop())
}

func TestLookup_UnknownTicker_NoFetchAttempted(t *testing.T) {
	f := newFakeFetcher()
	svc := newTestService(t, f)

	_, err := svc.Lookup(context.Background(), "ZZZZ")
	require.ErrorIs(t, err, catalog.ErrNotFound)
	require.Zero(t, f.totalCalls(), "catalog miss must not reach the provider")
}

func TestLookup_NormalizesTicker(t *testing.T) {
	f := newFakeFetcher()
	f.set("META", 600, 500, 20)
	svc := newTestService(t, f)

	rec, err := svc.Lookup(context.Background(), "meta")
	require.NoError(t, err)
	require.Equal(t, "META", rec.Ticker)
	require.Equal(t, "Meta Platforms", rec.Name)
}

func TestLookup_FetchFailureSurfaced(t *testing.T) {
	f := newFakeFetcher()
	f.errs["META"] = quote.ErrProvider
	svc := newTestService(t, f)

	_, err := svc.Lookup(context.Background(), "META")
	require.ErrorIs(t, err, quote.ErrProvider)
}

func TestAllCompanies_CatalogOrderAndSkips(t *testing.T) {
	f := newFakeFetcher()
	for _, m := range catalog.Default().All() {
		f.set(m.Ticker, 100, 100, 1)
	}
	f.errs["NVDA"] = quote.ErrProvider
	svc := newTestService(t, f)

	out := svc.AllCompanies(context.Background())

	require.Len(t, out.Companies, catalog.Default().Len()-1)
	require.Equal(t, []string{"NVDA"}, out.Skipped)

	want := make([]string, 0)
	for _, m := range catalog.Default().All() {
		if m.Ticker != "NVDA" {
			want = append(want, m.Ticker)
		}
	}
	got := make([]string, 0, len(out.Companies))
	for _, r := range out.Companies {
		got = append(got, r.Ticker)
	}
	require.Equal(t, want, got, "result must follow catalog order")
}

func TestTopPerformers_FlagshipsOnly_SortedByYTDDesc(t *testing.T) {
	f := newFakeFetcher()
	f.set("META", 100, 100, 5)
	f.set("NVDA", 100, 100, 42)
	f.set("TSLA", 100, 100, 99) // not flagship, must not appear
	f.set("PLTR", 100, 100, -3)
	f.set("NFLX", 100, 100, 12)
	f.set("HOOD", 100, 100, 42) // tie with NVDA, catalog order preserved
	f.set("COIN", 100, 100, 0)
	f.set("AVGO", 100, 100, 7)
	svc := newTestService(t, f)

	out := svc.TopPerformers(context.Background())

	require.Empty(t, out.Skipped)
	got := make([]string, 0, len(out.Performers))
	for _, p := range out.Performers {
		got = append(got, p.Ticker)
	}
	require.Equal(t, []string{"NVDA", "HOOD", "NFLX", "AVGO", "META", "COIN", "PLTR"}, got)
	require.NotContains(t, got, "TSLA")

	for i := 1; i < len(out.Performers); i++ {
		require.GreaterOrEqual(t, out.Performers[i-1].YTDReturnPct, out.Performers[i].YTDReturnPct)
	}
}

func TestContrarianSignals_Partition(t *testing.T) {
	f := newFakeFetcher()
	for _, m := range catalog.Default().All() {
		f.set(m.Ticker, 100, 100, 1)
	}
	f.errs["HOOD"] = quote.ErrProvider
	svc := newTestService(t, f)

	out := svc.ContrarianSignals(context.Background())

	buys := tickersOf(out.BuySignals)
	avoids := tickersOf(out.AvoidSignals)

	// The commentator's sells become buy signals, their buys become avoids.
	require.Equal(t, []string{"META", "NVDA", "TSLA", "PLTR"}, buys)
	require.Equal(t, []string{"NFLX", "COIN"}, avoids)

	// Never-called companies appear in neither list, and are not fetched.
	require.NotContains(t, buys, "AVGO")
	require.NotContains(t, avoids, "AVGO")
	require.Zero(t, f.calls["AVGO"])

	// A failed fetch drops the entry entirely.
	require.Equal(t, []string{"HOOD"}, out.Skipped)
	require.NotContains(t, buys, "HOOD")
}

func TestContrarianScenario_Meta(t *testing.T) {
	f := newFakeFetcher()
	f.set("META", 600, 500, 30)
	svc := NewService(catalog.New([]catalog.CompanyMeta{{
		Ticker:                    "META",
		Name:                      "Meta Platforms",
		Founder:                   "Mark Zuckerberg",
		CommentatorRecommendation: catalog.RecommendationSell,
		IsFlagship:                true,
	}}), f, zerolog.Nop())

	rec, err := svc.Lookup(context.Background(), "META")
	require.NoError(t, err)

	sig := Recommend(rec.CurrentPrice, rec.MovingAvg200Day)
	require.Equal(t, ActionSell, sig.Action)
	require.Equal(t, 20.00, sig.PercentAboveMA)

	out := svc.ContrarianSignals(context.Background())
	require.Equal(t, []string{"META"}, tickersOf(out.BuySignals))
	require.Empty(t, out.AvoidSignals)
}

func TestHealth(t *testing.T) {
	f := newFakeFetcher()
	f.set("META", 1, 1, 1)
	svc := newTestService(t, f)

	h := svc.Health()
	require.Equal(t, "healthy", h.Status)
	require.Equal(t, "fake", h.DataSource)
	require.Equal(t, 1, h.CacheSize)
	_, err := time.Parse(time.RFC3339, h.Timestamp)
	require.NoError(t, err)
}

func tickersOf(entries []ContrarianEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Ticker)
	}
	return out
}

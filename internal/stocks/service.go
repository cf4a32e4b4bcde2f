package stocks

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"founderfolio/internal/catalog"
	"founderfolio/internal/quote"
)

// Fetcher yields a snapshot for a ticker, from cache or live.
type Fetcher interface {
	Fetch(ctx context.Context, ticker string) (quote.Snapshot, error)
	Source() string
	CacheSize() int
}

// CompanyList is the all-companies view. Entries whose fetch failed are
// omitted from Companies and reported in Skipped so partial failure stays
// observable.
type CompanyList struct {
	Companies []StockRecord `json:"companies"`
	Skipped   []string      `json:"skipped,omitempty"`
}

// TopPerformer is one row of the flagship ranking.
type TopPerformer struct {
	Ticker                string         `json:"ticker"`
	Name                  string         `json:"name"`
	Founder               string         `json:"founder"`
	CurrentPrice          float64        `json:"current_price"`
	MovingAvg200Day       float64        `json:"moving_average_200d"`
	YTDReturnPct          float64        `json:"ytd_return_percent"`
	Recommendation        Recommendation `json:"recommendation"`
	NetworkEffectsRank    int            `json:"network_effects_rank"`
	FounderLeadershipRank int            `json:"founder_leadership_rank"`
}

// TopPerformersResult ranks the flagship set by year-to-date return.
type TopPerformersResult struct {
	Performers []TopPerformer `json:"performers"`
	Skipped    []string       `json:"skipped,omitempty"`
}

// ContrarianEntry is one row of the contrarian-signal split.
type ContrarianEntry struct {
	Ticker             string  `json:"ticker"`
	Name               string  `json:"name"`
	Founder            string  `json:"founder"`
	CommentatorDate    string  `json:"commentator_date"`
	CurrentPrice       float64 `json:"current_price"`
	YTDReturnPct       float64 `json:"ytd_return_percent"`
	NetworkEffectsRank int     `json:"network_effects_rank"`
}

// ContrarianResult splits the catalog by acting opposite to the
// commentator's calls: their sells become buy signals and vice versa.
// Companies the commentator never called appear in neither list.
type ContrarianResult struct {
	BuySignals   []ContrarianEntry `json:"buy_signals"`
	AvoidSignals []ContrarianEntry `json:"avoid_signals"`
	Skipped      []string          `json:"skipped,omitempty"`
}

// Health is the diagnostic view.
type Health struct {
	Status     string `json:"status"`
	Timestamp  string `json:"timestamp"`
	CacheSize  int    `json:"cache_size"`
	DataSource string `json:"data_source"`
}

// Service exposes the read-only aggregator views over the catalog.
type Service struct {
	catalog *catalog.Catalog
	fetcher Fetcher
	log     zerolog.Logger
	now     func() time.Time
}

func NewService(cat *catalog.Catalog, f Fetcher, log zerolog.Logger) *Service {
	return &Service{catalog: cat, fetcher: f, log: log, now: time.Now}
}

// AllCompanies enriches every catalog entry in catalog order. Individual
// fetch failures are skipped, logged and counted, never surfaced as errors.
func (s *Service) AllCompanies(ctx context.Context) CompanyList {
	out := CompanyList{Companies: make([]StockRecord, 0, s.catalog.Len())}
	for _, meta := range s.catalog.All() {
		snap, err := s.fetcher.Fetch(ctx, meta.Ticker)
		if err != nil {
			s.skip(&out.Skipped, meta.Ticker, err)
			continue
		}
		out.Companies = append(out.Companies, Combine(meta, snap, s.now()))
	}
	return out
}

// TopPerformers ranks the flagship subset by year-to-date return,
// descending. Ties keep catalog order.
func (s *Service) TopPerformers(ctx context.Context) TopPerformersResult {
	flagships := s.catalog.Flagships()
	out := TopPerformersResult{Performers: make([]TopPerformer, 0, len(flagships))}
	for _, meta := range flagships {
		snap, err := s.fetcher.Fetch(ctx, meta.Ticker)
		if err != nil {
			s.skip(&out.Skipped, meta.Ticker, err)
			continue
		}
		rec := Combine(meta, snap, s.now())
		out.Performers = append(out.Performers, TopPerformer{
			Ticker:                rec.Ticker,
			Name:                  rec.Name,
			Founder:               rec.Founder,
			CurrentPrice:          rec.CurrentPrice,
			MovingAvg200Day:       rec.MovingAvg200Day,
			YTDReturnPct:          rec.YTDReturnPct,
			Recommendation:        Recommend(rec.CurrentPrice, rec.MovingAvg200Day),
			NetworkEffectsRank:    rec.NetworkEffectsRank,
			FounderLeadershipRank: rec.FounderLeadershipRank,
		})
	}
	sort.SliceStable(out.Performers, func(i, j int) bool {
		return out.Performers[i].YTDReturnPct > out.Performers[j].YTDReturnPct
	})
	return out
}

// ContrarianSignals partitions called companies into buy signals (the
// commentator said sell) and avoid signals (the commentator said buy).
// Uncalled companies are excluded before any fetch; a failed fetch drops the
// entry from both lists.
func (s *Service) ContrarianSignals(ctx context.Context) ContrarianResult {
	out := ContrarianResult{
		BuySignals:   []ContrarianEntry{},
		AvoidSignals: []ContrarianEntry{},
	}
	for _, meta := range s.catalog.All() {
		if meta.CommentatorRecommendation == catalog.RecommendationNone {
			continue
		}
		snap, err := s.fetcher.Fetch(ctx, meta.Ticker)
		if err != nil {
			s.skip(&out.Skipped, meta.Ticker, err)
			continue
		}
		rec := Combine(meta, snap, s.now())
		entry := ContrarianEntry{
			Ticker:             rec.Ticker,
			Name:               rec.Name,
			Founder:            rec.Founder,
			CommentatorDate:    rec.CommentatorDate,
			CurrentPrice:       rec.CurrentPrice,
			YTDReturnPct:       rec.YTDReturnPct,
			NetworkEffectsRank: rec.NetworkEffectsRank,
		}
		switch meta.CommentatorRecommendation {
		case catalog.RecommendationSell:
			out.BuySignals = append(out.BuySignals, entry)
		case catalog.RecommendationBuy:
			out.AvoidSignals = append(out.AvoidSignals, entry)
		}
	}
	return out
}

// Lookup enriches a single company. A ticker outside the catalog returns
// catalog.ErrNotFound without touching the provider; a fetch failure is
// surfaced to the caller, unlike in the list views.
func (s *Service) Lookup(ctx context.Context, ticker string) (StockRecord, error) {
	meta, err := s.catalog.Get(ticker)
	if err != nil {
		return StockRecord{}, err
	}
	snap, err := s.fetcher.Fetch(ctx, meta.Ticker)
	if err != nil {
		return StockRecord{}, err
	}
	return Combine(meta, snap, s.now()), nil
}

// Health reports service status and cache diagnostics.
func (s *Service) Health() Health {
	return Health{
		Status:     "healthy",
		Timestamp:  s.now().Format(time.RFC3339),
		CacheSize:  s.fetcher.CacheSize(),
		DataSource: s.fetcher.Source(),
	}
}

func (s *Service) skip(skipped *[]string, ticker string, err error) {
	s.log.Warn().Str("ticker", ticker).Err(err).Msg("skipping company, quote fetch failed")
	*skipped = append(*skipped, ticker)
}

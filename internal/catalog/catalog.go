package catalog

import (
	"errors"
	"strings"
)

// Recommendation is a public commentator's historical call on a ticker.
type Recommendation string

const (
	RecommendationBuy  Recommendation = "buy"
	RecommendationSell Recommendation = "sell"
	RecommendationNone Recommendation = ""
)

// ErrNotFound means the ticker is not part of the curated catalog.
var ErrNotFound = errors.New("catalog: ticker not found")

// CompanyMeta is the static metadata for one founder-led company.
// Loaded once at startup and never mutated.
type CompanyMeta struct {
	Ticker                    string         `json:"ticker"`
	Name                      string         `json:"name"`
	Founder                   string         `json:"founder"`
	Sector                    string         `json:"sector"`
	FoundedYear               int            `json:"founded_year"`
	IPOYear                   int            `json:"ipo_year"`
	NetworkEffectsRank        int            `json:"network_effects_rank"`
	FounderLeadershipRank     int            `json:"founder_leadership_rank"`
	CommentatorRecommendation Recommendation `json:"commentator_recommendation,omitempty"`
	CommentatorDate           string         `json:"commentator_date,omitempty"`
	IsFlagship                bool           `json:"is_flagship"`
}

// Catalog is an immutable, ticker-keyed company list. Iteration order is the
// order companies were given in.
type Catalog struct {
	companies []CompanyMeta
	byTicker  map[string]CompanyMeta
}

// New builds a catalog from the given companies. Tickers are uppercased;
// a duplicate ticker keeps the first occurrence.
func New(companies []CompanyMeta) *Catalog {
	c := &Catalog{
		companies: make([]CompanyMeta, 0, len(companies)),
		byTicker:  make(map[string]CompanyMeta, len(companies)),
	}
	for _, m := range companies {
		m.Ticker = strings.ToUpper(m.Ticker)
		if _, ok := c.byTicker[m.Ticker]; ok {
			continue
		}
		c.byTicker[m.Ticker] = m
		c.companies = append(c.companies, m)
	}
	return c
}

// All returns every company in catalog order.
func (c *Catalog) All() []CompanyMeta {
	out := make([]CompanyMeta, len(c.companies))
	copy(out, c.companies)
	return out
}

// Flagships returns the flagship subset in catalog order.
func (c *Catalog) Flagships() []CompanyMeta {
	out := make([]CompanyMeta, 0, len(c.companies))
	for _, m := range c.companies {
		if m.IsFlagship {
			out = append(out, m)
		}
	}
	return out
}

// Get looks a company up by ticker, case-insensitively.
func (c *Catalog) Get(ticker string) (CompanyMeta, error) {
	m, ok := c.byTicker[strings.ToUpper(ticker)]
	if !ok {
		return CompanyMeta{}, ErrNotFound
	}
	return m, nil
}

// Len is the number of companies in the catalog.
func (c *Catalog) Len() int { return len(c.companies) }

// Default is the curated founder-led list the service ships with.
func Default() *Catalog {
	return New([]CompanyMeta{
		{Ticker: "META", Name: "Meta Platforms", Founder: "Mark Zuckerberg", Sector: "Information Technology", FoundedYear: 2004, IPOYear: 2012, NetworkEffectsRank: 10, FounderLeadershipRank: 10, CommentatorRecommendation: RecommendationSell, CommentatorDate: "2022-10-25", IsFlagship: true},
		{Ticker: "NVDA", Name: "Nvidia", Founder: "Jensen Huang", Sector: "Information Technology", FoundedYear: 1993, IPOYear: 1999, NetworkEffectsRank: 8, FounderLeadershipRank: 10, CommentatorRecommendation: RecommendationSell, CommentatorDate: "2023-01-15", IsFlagship: true},
		{Ticker: "TSLA", Name: "Tesla", Founder: "Elon Musk", Sector: "Consumer Discretionary", FoundedYear: 2003, IPOYear: 2010, NetworkEffectsRank: 7, FounderLeadershipRank: 10, CommentatorRecommendation: RecommendationSell, CommentatorDate: "2023-04-20", IsFlagship: false},
		{Ticker: "PLTR", Name: "Palantir", Founder: "Peter Thiel", Sector: "Information Technology", FoundedYear: 2003, IPOYear: 2020, NetworkEffectsRank: 7, FounderLeadershipRank: 10, CommentatorRecommendation: RecommendationSell, CommentatorDate: "2024-01-08", IsFlagship: true},
		{Ticker: "NFLX", Name: "Netflix", Founder: "Reed Hastings", Sector: "Communication Services", FoundedYear: 1997, IPOYear: 2002, NetworkEffectsRank: 9, FounderLeadershipRank: 8, CommentatorRecommendation: RecommendationBuy, CommentatorDate: "2022-06-10", IsFlagship: true},
		{Ticker: "HOOD", Name: "Robinhood", Founder: "Vladimir Tenev", Sector: "Financials", FoundedYear: 2013, IPOYear: 2021, NetworkEffectsRank: 8, FounderLeadershipRank: 10, CommentatorRecommendation: RecommendationSell, CommentatorDate: "2021-08-15", IsFlagship: true},
		{Ticker: "COIN", Name: "Coinbase", Founder: "Brian Armstrong", Sector: "Financials", FoundedYear: 2012, IPOYear: 2021, NetworkEffectsRank: 8, FounderLeadershipRank: 10, CommentatorRecommendation: RecommendationBuy, CommentatorDate: "2022-05-20", IsFlagship: true},
		{Ticker: "AVGO", Name: "Broadcom", Founder: "Henry Samueli", Sector: "Information Technology", FoundedYear: 1991, IPOYear: 2009, NetworkEffectsRank: 6, FounderLeadershipRank: 8, IsFlagship: true},
	})
}

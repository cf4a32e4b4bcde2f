package stocks

import (
	"time"

	"founderfolio/internal/catalog"
	"founderfolio/internal/quote"
)

// StockRecord is the per-request union of a catalog entry and its quote
// snapshot. It is assembled fresh for every call and never cached.
type StockRecord struct {
	Ticker                    string                  `json:"ticker"`
	Name                      string                  `json:"name"`
	Founder                   string                  `json:"founder"`
	Sector                    string                  `json:"sector"`
	FoundedYear               int                     `json:"founded_year"`
	IPOYear                   int                     `json:"ipo_year"`
	NetworkEffectsRank        int                     `json:"network_effects_rank"`
	FounderLeadershipRank     int                     `json:"founder_leadership_rank"`
	CurrentPrice              float64                 `json:"current_price"`
	MarketCap                 float64                 `json:"market_cap"`
	PERatio                   *float64                `json:"pe_ratio"`
	YTDReturnPct              float64                 `json:"ytd_return_percent"`
	MovingAvg200Day           float64                 `json:"moving_average_200d"`
	MABasis                   string                  `json:"ma_basis"`
	Volume                    int64                   `json:"volume"`
	CommentatorRecommendation catalog.Recommendation  `json:"commentator_recommendation,omitempty"`
	CommentatorDate           string                  `json:"commentator_date,omitempty"`
	IsFlagship                bool                    `json:"is_flagship"`
	LastUpdated               string                  `json:"last_updated"`
}

// Combine merges catalog metadata with a quote snapshot. Pure and total:
// metadata is copied verbatim, price and percent fields are rounded to two
// decimals, and last_updated is stamped from now in RFC 3339 form.
func Combine(meta catalog.CompanyMeta, snap quote.Snapshot, now time.Time) StockRecord {
	var pe *float64
	if snap.PERatio != nil {
		v := round2(*snap.PERatio)
		pe = &v
	}
	return StockRecord{
		Ticker:                    meta.Ticker,
		Name:                      meta.Name,
		Founder:                   meta.Founder,
		Sector:                    meta.Sector,
		FoundedYear:               meta.FoundedYear,
		IPOYear:                   meta.IPOYear,
		NetworkEffectsRank:        meta.NetworkEffectsRank,
		FounderLeadershipRank:     meta.FounderLeadershipRank,
		CurrentPrice:              round2(snap.CurrentPrice),
		MarketCap:                 round2(snap.MarketCap),
		PERatio:                   pe,
		YTDReturnPct:              round2(snap.YTDReturnPct),
		MovingAvg200Day:           round2(snap.MovingAvg200Day),
		MABasis:                   snap.MABasis,
		Volume:                    snap.Volume,
		CommentatorRecommendation: meta.CommentatorRecommendation,
		CommentatorDate:           meta.CommentatorDate,
		IsFlagship:                meta.IsFlagship,
		LastUpdated:               now.Format(time.RFC3339),
	}
}

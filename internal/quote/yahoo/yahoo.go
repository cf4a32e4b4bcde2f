package yahoo

import (
	"context"
	"fmt"
	"time"

	yequity "github.com/piquette/finance-go/equity"

	"founderfolio/internal/quote"
)

// Provider serves snapshots from Yahoo Finance. The quote payload already
// carries the 200-day average, market cap and trailing P/E, so snapshots are
// tagged MABasisExact. It carries no year-to-date figure, so YTDReturnPct
// holds the regular-market daily change percent instead; the daily-series
// strategy is the one that measures a true YTD. The underlying library has
// no context support; the context is only checked before the call.
type Provider struct {
	now func() time.Time
}

func New() *Provider {
	return &Provider{now: time.Now}
}

func (p *Provider) Name() string { return "yahoo" }

func (p *Provider) Fetch(ctx context.Context, ticker string) (quote.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return quote.Snapshot{}, fmt.Errorf("%w: %v", quote.ErrProvider, err)
	}

	q, err := yequity.Get(ticker)
	if err != nil {
		return quote.Snapshot{}, fmt.Errorf("%w: %s: %v", quote.ErrProvider, ticker, err)
	}
	if q == nil || q.RegularMarketPrice <= 0 {
		return quote.Snapshot{}, fmt.Errorf("%w: %s", quote.ErrNotFound, ticker)
	}

	var pe *float64
	if q.TrailingPE > 0 {
		v := q.TrailingPE
		pe = &v
	}

	return quote.Snapshot{
		Ticker:          ticker,
		CurrentPrice:    q.RegularMarketPrice,
		MarketCap:       float64(q.MarketCap),
		PERatio:         pe,
		// Daily change percent; the payload has no YTD field.
		YTDReturnPct:    q.RegularMarketChangePercent,
		MovingAvg200Day: q.TwoHundredDayAverage,
		MABasis:         quote.MABasisExact,
		Volume:          int64(q.RegularMarketVolume),
		FetchedAt:       p.now(),
	}, nil
}

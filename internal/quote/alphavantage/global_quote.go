package alphavantage

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"founderfolio/internal/quote"
)

// The GLOBAL_QUOTE endpoint carries no fundamentals, so market cap is a
// fixed placeholder and the P/E ratio stays unset.
const placeholderMarketCap = 100.0

// GlobalQuote serves snapshots from the GLOBAL_QUOTE function: a single
// point-in-time quote per ticker. With no historical closes available, the
// 200-day moving average is approximated as 95% of the current price and the
// snapshot is tagged MABasisApproximate.
type GlobalQuote struct {
	client *Client
	now    func() time.Time
}

func NewGlobalQuote(c *Client) *GlobalQuote {
	return &GlobalQuote{client: c, now: time.Now}
}

func (p *GlobalQuote) Name() string { return "alphavantage-quote" }

func (p *GlobalQuote) Fetch(ctx context.Context, ticker string) (quote.Snapshot, error) {
	body, err := p.client.queryAPI(ctx, url.Values{
		"function": {"GLOBAL_QUOTE"},
		"symbol":   {ticker},
	})
	if err != nil {
		return quote.Snapshot{}, err
	}

	// Alpha Vantage keys carry numeric prefixes and dots ("05. price"),
	// hence the escaped gjson paths.
	g := gjson.GetBytes(body, `Global Quote`)
	if !g.Exists() || len(g.Map()) == 0 {
		return quote.Snapshot{}, fmt.Errorf("%w: %s", quote.ErrNotFound, ticker)
	}

	price := g.Get(`05\. price`).Float()
	if price <= 0 {
		return quote.Snapshot{}, fmt.Errorf("%w: %s: empty price", quote.ErrNotFound, ticker)
	}
	volume := g.Get(`06\. volume`).Int()
	changePct, err := parsePercent(g.Get(`10\. change percent`).String())
	if err != nil {
		return quote.Snapshot{}, fmt.Errorf("%w: %s: %v", quote.ErrNotFound, ticker, err)
	}

	return quote.Snapshot{
		Ticker:          ticker,
		CurrentPrice:    price,
		MarketCap:       placeholderMarketCap,
		PERatio:         nil,
		YTDReturnPct:    changePct,
		MovingAvg200Day: price * 0.95,
		MABasis:         quote.MABasisApproximate,
		Volume:          volume,
		FetchedAt:       p.now(),
	}, nil
}

// parsePercent parses values like "1.2345%" into 1.2345.
func parsePercent(s string) (float64, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "%")
	if s == "" {
		return 0, fmt.Errorf("empty percent field")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing percent %q: %v", s, err)
	}
	return v, nil
}

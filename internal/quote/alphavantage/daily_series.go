package alphavantage

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"time"

	"github.com/tidwall/gjson"

	"founderfolio/internal/quote"
)

const movingAvgWindow = 200

// DailySeries serves snapshots from the TIME_SERIES_DAILY function. It sees
// the full daily-close history, so the 200-day moving average is the real
// rolling mean and the year-to-date return is measured from the first
// trading day of the current calendar year. Snapshots are tagged
// MABasisExact.
type DailySeries struct {
	client *Client
	now    func() time.Time
}

func NewDailySeries(c *Client) *DailySeries {
	return &DailySeries{client: c, now: time.Now}
}

func (p *DailySeries) Name() string { return "alphavantage-daily" }

type dailyBar struct {
	date   string // YYYY-MM-DD, lexicographically ordered
	close  float64
	volume int64
}

func (p *DailySeries) Fetch(ctx context.Context, ticker string) (quote.Snapshot, error) {
	body, err := p.client.queryAPI(ctx, url.Values{
		"function":   {"TIME_SERIES_DAILY"},
		"symbol":     {ticker},
		"outputsize": {"full"},
	})
	if err != nil {
		return quote.Snapshot{}, err
	}

	series := gjson.GetBytes(body, `Time Series (Daily)`)
	if !series.Exists() {
		return quote.Snapshot{}, fmt.Errorf("%w: %s", quote.ErrNotFound, ticker)
	}

	bars := make([]dailyBar, 0, 256)
	series.ForEach(func(key, value gjson.Result) bool {
		bars = append(bars, dailyBar{
			date:   key.String(),
			close:  value.Get(`4\. close`).Float(),
			volume: value.Get(`5\. volume`).Int(),
		})
		return true
	})
	if len(bars) == 0 {
		return quote.Snapshot{}, fmt.Errorf("%w: %s: empty series", quote.ErrNotFound, ticker)
	}

	// Newest first.
	sort.Slice(bars, func(i, j int) bool { return bars[i].date > bars[j].date })

	latest := bars[0]
	if latest.close <= 0 {
		return quote.Snapshot{}, fmt.Errorf("%w: %s: empty close", quote.ErrNotFound, ticker)
	}

	return quote.Snapshot{
		Ticker:          ticker,
		CurrentPrice:    latest.close,
		MarketCap:       placeholderMarketCap,
		PERatio:         nil,
		YTDReturnPct:    ytdReturn(bars),
		MovingAvg200Day: rollingMean(bars, movingAvgWindow),
		MABasis:         quote.MABasisExact,
		Volume:          latest.volume,
		FetchedAt:       p.now(),
	}, nil
}

// rollingMean averages the most recent n closes; with fewer bars than n it
// averages what exists.
func rollingMean(bars []dailyBar, n int) float64 {
	if len(bars) < n {
		n = len(bars)
	}
	var sum float64
	for _, b := range bars[:n] {
		sum += b.close
	}
	return sum / float64(n)
}

// ytdReturn is the percent change from the first trading day of the latest
// bar's calendar year to the latest close. It is 0 when the series holds no
// earlier close for that year.
func ytdReturn(bars []dailyBar) float64 {
	if len(bars[0].date) < 4 {
		return 0
	}
	year := bars[0].date[:4]
	first := bars[0]
	for _, b := range bars {
		if len(b.date) >= 4 && b.date[:4] == year {
			first = b // bars are newest-first, so the last match is the earliest
		}
	}
	if first.close <= 0 || first.date == bars[0].date {
		return 0
	}
	return (bars[0].close - first.close) / first.close * 100
}

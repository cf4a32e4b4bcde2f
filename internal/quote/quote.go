package quote

import (
	"context"
	"errors"
	"time"
)

// MABasis values tag how a snapshot's 200-day moving average was produced.
// Providers that only see a point quote approximate the average; providers
// with historical closes compute the real rolling mean. The two must never
// be mixed within one deployment, so every snapshot carries its basis.
const (
	MABasisApproximate = "approximate"
	MABasisExact       = "exact"
)

// Snapshot is the normalized market data for a single ticker.
// Snapshots are replaced on refetch, never edited in place.
type Snapshot struct {
	Ticker          string    `json:"ticker"`
	CurrentPrice    float64   `json:"current_price"`
	MarketCap       float64   `json:"market_cap"`
	PERatio         *float64  `json:"pe_ratio"`
	YTDReturnPct    float64   `json:"ytd_return_percent"`
	MovingAvg200Day float64   `json:"moving_average_200d"`
	MABasis         string    `json:"ma_basis"`
	Volume          int64     `json:"volume"`
	FetchedAt       time.Time `json:"fetched_at"`
}

var (
	// ErrNotFound means the provider returned no usable data for the ticker.
	ErrNotFound = errors.New("quote: no data for ticker")
	// ErrProvider means the upstream call failed or its response was unparsable.
	ErrProvider = errors.New("quote: provider failure")
)

// Provider fetches a point-in-time snapshot for one ticker.
// Implementations convert every transport or parse fault into ErrProvider
// and every empty-but-successful response into ErrNotFound.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, ticker string) (Snapshot, error)
}

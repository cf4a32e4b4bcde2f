// Package source assembles the configured quote pipeline: one provider
// variant, rate limiting, the TTL cache and the coalescing fetcher.
package source

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"founderfolio/internal/config"
	"founderfolio/internal/httpx"
	"founderfolio/internal/quote"
	"founderfolio/internal/quote/alphavantage"
	"founderfolio/internal/quote/cache"
	"founderfolio/internal/quote/fetcher"
	"founderfolio/internal/quote/ratelimit"
	"founderfolio/internal/quote/yahoo"
)

// Build wires a Fetcher from config. Exactly one provider strategy is
// selected; approximate and exact moving-average sources never mix within
// one deployment.
func Build(cfg config.Config, log zerolog.Logger) (*fetcher.Fetcher, error) {
	p, err := buildProvider(cfg)
	if err != nil {
		return nil, err
	}

	if cfg.Provider.MaxRequestsPerMinute > 0 {
		p = ratelimit.NewLimiter(p, cfg.Provider.MaxRequestsPerMinute, cfg.Provider.Burst)
	} else if cfg.Provider.MinRequestIntervalSec > 0 {
		p = &ratelimit.MinInterval{P: p, Interval: time.Duration(cfg.Provider.MinRequestIntervalSec) * time.Second}
	}

	c := cache.New(time.Duration(cfg.Cache.TTLSeconds) * time.Second)
	return fetcher.New(p, c, fetcher.Config{
		RetryAttempts: cfg.Retry.Attempts,
		RetryBackoff:  time.Duration(cfg.Retry.BackoffMS) * time.Millisecond,
	}, log), nil
}

func buildProvider(cfg config.Config) (quote.Provider, error) {
	switch cfg.Provider.Source {
	case config.SourceAlphaVantageQuote, config.SourceAlphaVantageDaily:
		hc := httpx.New(time.Duration(cfg.Server.RequestTimeoutSec) * time.Second)
		opts := []alphavantage.ClientOption{
			alphavantage.WithHTTPClient(hc),
			alphavantage.WithHeader(http.Header{"User-Agent": []string{httpx.UserAgent}}),
		}
		if cfg.Provider.Endpoint != "" {
			opts = append(opts, alphavantage.WithBaseURL(cfg.Provider.Endpoint))
		}
		client, err := alphavantage.NewClient(cfg.Provider.APIKey, opts...)
		if err != nil {
			return nil, err
		}
		if cfg.Provider.Source == config.SourceAlphaVantageDaily {
			return alphavantage.NewDailySeries(client), nil
		}
		return alphavantage.NewGlobalQuote(client), nil
	case config.SourceYahoo:
		return yahoo.New(), nil
	default:
		return nil, fmt.Errorf("unknown quote source %q", cfg.Provider.Source)
	}
}

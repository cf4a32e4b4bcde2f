package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Provider source names selectable via config.
const (
	SourceAlphaVantageQuote = "alphavantage-quote"
	SourceAlphaVantageDaily = "alphavantage-daily"
	SourceYahoo             = "yahoo"
)

type Server struct {
	Port              string `json:"port"`
	RequestTimeoutSec int    `json:"request_timeout_sec"`
}

// Provider selects and tunes the single quote source for this deployment.
// Exactly one source is active at a time; the point-quote and
// historical-series strategies are never mixed.
type Provider struct {
	Source                string `json:"source"`
	APIKey                string `json:"api_key"`
	Endpoint              string `json:"endpoint"`
	MaxRequestsPerMinute  int    `json:"max_requests_per_minute"`
	Burst                 int    `json:"burst"`
	MinRequestIntervalSec int    `json:"min_request_interval_sec"`
}

type Cache struct {
	TTLSeconds int `json:"ttl_sec"`
}

type Retry struct {
	Attempts  int `json:"attempts"`
	BackoffMS int `json:"backoff_ms"`
}

type Log struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}

type Config struct {
	Server   Server   `json:"server"`
	Provider Provider `json:"provider"`
	Cache    Cache    `json:"cache"`
	Retry    Retry    `json:"retry"`
	Log      Log      `json:"log"`
}

func Default() Config {
	return Config{
		Server: Server{Port: "8000", RequestTimeoutSec: 10},
		Provider: Provider{
			Source: SourceAlphaVantageQuote,
			// Alpha Vantage free tier allows 5 calls per minute.
			MaxRequestsPerMinute: 5,
			Burst:                1,
		},
		Cache: Cache{TTLSeconds: 3600},
		Retry: Retry{Attempts: 1, BackoffMS: 2000},
		Log:   Log{Level: "info", Format: "json"},
	}
}

// Load reads JSON config from path. If path is empty or the file does not
// exist, it returns defaults. A .env file is loaded first when present, and
// environment variables override select fields for secrecy.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path == "" {
		if _, err := os.Stat("config.json"); err == nil {
			path = "config.json"
		}
	}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err == nil {
			if err := json.Unmarshal(b, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config: %w", err)
			}
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := os.Getenv("REQUEST_TIMEOUT_SEC"); v != "" {
		if x := atoi(v); x > 0 {
			cfg.Server.RequestTimeoutSec = x
		}
	}
	if v := os.Getenv("QUOTE_SOURCE"); v != "" {
		cfg.Provider.Source = v
	}
	if v := os.Getenv("ALPHAVANTAGE_API_KEY"); v != "" {
		cfg.Provider.APIKey = v
	}
	if v := os.Getenv("QUOTE_ENDPOINT"); v != "" {
		cfg.Provider.Endpoint = v
	}
	if v := os.Getenv("QUOTE_MAX_RPM"); v != "" {
		if x := atoi(v); x >= 0 {
			cfg.Provider.MaxRequestsPerMinute = x
		}
	}
	if v := os.Getenv("QUOTE_BURST"); v != "" {
		if x := atoi(v); x > 0 {
			cfg.Provider.Burst = x
		}
	}
	if v := os.Getenv("QUOTE_MIN_INTERVAL_SEC"); v != "" {
		if x := atoi(v); x >= 0 {
			cfg.Provider.MinRequestIntervalSec = x
		}
	}
	if v := os.Getenv("CACHE_TTL_SEC"); v != "" {
		if x := atoi(v); x >= 0 {
			cfg.Cache.TTLSeconds = x
		}
	}
	if v := os.Getenv("RETRY_ATTEMPTS"); v != "" {
		if x := atoi(v); x >= 0 {
			cfg.Retry.Attempts = x
		}
	}
	if v := os.Getenv("RETRY_BACKOFF_MS"); v != "" {
		if x := atoi(v); x >= 0 {
			cfg.Retry.BackoffMS = x
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}

func atoi(s string) int {
	var x int
	_, _ = fmt.Sscanf(s, "%d", &x)
	return x
}

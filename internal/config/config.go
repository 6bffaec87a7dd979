package config

import (
    "errors"
    "fmt"
    "os"
    "strings"
    "time"

    "github.com/robfig/cron/v3"
    "gopkg.in/yaml.v3"

    "trackit/internal/provider"
)

// DefaultPath is read when Load is given an empty path and the file exists.
const DefaultPath = "trackit.yaml"

type HTTP struct {
    TimeoutSec     int    `yaml:"timeout_sec"`
    Retries        int    `yaml:"retries"`
    RetryBackoffMs int    `yaml:"retry_backoff_ms"`
    UserAgent      string `yaml:"user_agent"`
}

type Crypto struct {
    APIKey       string `yaml:"api_key"`
    BaseURL      string `yaml:"base_url"`
    Quote        string `yaml:"quote"`
    HistoryLimit int    `yaml:"history_limit"`
}

type Equity struct {
    APIKey       string `yaml:"api_key"`
    BaseURL      string `yaml:"base_url"`
    HistoryLimit int    `yaml:"history_limit"`
}

type Catalog struct {
    // TTLSec bounds how long a loaded catalog is reused. 0 keeps it for the
    // whole session.
    TTLSec int `yaml:"ttl_sec"`
}

type Log struct {
    Level  string `yaml:"level"`
    Format string `yaml:"format"`
}

type Watch struct {
    Schedule string `yaml:"schedule"`
}

type Config struct {
    HTTP    HTTP    `yaml:"http"`
    Crypto  Crypto  `yaml:"crypto"`
    Equity  Equity  `yaml:"equity"`
    Catalog Catalog `yaml:"catalog"`
    Log     Log     `yaml:"log"`
    Watch   Watch   `yaml:"watch"`
}

func Default() Config {
    return Config{
        HTTP:   HTTP{TimeoutSec: 10, Retries: 0, RetryBackoffMs: 500, UserAgent: "trackit/1.0"},
        Crypto: Crypto{BaseURL: "https://min-api.cryptocompare.com", Quote: "USD", HistoryLimit: 6},
        Equity: Equity{BaseURL: "https://www.alphavantage.co", HistoryLimit: 7},
        Log:    Log{Level: "info", Format: "text"},
        Watch:  Watch{Schedule: "@every 1m"},
    }
}

// Load reads YAML config from path. If path is empty and DefaultPath does
// not exist, it returns defaults. Environment variables override the file.
func Load(path string) (Config, error) {
    cfg := Default()
    if path == "" {
        if _, err := os.Stat(DefaultPath); err == nil {
            path = DefaultPath
        }
    }
    if path != "" {
        b, err := os.ReadFile(path)
        if err != nil && !errors.Is(err, os.ErrNotExist) {
            return cfg, fmt.Errorf("%w: read config: %w", provider.ErrConfig, err)
        }
        if err == nil {
            if err := yaml.Unmarshal(b, &cfg); err != nil {
                return cfg, fmt.Errorf("%w: parse config: %w", provider.ErrConfig, err)
            }
        }
    }
    applyEnv(&cfg)
    return cfg, nil
}

func applyEnv(cfg *Config) {
    if v := firstEnv("CRYPTO_COMPARE_API_KEY", "NEXT_PUBLIC_CRYPTO_COMPARE_API_KEY"); v != "" { cfg.Crypto.APIKey = v }
    if v := firstEnv("ALPHAVANTAGE_API_KEY", "NEXT_PUBLIC_ALPHAVANTAGE_API_KEY"); v != "" { cfg.Equity.APIKey = v }
    if v := os.Getenv("CRYPTO_BASE_URL"); v != "" { cfg.Crypto.BaseURL = v }
    if v := os.Getenv("EQUITY_BASE_URL"); v != "" { cfg.Equity.BaseURL = v }
    if v := os.Getenv("REQUEST_TIMEOUT_SEC"); v != "" {
        var x int; fmt.Sscanf(v, "%d", &x); if x > 0 { cfg.HTTP.TimeoutSec = x }
    }
    if v := os.Getenv("HTTP_RETRIES"); v != "" {
        var x int; fmt.Sscanf(v, "%d", &x); if x >= 0 { cfg.HTTP.Retries = x }
    }
    if v := os.Getenv("CATALOG_TTL_SEC"); v != "" {
        var x int; fmt.Sscanf(v, "%d", &x); if x >= 0 { cfg.Catalog.TTLSec = x }
    }
    if v := os.Getenv("LOG_LEVEL"); v != "" { cfg.Log.Level = strings.ToLower(v) }
    if v := os.Getenv("LOG_FORMAT"); v != "" { cfg.Log.Format = strings.ToLower(v) }
    if v := os.Getenv("WATCH_SCHEDULE"); v != "" { cfg.Watch.Schedule = v }
}

// Validate checks values that would otherwise fail later in confusing ways.
// API keys are not required here; see RequireKey.
func (c Config) Validate() error {
    if c.HTTP.TimeoutSec <= 0 {
        return fmt.Errorf("%w: http.timeout_sec must be positive", provider.ErrConfig)
    }
    if c.HTTP.Retries < 0 {
        return fmt.Errorf("%w: http.retries must not be negative", provider.ErrConfig)
    }
    if c.Crypto.HistoryLimit <= 0 || c.Equity.HistoryLimit <= 0 {
        return fmt.Errorf("%w: history_limit must be positive", provider.ErrConfig)
    }
    switch c.Log.Format {
    case "text", "json":
    default:
        return fmt.Errorf("%w: log.format must be text or json, got %q", provider.ErrConfig, c.Log.Format)
    }
    if _, err := cron.ParseStandard(c.Watch.Schedule); err != nil {
        return fmt.Errorf("%w: watch.schedule: %w", provider.ErrConfig, err)
    }
    return nil
}

// RequireKey returns the API key for class, or a configuration error when
// it is not set.
func (c Config) RequireKey(class provider.AssetClass) (string, error) {
    switch class {
    case provider.Crypto:
        if c.Crypto.APIKey == "" {
            return "", fmt.Errorf("%w: CRYPTO_COMPARE_API_KEY is not set", provider.ErrConfig)
        }
        return c.Crypto.APIKey, nil
    case provider.Equity:
        if c.Equity.APIKey == "" {
            return "", fmt.Errorf("%w: ALPHAVANTAGE_API_KEY is not set", provider.ErrConfig)
        }
        return c.Equity.APIKey, nil
    }
    return "", fmt.Errorf("%w: unknown asset class %q", provider.ErrConfig, class)
}

func (c Config) Timeout() time.Duration { return time.Duration(c.HTTP.TimeoutSec) * time.Second }

func (c Config) RetryBackoff() time.Duration { return time.Duration(c.HTTP.RetryBackoffMs) * time.Millisecond }

func (c Config) CatalogTTL() time.Duration { return time.Duration(c.Catalog.TTLSec) * time.Second }

func firstEnv(keys ...string) string {
    for _, k := range keys {
        if v := os.Getenv(k); v != "" {
            return v
        }
    }
    return ""
}

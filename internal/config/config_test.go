package config

import (
    "os"
    "path/filepath"
    "testing"
    "time"

    "github.com/stretchr/testify/require"

    "trackit/internal/provider"
)

// Tests here use t.Setenv and therefore cannot run in parallel.

func clearEnv(t *testing.T) {
    t.Helper()
    for _, k := range []string{
        "CRYPTO_COMPARE_API_KEY", "NEXT_PUBLIC_CRYPTO_COMPARE_API_KEY",
        "ALPHAVANTAGE_API_KEY", "NEXT_PUBLIC_ALPHAVANTAGE_API_KEY",
        "CRYPTO_BASE_URL", "EQUITY_BASE_URL", "REQUEST_TIMEOUT_SEC", "HTTP_RETRIES",
        "CATALOG_TTL_SEC", "LOG_LEVEL", "LOG_FORMAT", "WATCH_SCHEDULE",
    } {
        t.Setenv(k, "")
    }
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
    clearEnv(t)

    cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

    require.NoError(t, err)
    require.Equal(t, Default(), cfg)
    require.NoError(t, cfg.Validate())
    require.Equal(t, 10*time.Second, cfg.Timeout())
    require.Equal(t, 500*time.Millisecond, cfg.RetryBackoff())
    require.Zero(t, cfg.CatalogTTL())
}

func TestLoad_FileThenEnv(t *testing.T) {
    clearEnv(t)

    // Arrange: a YAML file and an env override for one of its keys
    path := filepath.Join(t.TempDir(), "trackit.yaml")
    require.NoError(t, os.WriteFile(path, []byte(`
http:
  timeout_sec: 5
  retries: 2
crypto:
  api_key: from-file
  history_limit: 10
equity:
  api_key: equity-file
log:
  format: json
`), 0o600))
    t.Setenv("CRYPTO_COMPARE_API_KEY", "from-env")
    t.Setenv("NEXT_PUBLIC_ALPHAVANTAGE_API_KEY", "public-equity")
    t.Setenv("WATCH_SCHEDULE", "*/5 * * * *")

    // Act
    cfg, err := Load(path)

    // Assert: env wins over file, file wins over defaults
    require.NoError(t, err)
    require.Equal(t, 5, cfg.HTTP.TimeoutSec)
    require.Equal(t, 2, cfg.HTTP.Retries)
    require.Equal(t, "from-env", cfg.Crypto.APIKey)
    require.Equal(t, "public-equity", cfg.Equity.APIKey)
    require.Equal(t, 10, cfg.Crypto.HistoryLimit)
    require.Equal(t, "USD", cfg.Crypto.Quote)
    require.Equal(t, "json", cfg.Log.Format)
    require.Equal(t, "*/5 * * * *", cfg.Watch.Schedule)
    require.NoError(t, cfg.Validate())
}

func TestLoad_InvalidYAML(t *testing.T) {
    clearEnv(t)

    path := filepath.Join(t.TempDir(), "bad.yaml")
    require.NoError(t, os.WriteFile(path, []byte("http: [unclosed"), 0o600))

    _, err := Load(path)
    require.ErrorIs(t, err, provider.ErrConfig)
}

func TestValidate(t *testing.T) {
    tests := []struct {
        name   string
        mutate func(*Config)
    }{
        {name: "timeout", mutate: func(c *Config) { c.HTTP.TimeoutSec = 0 }},
        {name: "retries", mutate: func(c *Config) { c.HTTP.Retries = -1 }},
        {name: "history limit", mutate: func(c *Config) { c.Equity.HistoryLimit = 0 }},
        {name: "log format", mutate: func(c *Config) { c.Log.Format = "xml" }},
        {name: "schedule", mutate: func(c *Config) { c.Watch.Schedule = "every minute" }},
    }

    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            cfg := Default()
            tt.mutate(&cfg)
            require.ErrorIs(t, cfg.Validate(), provider.ErrConfig)
        })
    }
}

func TestRequireKey(t *testing.T) {
    cfg := Default()

    _, err := cfg.RequireKey(provider.Equity)
    require.ErrorIs(t, err, provider.ErrConfig)
    require.ErrorContains(t, err, "ALPHAVANTAGE_API_KEY")

    _, err = cfg.RequireKey(provider.Crypto)
    require.ErrorIs(t, err, provider.ErrConfig)

    cfg.Crypto.APIKey = "k"
    key, err := cfg.RequireKey(provider.Crypto)
    require.NoError(t, err)
    require.Equal(t, "k", key)

    _, err = cfg.RequireKey(provider.AssetClass("forex"))
    require.ErrorIs(t, err, provider.ErrConfig)
}

package main

import (
    "context"
    "encoding/json"
    "errors"
    "flag"
    "fmt"
    "log/slog"
    "os"
    "os/signal"
    "syscall"

    "github.com/joho/godotenv"
    "github.com/robfig/cron/v3"

    "trackit/internal/config"
    "trackit/internal/httpx"
    "trackit/internal/logger"
    "trackit/internal/pipeline"
    "trackit/internal/provider"
    "trackit/internal/provider/alphavantage"
    "trackit/internal/provider/cache"
    "trackit/internal/provider/cryptoadapter"
    "trackit/internal/provider/cryptocompare"
    "trackit/internal/render"
)

func main() {
    var class string
    var query string
    var symbol string
    var watch bool
    var asJSON bool
    var verbose bool
    var configPath string
    var envFile string

    flag.StringVar(&class, "class", "crypto", "asset class: crypto or equity")
    flag.StringVar(&query, "query", "", "search the catalog and list up to 10 matches")
    flag.StringVar(&symbol, "symbol", "", "symbol to fetch and display")
    flag.BoolVar(&watch, "watch", false, "refresh the symbol on the configured watch.schedule")
    flag.BoolVar(&asJSON, "json", false, "print state and view-models as JSON")
    flag.BoolVar(&verbose, "verbose", false, "show error details")
    flag.StringVar(&configPath, "config", os.Getenv("CONFIG_FILE"), "path to a YAML config file (optional)")
    flag.StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
    flag.Parse()

    if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
        fatal("env file", err)
    }
    cfg, err := config.Load(configPath)
    if err != nil { fatal("config", err) }
    if err := cfg.Validate(); err != nil { fatal("config", err) }
    logger.Init(cfg.Log.Level, cfg.Log.Format)

    if query == "" && symbol == "" {
        fmt.Fprintln(os.Stderr, "nothing to do: pass -query and/or -symbol")
        flag.Usage()
        os.Exit(2)
    }

    httpClient := httpx.New(cfg.Timeout())
    httpClient.UserAgent = cfg.HTTP.UserAgent
    httpClient.Retries = cfg.HTTP.Retries
    httpClient.Backoff = cfg.RetryBackoff()

    views, err := buildViews(cfg, provider.AssetClass(class), httpClient, slog.Default())
    if err != nil { fatal(class, err) }
    dash := pipeline.NewDashboard(views...)
    v, ok := dash.Activate(provider.AssetClass(class))
    if !ok {
        fatal("class", fmt.Errorf("%w: unknown asset class %q", provider.ErrConfig, class))
    }

    ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
    defer stop()

    if query != "" {
        candidates := v.Query(ctx, query)
        if asJSON {
            printJSON(candidates)
        } else {
            fmt.Println(render.Candidates(candidates))
        }
    }
    if symbol == "" {
        return
    }

    show := func() {
        v.Select(ctx, symbol)
        v.Wait()
        state := v.State()
        series, metrics := v.Projection()
        if asJSON {
            printJSON(struct {
                State   pipeline.QueryState `json:"state"`
                Series  any                 `json:"series"`
                Metrics any                 `json:"metrics"`
            }{state, series, metrics})
            return
        }
        fmt.Println(render.State(v.Class(), state, series, metrics, verbose))
    }

    show()
    if !watch {
        if v.State().Err != nil { os.Exit(1) }
        return
    }

    c := cron.New()
    if _, err := c.AddFunc(cfg.Watch.Schedule, show); err != nil {
        fatal("watch", err)
    }
    c.Start()
    slog.Info("watching", "symbol", symbol, "schedule", cfg.Watch.Schedule)
    <-ctx.Done()
    <-c.Stop().Done()
    v.Wait()
}

// buildViews creates a view for every asset class whose key is configured.
// A missing key for the requested class is an error; for the other class it
// is logged and that view is left out.
func buildViews(cfg config.Config, requested provider.AssetClass, hc *httpx.Client, log *slog.Logger) ([]*pipeline.View, error) {
    views := make([]*pipeline.View, 0, 2)
    for _, c := range []provider.AssetClass{provider.Crypto, provider.Equity} {
        a, err := newAdapter(cfg, c, hc)
        if err != nil {
            if c == requested {
                return nil, err
            }
            log.Warn("asset class disabled", "asset_class", string(c), "kind", provider.KindOf(err).String(), "error", err)
            continue
        }
        catalog := &cache.Catalog{P: a, TTL: cfg.CatalogTTL(), Logger: log}
        views = append(views, pipeline.New(a, catalog, log))
    }
    return views, nil
}

func newAdapter(cfg config.Config, class provider.AssetClass, hc *httpx.Client) (provider.Adapter, error) {
    key, err := cfg.RequireKey(class)
    if err != nil {
        return nil, err
    }
    switch class {
    case provider.Crypto:
        client, err := cryptocompare.NewCryptoCompareAPIClient(key,
            cryptocompare.WithBaseURL(cfg.Crypto.BaseURL),
            cryptocompare.WithHTTPClient(hc),
        )
        if err != nil {
            return nil, err
        }
        return cryptoadapter.New(cryptoadapter.Config{
            Quote:        cfg.Crypto.Quote,
            HistoryLimit: cfg.Crypto.HistoryLimit,
        }, client), nil
    case provider.Equity:
        client, err := alphavantage.NewAlphaVantageAPIClient(key,
            alphavantage.WithBaseURL(cfg.Equity.BaseURL),
            alphavantage.WithHTTPClient(hc),
        )
        if err != nil {
            return nil, err
        }
        return alphavantage.NewAdapter(alphavantage.Config{
            HistoryLimit: cfg.Equity.HistoryLimit,
        }, client), nil
    }
    return nil, fmt.Errorf("%w: unknown asset class %q", provider.ErrConfig, class)
}

func printJSON(v any) {
    b, _ := json.MarshalIndent(v, "", "  ")
    fmt.Println(string(b))
}

func fatal(what string, err error) {
    slog.Error(what, "kind", provider.KindOf(err).String(), "error", err)
    os.Exit(1)
}

package alphavantage

import (
    "context"
    "fmt"
    "strings"

    "trackit/internal/provider"
)

// API is the part of the Alpha Vantage client the adapter calls.
type API interface {
    TimeSeriesDaily(ctx context.Context, symbol string, opts ...AlphaVantageAPIClientOption) (*DailySeries, error)
    ListingStatus(ctx context.Context, opts ...AlphaVantageAPIClientOption) ([]provider.CatalogEntry, error)
}

type Config struct {
    Name         string // display name, default: AlphaVantage
    HistoryLimit int    // daily points kept, default: 7
}

// Adapter serves the equity asset class from Alpha Vantage. One daily
// series request feeds both the history and the snapshot.
type Adapter struct {
    cfg    Config
    client API
}

func NewAdapter(cfg Config, client API) *Adapter {
    if cfg.Name == "" { cfg.Name = "AlphaVantage" }
    if cfg.HistoryLimit <= 0 { cfg.HistoryLimit = 7 }
    return &Adapter{cfg: cfg, client: client}
}

func (a *Adapter) Name() string { return a.cfg.Name }

func (a *Adapter) Class() provider.AssetClass { return provider.Equity }

func (a *Adapter) Catalog(ctx context.Context) ([]provider.CatalogEntry, error) {
    return a.client.ListingStatus(ctx)
}

func (a *Adapter) Fetch(ctx context.Context, symbol string) (provider.Record, error) {
    sym := strings.ToUpper(strings.TrimSpace(symbol))
    if sym == "" {
        return provider.Record{}, fmt.Errorf("%w: empty symbol", provider.ErrUpstreamFormat)
    }
    series, err := a.client.TimeSeriesDaily(ctx, sym)
    if err != nil {
        return provider.Record{}, err
    }
    history, err := NormalizeHistory(series, a.cfg.HistoryLimit)
    if err != nil {
        return provider.Record{}, err
    }
    snap, err := NormalizeSnapshot(history)
    if err != nil {
        return provider.Record{}, err
    }
    return provider.Record{History: history, Snapshot: snap}, nil
}

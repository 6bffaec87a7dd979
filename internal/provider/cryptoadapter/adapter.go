package cryptoadapter

import (
    "context"
    "fmt"
    "strings"

    "golang.org/x/sync/errgroup"

    "trackit/internal/provider"
    "trackit/internal/provider/cryptocompare"
)

// API is the part of the CryptoCompare client the adapter calls.
type API interface {
    HistoDay(ctx context.Context, fsym, tsym string, limit int, opts ...cryptocompare.CryptoCompareAPIClientOption) (*cryptocompare.HistoDayResponse, error)
    PriceMultiFull(ctx context.Context, fsyms, tsyms []string, opts ...cryptocompare.CryptoCompareAPIClientOption) (*cryptocompare.PriceMultiFullResponse, error)
    CoinList(ctx context.Context, opts ...cryptocompare.CryptoCompareAPIClientOption) (*cryptocompare.CoinListResponse, error)
}

type Config struct {
    Name         string // display name, default: CryptoCompare
    Quote        string // quote currency, default: USD
    HistoryLimit int    // daily points kept, default: 6
}

// Adapter serves the crypto asset class from CryptoCompare.
type Adapter struct {
    cfg    Config
    client API
}

func New(cfg Config, client API) *Adapter {
    if cfg.Name == "" { cfg.Name = "CryptoCompare" }
    if cfg.Quote == "" { cfg.Quote = "USD" }
    if cfg.HistoryLimit <= 0 { cfg.HistoryLimit = 6 }
    return &Adapter{cfg: cfg, client: client}
}

func (a *Adapter) Name() string { return a.cfg.Name }

func (a *Adapter) Class() provider.AssetClass { return provider.Crypto }

// Catalog returns every listed coin in the order the provider sent them.
func (a *Adapter) Catalog(ctx context.Context) ([]provider.CatalogEntry, error) {
    res, err := a.client.CoinList(ctx)
    if err != nil {
        return nil, err
    }
    return cryptocompare.NormalizeCatalog(res), nil
}

// Fetch requests the daily history and the current quote concurrently and
// normalizes both. The first failure cancels the other request.
func (a *Adapter) Fetch(ctx context.Context, symbol string) (provider.Record, error) {
    sym := strings.ToUpper(strings.TrimSpace(symbol))
    if sym == "" {
        return provider.Record{}, fmt.Errorf("%w: empty symbol", provider.ErrUpstreamFormat)
    }

    var (
        hist  *cryptocompare.HistoDayResponse
        quote *cryptocompare.PriceMultiFullResponse
    )
    g, gctx := errgroup.WithContext(ctx)
    g.Go(func() error {
        var err error
        hist, err = a.client.HistoDay(gctx, sym, a.cfg.Quote, a.cfg.HistoryLimit)
        return err
    })
    g.Go(func() error {
        var err error
        quote, err = a.client.PriceMultiFull(gctx, []string{sym}, []string{a.cfg.Quote})
        return err
    })
    if err := g.Wait(); err != nil {
        return provider.Record{}, err
    }

    history, err := cryptocompare.NormalizeHistory(hist)
    if err != nil {
        return provider.Record{}, err
    }
    // histoday returns limit+1 bars; keep the most recent ones
    if len(history) > a.cfg.HistoryLimit {
        history = history[len(history)-a.cfg.HistoryLimit:]
    }

    snap, err := cryptocompare.NormalizeSnapshot(quote, sym, a.cfg.Quote)
    if err != nil {
        return provider.Record{}, err
    }
    return provider.Record{History: history, Snapshot: snap}, nil
}

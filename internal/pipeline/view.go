package pipeline

import (
    "context"
    "log/slog"
    "strings"
    "sync"

    "trackit/internal/provider"
    "trackit/internal/provider/cache"
    "trackit/internal/resolver"
    "trackit/internal/view"
)

// Catalog serves the symbol listing of one asset class.
type Catalog interface {
    Entries(ctx context.Context) ([]provider.CatalogEntry, error)
}

// View runs the resolve, fetch and project stages for one asset class.
//
// Every Select starts a new generation and cancels the previous fetch. A
// fetch result is applied only while its generation is still the current
// one, so a slow response for an earlier symbol never overwrites a later
// selection.
type View struct {
    adapter provider.Adapter
    catalog Catalog
    log     *slog.Logger

    mu       sync.Mutex
    state    QueryState
    gen      uint64
    querySeq uint64
    cancel   context.CancelFunc
    subs     []chan QueryState

    inflight sync.WaitGroup
}

// New returns a view over adapter. A nil catalog caches the adapter's own
// listing for the lifetime of the view. A nil logger uses slog.Default.
func New(adapter provider.Adapter, catalog Catalog, logger *slog.Logger) *View {
    if logger == nil {
        logger = slog.Default()
    }
    if catalog == nil {
        catalog = &cache.Catalog{P: adapter, Logger: logger}
    }
    return &View{
        adapter: adapter,
        catalog: catalog,
        log:     logger.With("asset_class", string(adapter.Class())),
    }
}

func (v *View) Class() provider.AssetClass { return v.adapter.Class() }

// Query resolves text against the catalog and stores the candidates. A
// catalog failure is logged and yields no candidates.
func (v *View) Query(ctx context.Context, text string) []provider.CatalogEntry {
    v.mu.Lock()
    v.querySeq++
    seq := v.querySeq
    v.mu.Unlock()

    var candidates []provider.CatalogEntry
    if strings.TrimSpace(text) != "" {
        entries, err := v.catalog.Entries(ctx)
        if err != nil {
            v.log.Warn("catalog unavailable", "query", text, "error", err)
        } else {
            candidates = resolver.Resolve(text, entries)
        }
    }

    v.mu.Lock()
    defer v.mu.Unlock()
    if seq != v.querySeq {
        return candidates
    }
    v.state.Query = text
    v.state.Candidates = candidates
    v.publishLocked()
    return candidates
}

// Select starts fetching symbol and returns the generation of the fetch.
// The state is reset to the new symbol with Loading set until the fetch
// completes.
func (v *View) Select(ctx context.Context, symbol string) uint64 {
    sym := strings.ToUpper(strings.TrimSpace(symbol))

    v.mu.Lock()
    defer v.mu.Unlock()

    v.gen++
    gen := v.gen
    if v.cancel != nil {
        v.cancel()
    }
    fctx, cancel := context.WithCancel(ctx)
    v.cancel = cancel

    v.state = QueryState{
        Query:      v.state.Query,
        Symbol:     sym,
        Loading:    true,
        Generation: gen,
    }
    v.publishLocked()

    v.inflight.Add(1)
    go v.fetch(fctx, cancel, gen, sym)
    v.log.Debug("fetch started", "symbol", sym, "generation", gen)
    return gen
}

func (v *View) fetch(ctx context.Context, cancel context.CancelFunc, gen uint64, sym string) {
    defer v.inflight.Done()
    defer cancel()

    rec, err := v.adapter.Fetch(ctx, sym)

    v.mu.Lock()
    defer v.mu.Unlock()
    if gen != v.gen {
        v.log.Debug("discarding stale result", "symbol", sym, "generation", gen, "current", v.gen)
        return
    }
    v.state.Loading = false
    if err != nil {
        v.state.History = nil
        v.state.Snapshot = nil
        v.state.Err = &Failure{
            Kind:    provider.KindOf(err),
            Message: v.adapter.Class().FailureMessage(),
            Detail:  err.Error(),
        }
        v.log.Warn("fetch failed", "symbol", sym, "generation", gen, "kind", v.state.Err.Kind.String(), "error", err)
    } else {
        snap := rec.Snapshot
        v.state.History = rec.History
        v.state.Snapshot = &snap
        v.state.Err = nil
        v.log.Debug("fetch applied", "symbol", sym, "generation", gen, "points", len(rec.History))
    }
    v.publishLocked()
}

// Wait blocks until every fetch started so far has finished.
func (v *View) Wait() { v.inflight.Wait() }

// State returns a copy of the current state. Slices are shared and must not
// be modified.
func (v *View) State() QueryState {
    v.mu.Lock()
    defer v.mu.Unlock()
    return v.state
}

// Projection returns the chart series and display metrics of the current
// state.
func (v *View) Projection() (view.ChartSeries, view.DisplayMetrics) {
    s := v.State()
    series, metrics := view.Project(s.History, s.Snapshot)
    if s.Symbol != "" {
        series.Label = v.adapter.Class().SeriesLabel(s.Symbol)
    }
    return series, metrics
}

// Subscribe returns a channel that receives the state after every applied
// change. Slow readers only see the latest state.
func (v *View) Subscribe() <-chan QueryState {
    ch := make(chan QueryState, 1)
    v.mu.Lock()
    v.subs = append(v.subs, ch)
    v.mu.Unlock()
    return ch
}

func (v *View) publishLocked() {
    s := v.state
    for _, ch := range v.subs {
        select {
        case ch <- s:
            continue
        default:
        }
        // replace the unread value
        select {
        case <-ch:
        default:
        }
        select {
        case ch <- s:
        default:
        }
    }
}

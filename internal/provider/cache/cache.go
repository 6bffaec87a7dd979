package cache

import (
    "context"
    "log/slog"
    "sync"
    "time"

    "golang.org/x/sync/singleflight"

    "trackit/internal/provider"
)

// Source lists the symbols of one asset class.
type Source interface {
    Name() string
    Catalog(ctx context.Context) ([]provider.CatalogEntry, error)
}

// Catalog loads the catalog of P on first use and serves it from memory
// afterwards. Concurrent first loads share one upstream call. A failed load
// is not remembered, so the next call tries again.
//
// With TTL <= 0 the catalog lives for the whole session.
type Catalog struct {
    P      Source
    TTL    time.Duration
    Logger *slog.Logger

    mu        sync.RWMutex
    entries   []provider.CatalogEntry
    loaded    bool
    expiresAt time.Time

    // coalesce concurrent loads
    sf  singleflight.Group
    now func() time.Time
}

func (c *Catalog) Name() string { return c.P.Name() }

// Entries returns the cached catalog, loading it if needed. The returned
// slice is shared and must not be modified.
//
// The shared load is detached from ctx so one caller giving up does not fail
// the others waiting on it; ctx still bounds how long this caller waits.
func (c *Catalog) Entries(ctx context.Context) ([]provider.CatalogEntry, error) {
    if entries, ok := c.cached(); ok {
        return entries, nil
    }

    loadCtx := context.WithoutCancel(ctx)
    ch := c.sf.DoChan("catalog", func() (any, error) {
        // another caller may have finished a load while we waited
        if entries, ok := c.cached(); ok {
            return entries, nil
        }
        started := c.clock()
        entries, err := c.P.Catalog(loadCtx)
        if err != nil {
            return nil, err
        }
        c.mu.Lock()
        c.entries = entries
        c.loaded = true
        if c.TTL > 0 {
            c.expiresAt = started.Add(c.TTL)
        }
        c.mu.Unlock()
        c.logger().Debug("catalog loaded", "source", c.P.Name(), "entries", len(entries), "took", time.Since(started))
        return entries, nil
    })
    select {
    case <-ctx.Done():
        return nil, ctx.Err()
    case r := <-ch:
        if r.Err != nil {
            c.logger().Warn("catalog load failed", "source", c.P.Name(), "shared", r.Shared, "error", r.Err)
            return nil, r.Err
        }
        return r.Val.([]provider.CatalogEntry), nil
    }
}

func (c *Catalog) cached() ([]provider.CatalogEntry, bool) {
    c.mu.RLock()
    defer c.mu.RUnlock()
    if !c.loaded {
        return nil, false
    }
    if c.TTL > 0 && !c.clock().Before(c.expiresAt) {
        return nil, false
    }
    return c.entries, true
}

func (c *Catalog) clock() time.Time {
    if c.now != nil {
        return c.now()
    }
    return time.Now()
}

func (c *Catalog) logger() *slog.Logger {
    if c.Logger != nil {
        return c.Logger
    }
    return slog.Default()
}

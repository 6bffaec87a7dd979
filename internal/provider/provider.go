package provider

import (
    "context"
    "fmt"
    "time"

    "github.com/shopspring/decimal"
)

// CatalogEntry is one known tradable symbol for an asset class.
type CatalogEntry struct {
    ID       string `json:"id"`
    Symbol   string `json:"symbol"`
    FullName string `json:"full_name"`
}

// PricePoint is one daily bar. Date is a calendar day at UTC midnight.
type PricePoint struct {
    Date   time.Time       `json:"date"`
    Open   decimal.Decimal `json:"open"`
    Close  decimal.Decimal `json:"close"`
    Volume decimal.Decimal `json:"volume"`
}

// Day returns the ISO calendar date of the point.
func (p PricePoint) Day() string { return p.Date.Format(time.DateOnly) }

// Snapshot is the most recent known price/volume state for a symbol.
// MarketCap is nil when the provider does not report one (equities).
type Snapshot struct {
    CurrentPrice decimal.Decimal  `json:"current_price"`
    OpenPrice    decimal.Decimal  `json:"open_price"`
    Volume       decimal.Decimal  `json:"volume"`
    MarketCap    *decimal.Decimal `json:"market_cap,omitempty"`
}

// Record is the normalized result of one market data fetch.
type Record struct {
    History  []PricePoint `json:"history"`
    Snapshot Snapshot     `json:"snapshot"`
}

// AssetClass names the market an adapter serves.
type AssetClass string

const (
    Crypto AssetClass = "crypto"
    Equity AssetClass = "equity"
)

// SeriesLabel is the chart dataset label for symbol.
func (c AssetClass) SeriesLabel(symbol string) string {
    if c == Crypto {
        return fmt.Sprintf("%s/USD Closing Price", symbol)
    }
    return fmt.Sprintf("%s Closing Price", symbol)
}

// FailureMessage is the user-facing text shown when a fetch fails.
func (c AssetClass) FailureMessage() string {
    if c == Crypto {
        return "Failed to fetch cryptocurrency data. Please try again."
    }
    return "Failed to fetch stock data. Please try again."
}

// Adapter is the capability set one asset class plugs into the pipeline.
// Catalog returns the full symbol listing; Fetch returns normalized history
// and snapshot for a single symbol.
type Adapter interface {
    Name() string
    Class() AssetClass
    Catalog(ctx context.Context) ([]CatalogEntry, error)
    Fetch(ctx context.Context, symbol string) (Record, error)
}

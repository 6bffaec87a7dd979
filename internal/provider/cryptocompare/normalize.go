package cryptocompare

import (
	"fmt"
	"strings"
	"time"

	"trackit/internal/provider"
)

// NormalizeHistory converts histoday entries into price points in provider
// (chronological) order. Volume is the quote-currency volume (volumeto).
func NormalizeHistory(res *HistoDayResponse) ([]provider.PricePoint, error) {
	if res == nil {
		return nil, fmt.Errorf("%w: empty histoday response", provider.ErrUpstreamFormat)
	}
	if err := res.err(); err != nil {
		return nil, err
	}
	if res.Data == nil || len(res.Data.Data) == 0 {
		return nil, fmt.Errorf("%w: no history data", provider.ErrUpstreamFormat)
	}

	out := make([]provider.PricePoint, 0, len(res.Data.Data))
	for i, e := range res.Data.Data {
		if e.Time <= 0 || e.Open == nil || e.Close == nil || e.VolumeTo == nil {
			return nil, fmt.Errorf("%w: histoday entry %d is missing time, open, close or volumeto", provider.ErrUpstreamFormat, i)
		}
		out = append(out, provider.PricePoint{
			Date:   calendarDay(e.Time),
			Open:   *e.Open,
			Close:  *e.Close,
			Volume: *e.VolumeTo,
		})
	}
	return out, nil
}

// NormalizeSnapshot flattens RAW[fsym][tsym] into a snapshot.
func NormalizeSnapshot(res *PriceMultiFullResponse, fsym, tsym string) (provider.Snapshot, error) {
	if res == nil {
		return provider.Snapshot{}, fmt.Errorf("%w: empty pricemultifull response", provider.ErrUpstreamFormat)
	}
	if err := res.err(); err != nil {
		return provider.Snapshot{}, err
	}
	quotes, ok := res.RAW[fsym]
	if !ok {
		return provider.Snapshot{}, fmt.Errorf("%w: no data for symbol %s", provider.ErrUpstreamFormat, fsym)
	}
	q, ok := quotes[tsym]
	if !ok {
		return provider.Snapshot{}, fmt.Errorf("%w: no %s quote for symbol %s", provider.ErrUpstreamFormat, tsym, fsym)
	}
	if q.Price == nil || q.OpenDay == nil || q.Volume24HourTo == nil {
		return provider.Snapshot{}, fmt.Errorf("%w: %s/%s quote is missing PRICE, OPENDAY or VOLUME24HOURTO", provider.ErrUpstreamFormat, fsym, tsym)
	}

	snap := provider.Snapshot{
		CurrentPrice: *q.Price,
		OpenPrice:    *q.OpenDay,
		Volume:       *q.Volume24HourTo,
	}
	if q.MktCap != nil {
		mc := *q.MktCap
		snap.MarketCap = &mc
	}
	return snap, nil
}

// NormalizeCatalog maps the coin list to catalog entries in provider order.
// Coins without a symbol cannot be fetched and are dropped.
func NormalizeCatalog(res *CoinListResponse) []provider.CatalogEntry {
	if res == nil {
		return nil
	}
	out := make([]provider.CatalogEntry, 0, len(res.Coins))
	for _, c := range res.Coins {
		sym := strings.TrimSpace(c.Symbol)
		if sym == "" {
			continue
		}
		name := c.FullName
		if name == "" {
			name = c.CoinName
		}
		out = append(out, provider.CatalogEntry{ID: c.ID, Symbol: sym, FullName: name})
	}
	return out
}

func calendarDay(unix int64) time.Time {
	t := time.Unix(unix, 0).UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

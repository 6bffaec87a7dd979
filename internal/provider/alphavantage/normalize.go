package alphavantage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"trackit/internal/provider"
)

// NormalizeHistory converts the first limit entries of the series into
// price points, keeping provider order. A limit <= 0 keeps every entry.
func NormalizeHistory(series *DailySeries, limit int) ([]provider.PricePoint, error) {
	if series == nil {
		return nil, fmt.Errorf("%w: empty daily series response", provider.ErrUpstreamFormat)
	}
	if err := series.err(); err != nil {
		return nil, err
	}

	entries := series.Entries
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	out := make([]provider.PricePoint, 0, len(entries))
	for _, e := range entries {
		p, err := parseEntry(e)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func parseEntry(e DailyEntry) (provider.PricePoint, error) {
	date, err := time.Parse(time.DateOnly, e.Date)
	if err != nil {
		return provider.PricePoint{}, fmt.Errorf("%w: date %q: %w", provider.ErrParse, e.Date, err)
	}
	open, err := decimal.NewFromString(e.Open)
	if err != nil {
		return provider.PricePoint{}, fmt.Errorf("%w: %s open %q: %w", provider.ErrParse, e.Date, e.Open, err)
	}
	closing, err := decimal.NewFromString(e.Close)
	if err != nil {
		return provider.PricePoint{}, fmt.Errorf("%w: %s close %q: %w", provider.ErrParse, e.Date, e.Close, err)
	}
	volume, err := strconv.ParseInt(e.Volume, 10, 64)
	if err != nil {
		return provider.PricePoint{}, fmt.Errorf("%w: %s volume %q: %w", provider.ErrParse, e.Date, e.Volume, err)
	}
	return provider.PricePoint{
		Date:   date,
		Open:   open,
		Close:  closing,
		Volume: decimal.NewFromInt(volume),
	}, nil
}

// NormalizeSnapshot derives the snapshot from the first (most recent) point
// of a provider-ordered history. Equities carry no market cap.
func NormalizeSnapshot(history []provider.PricePoint) (provider.Snapshot, error) {
	if len(history) == 0 {
		return provider.Snapshot{}, fmt.Errorf("%w: no data to derive a snapshot from", provider.ErrUpstreamFormat)
	}
	latest := history[0]
	return provider.Snapshot{
		CurrentPrice: latest.Close,
		OpenPrice:    latest.Open,
		Volume:       latest.Volume,
	}, nil
}

// ParseListing reads a LISTING_STATUS CSV. Columns are located by header
// name so extra or reordered columns are tolerated.
func ParseListing(r io.Reader) ([]provider.CatalogEntry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty listing", provider.ErrParse)
		}
		return nil, fmt.Errorf("%w: listing header: %w", provider.ErrParse, err)
	}
	symbolCol, nameCol := -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "symbol":
			symbolCol = i
		case "name":
			nameCol = i
		}
	}
	if symbolCol < 0 || nameCol < 0 {
		return nil, fmt.Errorf("%w: listing header %v lacks symbol or name", provider.ErrParse, header)
	}

	var out []provider.CatalogEntry
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: listing row: %w", provider.ErrParse, err)
		}
		if symbolCol >= len(rec) || nameCol >= len(rec) {
			continue
		}
		sym := strings.TrimSpace(rec[symbolCol])
		if sym == "" {
			continue
		}
		out = append(out, provider.CatalogEntry{ID: sym, Symbol: sym, FullName: strings.TrimSpace(rec[nameCol])})
	}
	return out, nil
}

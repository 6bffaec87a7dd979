package alphavantage

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"trackit/internal/orderedjson"
	"trackit/internal/provider"
)

// DailySeries is the payload of function=TIME_SERIES_DAILY. Entries keep
// the order of the "Time Series (Daily)" object, most recent first.
//
// The API reports failures with a 200 status and one of ErrorMessage, Note
// or Information set instead of the series.
type DailySeries struct {
	Symbol       string
	Entries      []DailyEntry
	ErrorMessage string
	Note         string
	Information  string
}

// DailyEntry is one day of the series. Values are kept as the provider's
// strings and parsed during normalization.
type DailyEntry struct {
	Date   string `json:"-"`
	Open   string `json:"1. open"`
	High   string `json:"2. high"`
	Low    string `json:"3. low"`
	Close  string `json:"4. close"`
	Volume string `json:"5. volume"`
}

// TimeSeriesDaily retrieves the compact daily series for symbol.
func (c *AlphaVantageAPIClient) TimeSeriesDaily(ctx context.Context, symbol string, opts ...AlphaVantageAPIClientOption) (*DailySeries, error) {
	params := url.Values{}
	params.Set("function", "TIME_SERIES_DAILY")
	params.Set("symbol", symbol)

	res, err := c.get(ctx, params, opts)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body := DailySeries{Symbol: symbol}
	dec := json.NewDecoder(res.Body)
	err = orderedjson.Object(dec, func(key string, dec *json.Decoder) error {
		switch key {
		case "Meta Data":
			var meta map[string]string
			if err := dec.Decode(&meta); err != nil {
				return err
			}
			if s := meta["2. Symbol"]; s != "" {
				body.Symbol = s
			}
			return nil
		case "Time Series (Daily)":
			return orderedjson.Object(dec, func(date string, dec *json.Decoder) error {
				var e DailyEntry
				if err := dec.Decode(&e); err != nil {
					return err
				}
				e.Date = date
				body.Entries = append(body.Entries, e)
				return nil
			})
		case "Error Message":
			return dec.Decode(&body.ErrorMessage)
		case "Note":
			return dec.Decode(&body.Note)
		case "Information":
			return dec.Decode(&body.Information)
		default:
			return orderedjson.Skip(dec)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("%w: decoding daily series response: %w", provider.ErrUpstreamFormat, err)
	}
	return &body, nil
}

func (s *DailySeries) err() error {
	for _, msg := range []string{s.ErrorMessage, s.Note, s.Information} {
		if msg != "" {
			return fmt.Errorf("%w: no data for symbol %s: %s", provider.ErrUpstreamFormat, s.Symbol, msg)
		}
	}
	if len(s.Entries) == 0 {
		return fmt.Errorf("%w: no data for symbol %s", provider.ErrUpstreamFormat, s.Symbol)
	}
	return nil
}

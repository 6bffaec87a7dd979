package cryptocompare

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"

	"trackit/internal/provider"
)

// HistoDayResponse is the payload of /data/v2/histoday.
type HistoDayResponse struct {
	envelope
	Data *HistoDayData `json:"Data"`
}

// HistoDayData wraps the daily entries. Data is nil when the provider
// answered with an empty object, which happens for unknown symbols.
type HistoDayData struct {
	TimeFrom int64           `json:"TimeFrom"`
	TimeTo   int64           `json:"TimeTo"`
	Data     []HistoDayEntry `json:"Data"`
}

// HistoDayEntry is one daily bar. Required fields are pointers so a missing
// field can be told apart from a zero value.
type HistoDayEntry struct {
	Time       int64            `json:"time"`
	High       *decimal.Decimal `json:"high"`
	Low        *decimal.Decimal `json:"low"`
	Open       *decimal.Decimal `json:"open"`
	Close      *decimal.Decimal `json:"close"`
	VolumeFrom *decimal.Decimal `json:"volumefrom"`
	VolumeTo   *decimal.Decimal `json:"volumeto"`
}

// HistoDay retrieves the last limit+1 daily bars of fsym quoted in tsym.
func (c *CryptoCompareAPIClient) HistoDay(ctx context.Context, fsym, tsym string, limit int, opts ...CryptoCompareAPIClientOption) (*HistoDayResponse, error) {
	params := url.Values{}
	params.Set("fsym", fsym)
	params.Set("tsym", tsym)
	params.Set("limit", strconv.Itoa(limit))

	res, err := c.get(ctx, "/data/v2/histoday", params, opts)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	var body HistoDayResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decoding histoday response: %w", provider.ErrUpstreamFormat, err)
	}
	return &body, nil
}

package cryptocompare

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"trackit/internal/provider"
)

// PriceMultiFullResponse is the payload of /data/pricemultifull.
// RAW is keyed by from-symbol, then by quote currency.
type PriceMultiFullResponse struct {
	envelope
	RAW map[string]map[string]RawQuote `json:"RAW"`
}

// RawQuote holds the fields of a RAW quote the pipeline reads.
type RawQuote struct {
	FromSymbol     string           `json:"FROMSYMBOL"`
	ToSymbol       string           `json:"TOSYMBOL"`
	Price          *decimal.Decimal `json:"PRICE"`
	OpenDay        *decimal.Decimal `json:"OPENDAY"`
	MktCap         *decimal.Decimal `json:"MKTCAP"`
	Volume24HourTo *decimal.Decimal `json:"VOLUME24HOURTO"`
	LastUpdate     int64            `json:"LASTUPDATE"`
}

// PriceMultiFull retrieves full quotes for every fsyms/tsyms pair.
func (c *CryptoCompareAPIClient) PriceMultiFull(ctx context.Context, fsyms, tsyms []string, opts ...CryptoCompareAPIClientOption) (*PriceMultiFullResponse, error) {
	params := url.Values{}
	params.Set("fsyms", strings.Join(fsyms, ","))
	params.Set("tsyms", strings.Join(tsyms, ","))

	res, err := c.get(ctx, "/data/pricemultifull", params, opts)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	var body PriceMultiFullResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decoding pricemultifull response: %w", provider.ErrUpstreamFormat, err)
	}
	return &body, nil
}

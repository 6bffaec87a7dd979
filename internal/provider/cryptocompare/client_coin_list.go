package cryptocompare

import (
	"context"
	"encoding/json"
	"fmt"

	"trackit/internal/orderedjson"
	"trackit/internal/provider"
)

// CoinListResponse is the payload of /data/all/coinlist with the Data
// object flattened into Coins, in the order the provider sent them.
type CoinListResponse struct {
	Response string
	Message  string
	Coins    []Coin
}

// Coin is one entry of the coin list.
type Coin struct {
	ID       string `json:"Id"`
	Symbol   string `json:"Symbol"`
	CoinName string `json:"CoinName"`
	FullName string `json:"FullName"`
}

// CoinList retrieves every coin the API knows about.
func (c *CryptoCompareAPIClient) CoinList(ctx context.Context, opts ...CryptoCompareAPIClientOption) (*CoinListResponse, error) {
	res, err := c.get(ctx, "/data/all/coinlist", nil, opts)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	var body CoinListResponse
	dec := json.NewDecoder(res.Body)
	err = orderedjson.Object(dec, func(key string, dec *json.Decoder) error {
		switch key {
		case "Response":
			return dec.Decode(&body.Response)
		case "Message":
			return dec.Decode(&body.Message)
		case "Data":
			return orderedjson.Object(dec, func(_ string, dec *json.Decoder) error {
				var coin Coin
				if err := dec.Decode(&coin); err != nil {
					return err
				}
				body.Coins = append(body.Coins, coin)
				return nil
			})
		default:
			return orderedjson.Skip(dec)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("%w: decoding coinlist response: %w", provider.ErrUpstreamFormat, err)
	}
	if body.Response == "Error" {
		return nil, envelope{Response: body.Response, Message: body.Message}.err()
	}
	return &body, nil
}

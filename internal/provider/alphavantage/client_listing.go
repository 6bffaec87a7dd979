package alphavantage

import (
	"context"
	"fmt"
	"net/url"

	"trackit/internal/provider"
)

// ListingStatus retrieves the active US listings as catalog entries, in
// the order of the CSV rows.
func (c *AlphaVantageAPIClient) ListingStatus(ctx context.Context, opts ...AlphaVantageAPIClientOption) ([]provider.CatalogEntry, error) {
	params := url.Values{}
	params.Set("function", "LISTING_STATUS")

	res, err := c.get(ctx, params, opts)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	entries, err := ParseListing(res.Body)
	if err != nil {
		return nil, fmt.Errorf("listing status: %w", err)
	}
	return entries, nil
}

package alphavantage

import (
	"context"
	"fmt"
	"io"
	"maps"
	"net/http"
	"net/url"

	"trackit/internal/provider"
)

const baseURL = "https://www.alphavantage.co"

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=alphavantage_test -destination=mock_http_client_test.go -source=client.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// AlphaVantageAPIClient is a client for the Alpha Vantage query API.
type AlphaVantageAPIClient struct {
	// baseURL is the base URL for the API.
	baseURL string
	// httpClient is the HTTP httpClient.
	httpClient HTTPClient
	// header contains additional headers to be sent with each request.
	header http.Header
	// query contains additional query parameters to be sent with each request.
	query url.Values
}

// AlphaVantageAPIClientOption is a configuration option for the Alpha Vantage API client.
type AlphaVantageAPIClientOption func(*AlphaVantageAPIClient)

// WithBaseURL sets the base URL for the API.
func WithBaseURL(baseURL string) AlphaVantageAPIClientOption {
	return func(c *AlphaVantageAPIClient) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithHTTPClient sets the HTTP client for the API.
func WithHTTPClient(httpClient HTTPClient) AlphaVantageAPIClientOption {
	return func(c *AlphaVantageAPIClient) {
		c.httpClient = httpClient
	}
}

// WithHeader sets additional headers to be sent with each request.
func WithHeader(header http.Header) AlphaVantageAPIClientOption {
	return func(c *AlphaVantageAPIClient) {
		for key, values := range header {
			for _, value := range values {
				c.header.Add(key, value)
			}
		}
	}
}

// NewAlphaVantageAPIClient creates a new Alpha Vantage API client. An empty
// key is a configuration error.
func NewAlphaVantageAPIClient(key string, options ...AlphaVantageAPIClientOption) (*AlphaVantageAPIClient, error) {
	if key == "" {
		return nil, fmt.Errorf("%w: ALPHAVANTAGE_API_KEY is not set", provider.ErrConfig)
	}
	var client = &AlphaVantageAPIClient{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
		header:     http.Header{},
		query:      url.Values{},
	}
	client.query.Add("apikey", key)
	for _, option := range options {
		option(client)
	}
	return client, nil
}

// get performs GET /query with the client parameters merged into params.
// Every failure is a network error.
func (c *AlphaVantageAPIClient) get(ctx context.Context, params url.Values, opts []AlphaVantageAPIClientOption) (*http.Response, error) {
	var override = &AlphaVantageAPIClient{
		baseURL:    c.baseURL,
		httpClient: c.httpClient,
		header:     c.header.Clone(),
		query:      c.query,
	}
	for _, opt := range opts {
		opt(override)
	}

	query := maps.Clone(override.query)
	for k, vs := range params {
		for _, v := range vs {
			query.Add(k, v)
		}
	}

	url := fmt.Sprintf("%s/query?%s", override.baseURL, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: creating request: %w", provider.ErrNetwork, err)
	}
	req.Header = override.header

	res, err := override.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: performing request: %w", provider.ErrNetwork, err)
	}

	if res.StatusCode >= 200 && res.StatusCode < 300 {
		return res, nil
	}
	defer res.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, 2<<10))
	return nil, fmt.Errorf("%w: unexpected status code: %d", provider.ErrNetwork, res.StatusCode)
}

package cryptocompare

import (
	"context"
	"fmt"
	"io"
	"maps"
	"net/http"
	"net/url"

	"trackit/internal/provider"
)

const baseURL = "https://min-api.cryptocompare.com"

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=cryptocompare_test -destination=mock_http_client_test.go -source=client.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// CryptoCompareAPIClient is a client for the CryptoCompare min-api.
type CryptoCompareAPIClient struct {
	// baseURL is the base URL for the API.
	baseURL string
	// httpClient is the HTTP httpClient.
	httpClient HTTPClient
	// header contains additional headers to be sent with each request.
	header http.Header
	// query contains additional query parameters to be sent with each request.
	query url.Values
}

// CryptoCompareAPIClientOption is a configuration option for the CryptoCompare API client.
type CryptoCompareAPIClientOption func(*CryptoCompareAPIClient)

// WithBaseURL sets the base URL for the API.
func WithBaseURL(baseURL string) CryptoCompareAPIClientOption {
	return func(c *CryptoCompareAPIClient) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithHTTPClient sets the HTTP client for the API.
func WithHTTPClient(httpClient HTTPClient) CryptoCompareAPIClientOption {
	return func(c *CryptoCompareAPIClient) {
		c.httpClient = httpClient
	}
}

// WithHeader sets additional headers to be sent with each request.
func WithHeader(header http.Header) CryptoCompareAPIClientOption {
	return func(c *CryptoCompareAPIClient) {
		for key, values := range header {
			for _, value := range values {
				c.header.Add(key, value)
			}
		}
	}
}

// NewCryptoCompareAPIClient creates a new CryptoCompare API client. An empty
// key is a configuration error.
func NewCryptoCompareAPIClient(key string, options ...CryptoCompareAPIClientOption) (*CryptoCompareAPIClient, error) {
	if key == "" {
		return nil, fmt.Errorf("%w: CRYPTO_COMPARE_API_KEY is not set", provider.ErrConfig)
	}
	var client = &CryptoCompareAPIClient{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
		header:     http.Header{},
		query:      url.Values{},
	}
	// https://min-api.cryptocompare.com/documentation?key=Authentication
	client.query.Add("api_key", key)
	for _, option := range options {
		option(client)
	}
	return client, nil
}

// get performs a GET on path with the client query merged into params and
// returns the response on a 2xx status. Every failure is a network error.
func (c *CryptoCompareAPIClient) get(ctx context.Context, path string, params url.Values, opts []CryptoCompareAPIClientOption) (*http.Response, error) {
	var override = &CryptoCompareAPIClient{
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

	url := fmt.Sprintf("%s%s?%s", override.baseURL, path, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: creating request: %w", provider.ErrNetwork, err)
	}
	req.Header = override.header
	req.Header.Set("Accept", "application/json")

	res, err := override.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: performing request: %w", provider.ErrNetwork, err)
	}

	if res.StatusCode >= 200 && res.StatusCode < 300 {
		return res, nil
	}
	defer res.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, 2<<10))

	switch res.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, fmt.Errorf("%w: unauthorized", provider.ErrNetwork)

	case http.StatusTooManyRequests:
		return nil, fmt.Errorf("%w: rate limited", provider.ErrNetwork)

	default:
		return nil, fmt.Errorf("%w: unexpected status code: %d", provider.ErrNetwork, res.StatusCode)
	}
}

// envelope is the status part every min-api payload carries. Response is
// "Error" when the call failed even though the HTTP status was 200.
type envelope struct {
	Response string `json:"Response"`
	Message  string `json:"Message"`
}

func (e envelope) err() error {
	if e.Response != "Error" {
		return nil
	}
	msg := e.Message
	if msg == "" {
		msg = "provider returned an error"
	}
	return fmt.Errorf("%w: %s", provider.ErrUpstreamFormat, msg)
}

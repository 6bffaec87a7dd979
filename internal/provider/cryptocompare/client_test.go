package cryptocompare_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"trackit/internal/provider"
	cryptocompare "trackit/internal/provider/cryptocompare"
)

func TestNewCryptoCompareAPIClient(t *testing.T) {
	t.Parallel()

	// Assert: a valid key should return a client.
	client, err := cryptocompare.NewCryptoCompareAPIClient("test")
	require.NoErrorf(t, err, "unexpected error: %v", err)
	require.NotNilf(t, client, "unexpected nil client")
}

func TestNewCryptoCompareAPIClient_MissingKey(t *testing.T) {
	t.Parallel()

	// Act: create a client without a key.
	client, err := cryptocompare.NewCryptoCompareAPIClient("")

	// Assert: a missing key is a configuration error.
	require.ErrorIs(t, err, provider.ErrConfig)
	require.Nil(t, client)
}

func TestWithHTTPClient(t *testing.T) {
	t.Parallel()

	// Arrange: create a mock controller
	ctrl := gomock.NewController(t)

	// Arrange: create a mock http client
	httpClient := NewMockHTTPClient(ctrl)

	// Assert: stub the Do method and expect exactly one call
	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			return jsonResponse(t, http.StatusOK, map[string]any{"Response": "Success", "Data": map[string]any{}}), nil
		}).
		Times(1)

	// Arrange: create a new client with a custom HTTP client.
	client, err := cryptocompare.NewCryptoCompareAPIClient("test", cryptocompare.WithHTTPClient(httpClient))
	require.NoError(t, err)
	require.NotNil(t, client)

	// Act: call CoinList with the custom HTTP client.
	_, err = client.CoinList(t.Context())
	require.NoError(t, err)
}

func TestWithBaseURL(t *testing.T) {
	t.Parallel()

	// Arrange: create a mock controller
	ctrl := gomock.NewController(t)

	// Arrange: create a mock http client
	httpClient := NewMockHTTPClient(ctrl)

	// Arrange: define a base url
	baseURL := "http://localhost:8080"

	// Assert: stub the Do method
	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Truef(t, strings.HasPrefix(req.URL.String(), baseURL), "expected url to start with base url, received: %s", req.URL.String())
			return jsonResponse(t, http.StatusOK, map[string]any{"Response": "Success", "Data": map[string]any{}}), nil
		}).
		Times(1)

	// Arrange: create a new client.
	client, err := cryptocompare.NewCryptoCompareAPIClient("test", cryptocompare.WithHTTPClient(httpClient), cryptocompare.WithBaseURL(baseURL))
	require.NoError(t, err)

	// Act: call CoinList with the overridden base URL.
	_, err = client.CoinList(t.Context())
	require.NoError(t, err)
}

func TestWithHeader(t *testing.T) {
	t.Parallel()

	// Arrange: create a mock controller
	ctrl := gomock.NewController(t)

	// Arrange: create a mock http client
	httpClient := NewMockHTTPClient(ctrl)

	// Assert: stub the Do method and check the header
	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Equal(t, "bar", req.Header.Get("foo"))
			require.Equal(t, "application/json", req.Header.Get("Accept"))
			return jsonResponse(t, http.StatusOK, map[string]any{"Response": "Success", "Data": map[string]any{}}), nil
		}).
		Times(1)

	// Arrange: create a new client with a custom header.
	client, err := cryptocompare.NewCryptoCompareAPIClient("test", cryptocompare.WithHTTPClient(httpClient), cryptocompare.WithHeader(http.Header{
		"foo": []string{"bar"},
	}))
	require.NoError(t, err)

	// Act: call CoinList with the custom header.
	_, err = client.CoinList(t.Context())
	require.NoError(t, err)
}

func TestGet_StatusCodes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		want   string
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, want: "unauthorized"},
		{name: "forbidden", status: http.StatusForbidden, want: "unauthorized"},
		{name: "rate limited", status: http.StatusTooManyRequests, want: "rate limited"},
		{name: "server error", status: http.StatusInternalServerError, want: "unexpected status code: 500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// Arrange: a mock client answering with the status
			ctrl := gomock.NewController(t)
			httpClient := NewMockHTTPClient(ctrl)
			httpClient.EXPECT().
				Do(gomock.Any()).
				Return(&http.Response{StatusCode: tt.status, Body: io.NopCloser(bytes.NewReader(nil))}, nil).
				Times(1)

			client, err := cryptocompare.NewCryptoCompareAPIClient("test", cryptocompare.WithHTTPClient(httpClient))
			require.NoError(t, err)

			// Act: call HistoDay
			res, err := client.HistoDay(t.Context(), "BTC", "USD", 6)

			// Assert: status failures are network errors
			require.ErrorIs(t, err, provider.ErrNetwork)
			require.ErrorContains(t, err, tt.want)
			require.Nil(t, res)
		})
	}
}

// jsonResponse encodes v as the body of a response with the given status.
func jsonResponse(t *testing.T, status int, v any) *http.Response {
	t.Helper()
	buffer := &bytes.Buffer{}
	require.NoError(t, json.NewEncoder(buffer).Encode(v))
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(buffer),
	}
}

// rawResponse returns body verbatim with a 200 status.
func rawResponse(body string) *http.Response {
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

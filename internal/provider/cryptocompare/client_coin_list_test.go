package cryptocompare_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"trackit/internal/provider"
	cryptocompare "trackit/internal/provider/cryptocompare"
)

func TestCoinList_PreservesProviderOrder(t *testing.T) {
	t.Parallel()

	// Arrange: create a mock controller
	ctrl := gomock.NewController(t)

	// Arrange: create a mock HTTP client
	httpClient := NewMockHTTPClient(ctrl)

	// Assert: stub the Do method
	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Equal(t, "/data/all/coinlist", req.URL.Path)
			require.Equal(t, "test-key", req.URL.Query().Get("api_key"))
			return rawResponse(coinListBody), nil
		}).
		Times(1)

	// Arrange: setup a new CryptoCompare API client
	client, err := cryptocompare.NewCryptoCompareAPIClient("test-key", cryptocompare.WithHTTPClient(httpClient))
	require.NoError(t, err)

	// Act: call CoinList
	res, err := client.CoinList(t.Context())
	require.NoError(t, err)

	// Assert: coins come back in document order, not map order
	require.Equal(t, "Success", res.Response)
	require.Len(t, res.Coins, 4)
	require.Equal(t, []string{"ETH", "BTC", "", "BTCD"}, []string{res.Coins[0].Symbol, res.Coins[1].Symbol, res.Coins[2].Symbol, res.Coins[3].Symbol})

	// Assert: normalization drops the coin without a symbol
	entries := cryptocompare.NormalizeCatalog(res)
	require.Equal(t, []provider.CatalogEntry{
		{ID: "7605", Symbol: "ETH", FullName: "Ethereum (ETH)"},
		{ID: "1182", Symbol: "BTC", FullName: "Bitcoin (BTC)"},
		{ID: "4399", Symbol: "BTCD", FullName: "BitcoinDark"},
	}, entries)
}

func TestCoinList_ErrorPayload(t *testing.T) {
	t.Parallel()

	// Arrange: an error envelope with a 200 status
	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)
	httpClient.EXPECT().
		Do(gomock.Any()).
		Return(rawResponse(`{"Response":"Error","Message":"You are over your rate limit please upgrade your account!","Data":{}}`), nil).
		Times(1)

	client, err := cryptocompare.NewCryptoCompareAPIClient("test-key", cryptocompare.WithHTTPClient(httpClient))
	require.NoError(t, err)

	// Act: call CoinList
	res, err := client.CoinList(t.Context())

	// Assert: the error message is kept
	require.ErrorIs(t, err, provider.ErrUpstreamFormat)
	require.ErrorContains(t, err, "rate limit")
	require.Nil(t, res)
}

func TestCoinList_ErrDecodingResponse(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)
	httpClient.EXPECT().
		Do(gomock.Any()).
		Return(rawResponse(`{"Data":[1,2,3]}`), nil).
		Times(1)

	client, err := cryptocompare.NewCryptoCompareAPIClient("test-key", cryptocompare.WithHTTPClient(httpClient))
	require.NoError(t, err)

	res, err := client.CoinList(t.Context())
	require.ErrorIs(t, err, provider.ErrUpstreamFormat)
	require.Nil(t, res)
}

// coinListBody is a trimmed /data/all/coinlist response. Keys are not in
// sorted order on purpose.
const coinListBody = `{
  "Response": "Success",
  "Message": "Coin list succesfully returned!",
  "Data": {
    "ETH": {"Id": "7605", "Symbol": "ETH", "CoinName": "Ethereum", "FullName": "Ethereum (ETH)", "SortOrder": "2"},
    "BTC": {"Id": "1182", "Symbol": "BTC", "CoinName": "Bitcoin", "FullName": "Bitcoin (BTC)", "SortOrder": "1"},
    "EMPTY": {"Id": "1", "Symbol": "", "CoinName": "Nothing", "FullName": ""},
    "BTCD": {"Id": "4399", "Symbol": "BTCD", "CoinName": "BitcoinDark", "FullName": ""}
  },
  "Type": 100
}`

package coingecko

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketdash-api/pkg/marketdata"
	"marketdash-api/pkg/upstream"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc) *Provider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(WithBaseURL(server.URL))
}

func marketRow(id, symbol, name string, price float64) string {
	return fmt.Sprintf(`{"id":%q,"symbol":%q,"name":%q,"current_price":%g,"price_change_24h":1.5,"price_change_percentage_24h":2.5,"total_volume":1000,"market_cap":50000}`,
		id, symbol, name, price)
}

func TestFetchMultipleTickersDropsMalformedRows(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/coins/markets", r.URL.Path)
		assert.Contains(t, r.URL.Query().Get("ids"), "bitcoin")
		// The third row has no current_price and must be dropped.
		fmt.Fprintf(w, `[%s,%s,{"id":"broken","symbol":"brk","name":"Broken"},%s]`,
			marketRow("bitcoin", "btc", "Bitcoin", 65000),
			marketRow("ethereum", "eth", "Ethereum", 3200),
			marketRow("solana", "sol", "Solana", 150))
	})

	tickers, err := provider.FetchMultipleTickers(context.Background(), []string{"BTC", "ETH", "BRK", "SOL"})
	require.NoError(t, err)
	require.Len(t, tickers, 3)

	btc := tickers[0]
	assert.Equal(t, "BTC", btc.Symbol)
	assert.Equal(t, "Bitcoin", btc.Name)
	assert.Equal(t, marketdata.AssetCrypto, btc.Type)
	assert.Equal(t, 65000.0, btc.Price)
	assert.Equal(t, 50000.0, btc.MarketCap)
}

func TestFetchTickerNotFound(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	})

	_, err := provider.FetchTicker(context.Background(), "NOPE")
	require.Error(t, err)
	assert.True(t, upstream.IsUpstream(err))
}

func TestFetchChartDataFillsOHLCFromSpotPrice(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/coins/bitcoin/market_chart", r.URL.Path)
		fmt.Fprint(w, `{"prices":[[1700000060000,65100],[1700000000000,65000]],"total_volumes":[[1700000060000,10],[1700000000000,20]]}`)
	})

	points, err := provider.FetchChartData(context.Background(), "BTC", "1d", time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, points, 2)

	// Points come back ascending even when the payload is not.
	assert.Less(t, points[0].Timestamp, points[1].Timestamp)
	first := points[0]
	assert.Equal(t, first.Open, first.Close)
	assert.Equal(t, first.High, first.Low)
	assert.Equal(t, 65000.0, first.Close)
	assert.Equal(t, 20.0, first.Volume)
}

func TestFetchChartDataDegradesToEmptyOnFailure(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	points, err := provider.FetchChartData(context.Background(), "BTC", "1d", time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Empty(t, points)
}

package twelvedata

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc) *Provider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New("test-key", WithBaseURL(server.URL))
}

func TestFetchMultipleTickersKeyedResponse(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/quote", r.URL.Path)
		assert.Equal(t, "AAPL,MSFT,BAD", r.URL.Query().Get("symbol"))
		fmt.Fprint(w, `{
			"MSFT": {"symbol":"MSFT","name":"Microsoft","close":"420.5","change":"2.5","percent_change":"0.6","volume":"1000"},
			"AAPL": {"symbol":"AAPL","name":"Apple","close":"190.1","change":"-1.1","percent_change":"-0.57","volume":"2000"},
			"BAD":  {"code":401,"status":"error","message":"symbol not found"}
		}`)
	})

	tickers, err := provider.FetchMultipleTickers(context.Background(), []string{"AAPL", "MSFT", "BAD"})
	require.NoError(t, err)
	require.Len(t, tickers, 2)

	// Results follow request order, not the provider's map order.
	assert.Equal(t, "AAPL", tickers[0].Symbol)
	assert.Equal(t, "MSFT", tickers[1].Symbol)
	assert.Equal(t, 190.1, tickers[0].Price)
	assert.Equal(t, "Microsoft", tickers[1].Name)
}

func TestFetchMultipleTickersEmptyOnTransportFailure(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	tickers, err := provider.FetchMultipleTickers(context.Background(), []string{"AAPL"})
	require.NoError(t, err)
	assert.Empty(t, tickers)
}

func TestFetchTickerSingleObjectResponse(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"symbol":"aapl","name":"Apple","close":"190.1","change":"-1.1","percent_change":"-0.57","volume":"2000"}`)
	})

	ticker, err := provider.FetchTicker(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", ticker.Symbol)
	assert.Equal(t, 2000.0, ticker.Volume)
}

func TestFetchTickerErrorPayload(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"code":401,"status":"error","message":"invalid api key"}`)
	})

	_, err := provider.FetchTicker(context.Background(), "AAPL")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid api key")
}

func TestFetchChartDataAscending(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/time_series", r.URL.Path)
		assert.Equal(t, "1day", r.URL.Query().Get("interval"))
		fmt.Fprint(w, `{"status":"ok","values":[
			{"datetime":"2026-08-28","open":"101","high":"103","low":"100","close":"102","volume":"500"},
			{"datetime":"2026-08-27","open":"99","high":"102","low":"98","close":"101","volume":"400"},
			{"datetime":"not-a-date","open":"1","high":"1","low":"1","close":"1","volume":"1"}
		]}`)
	})

	points, err := provider.FetchChartData(context.Background(), "AAPL", "1d", time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Less(t, points[0].Timestamp, points[1].Timestamp)
	assert.Equal(t, 101.0, points[0].Close)
	assert.Equal(t, 102.0, points[1].Close)
	assert.Equal(t, 500.0, points[1].Volume)
}

func TestQuoteIsError(t *testing.T) {
	assert.True(t, Quote{Code: 401}.IsError())
	assert.True(t, Quote{Status: "error"}.IsError())
	assert.False(t, Quote{Symbol: "AAPL", Close: "190"}.IsError())
}

package alphavantage

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketdash-api/pkg/upstream"
)

type countingLimiter struct {
	waits int
}

func (l *countingLimiter) Wait(ctx context.Context) error {
	l.waits++
	return nil
}

func newTestProvider(t *testing.T, limiter *countingLimiter, handler http.HandlerFunc) *Provider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New("demo",
		WithLimiter(limiter),
		WithClientOptions(WithBaseURL(server.URL)))
}

func globalQuoteBody(symbol string) string {
	return fmt.Sprintf(`{"Global Quote":{"01. symbol":%q,"05. price":"190.5000","06. volume":"1000","09. change":"1.5000","10. change percent":"0.7900%%"}}`, symbol)
}

func TestFetchTickerStripsPercentSuffix(t *testing.T) {
	provider := newTestProvider(t, &countingLimiter{}, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GLOBAL_QUOTE", r.URL.Query().Get("function"))
		assert.Equal(t, "demo", r.URL.Query().Get("apikey"))
		fmt.Fprint(w, globalQuoteBody("AAPL"))
	})

	ticker, err := provider.FetchTicker(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, 190.5, ticker.Price)
	assert.Equal(t, 0.79, ticker.ChangePercent)
	assert.Equal(t, 1000.0, ticker.Volume)
}

func TestFetchTickerRateLimitNote(t *testing.T) {
	provider := newTestProvider(t, &countingLimiter{}, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"Note":"Thank you for using Alpha Vantage! Our standard API rate limit is 25 requests per day."}`)
	})

	_, err := provider.FetchTicker(context.Background(), "AAPL")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit")
}

func TestFetchTickerRejectsRecordWithoutSymbol(t *testing.T) {
	provider := newTestProvider(t, &countingLimiter{}, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, globalQuoteBody(""))
	})

	// A quote with a price but no symbol fails the shared schema check.
	_, err := provider.FetchTicker(context.Background(), "AAPL")
	require.Error(t, err)
	assert.True(t, upstream.IsUpstream(err))
	assert.Contains(t, err.Error(), "malformed quote")
}

func TestFetchMultipleTickersCapsBatchSize(t *testing.T) {
	limiter := &countingLimiter{}
	provider := newTestProvider(t, limiter, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, globalQuoteBody(r.URL.Query().Get("symbol")))
	})

	symbols := []string{"AAPL", "MSFT", "TSLA", "NVDA", "AMZN", "GOOG", "META"}
	tickers, err := provider.FetchMultipleTickers(context.Background(), symbols)
	require.NoError(t, err)
	// Only the first five symbols are fetched.
	assert.Len(t, tickers, 5)
	assert.Equal(t, 5, limiter.waits)
	assert.Equal(t, "AMZN", tickers[4].Symbol)
}

func TestFetchChartDataLocatesDynamicSeriesKey(t *testing.T) {
	provider := newTestProvider(t, &countingLimiter{}, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "TIME_SERIES_DAILY", r.URL.Query().Get("function"))
		fmt.Fprint(w, `{"Meta Data":{"2. Symbol":"AAPL"},"Time Series (Daily)":{
			"2026-08-28":{"1. open":"101","2. high":"103","3. low":"100","4. close":"102","5. volume":"500"},
			"2026-08-27":{"1. open":"99","2. high":"102","3. low":"98","4. close":"101","5. volume":"400"}
		}}`)
	})

	points, err := provider.FetchChartData(context.Background(), "AAPL", "1d", time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Less(t, points[0].Timestamp, points[1].Timestamp)
	assert.Equal(t, 101.0, points[0].Close)
}

func TestFetchChartDataIsDeterministic(t *testing.T) {
	provider := newTestProvider(t, &countingLimiter{}, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"Meta Data":{"2. Symbol":"AAPL"},"Time Series (Daily)":{
			"2026-08-28":{"1. open":"101","2. high":"103","3. low":"100","4. close":"102","5. volume":"500"},
			"2026-08-27":{"1. open":"99","2. high":"102","3. low":"98","4. close":"101","5. volume":"400"},
			"2026-08-26":{"1. open":"98","2. high":"100","3. low":"97","4. close":"99","5. volume":"300"}
		}}`)
	})

	// The series arrives as an unordered JSON map; two fetches of the same
	// payload must still agree point for point.
	first, err := provider.FetchChartData(context.Background(), "AAPL", "1d", time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, first, 3)

	second, err := provider.FetchChartData(context.Background(), "AAPL", "1d", time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestFetchChartDataDegradesToEmptyOnError(t *testing.T) {
	provider := newTestProvider(t, &countingLimiter{}, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"Error Message":"Invalid API call."}`)
	})

	points, err := provider.FetchChartData(context.Background(), "AAPL", "1d", time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Empty(t, points)
}

package polygon

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
	return New("test-key",
		WithLimiter(limiter),
		WithClientOptions(WithBaseURL(server.URL)))
}

func TestFetchTickerDerivesChangeFromOpenClose(t *testing.T) {
	provider := newTestProvider(t, &countingLimiter{}, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/aggs/ticker/AAPL/prev", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("apiKey"))
		fmt.Fprint(w, `{"status":"OK","ticker":"AAPL","results":[{"o":100,"h":112,"l":99,"c":110,"v":5000,"t":1700000000000}]}`)
	})

	ticker, err := provider.FetchTicker(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, 110.0, ticker.Price)
	assert.Equal(t, 10.0, ticker.Change)
	assert.InDelta(t, 10.0, ticker.ChangePercent, 1e-9)
	assert.Equal(t, time.UnixMilli(1700000000000).UTC(), ticker.LastUpdated)
}

func TestFetchTickerRejectsRecordWithoutSymbol(t *testing.T) {
	provider := newTestProvider(t, &countingLimiter{}, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"OK","ticker":"","results":[{"o":100,"h":112,"l":99,"c":110,"v":5000,"t":1700000000000}]}`)
	})

	// With neither a response ticker nor a request symbol the normalized
	// record fails the shared schema check and is never emitted.
	_, err := provider.FetchTicker(context.Background(), "")
	require.Error(t, err)
	assert.True(t, upstream.IsUpstream(err))
	assert.Contains(t, err.Error(), "malformed quote")
}

func TestFetchMultipleTickersWaitsBetweenCallsAndDropsFailures(t *testing.T) {
	limiter := &countingLimiter{}
	provider := newTestProvider(t, limiter, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v2/aggs/ticker/BAD/prev" {
			fmt.Fprint(w, `{"status":"NOT_FOUND","results":[]}`)
			return
		}
		fmt.Fprint(w, `{"status":"OK","ticker":"AAPL","results":[{"o":100,"h":112,"l":99,"c":110,"v":5000,"t":1700000000000}]}`)
	})

	tickers, err := provider.FetchMultipleTickers(context.Background(), []string{"AAPL", "BAD", "MSFT"})
	require.NoError(t, err)
	assert.Len(t, tickers, 2)
	// One limiter wait per symbol, including the one that failed.
	assert.Equal(t, 3, limiter.waits)
}

func TestFetchChartDataDegradesToEmptyOnFailure(t *testing.T) {
	provider := newTestProvider(t, &countingLimiter{}, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"ERROR"}`)
	})

	points, err := provider.FetchChartData(context.Background(), "AAPL", "1d", time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Empty(t, points)
}

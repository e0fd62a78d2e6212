package gdelt

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketdash-api/pkg/news"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc) *Provider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(WithBaseURL(server.URL))
}

func rawArticle(url, title, seendate, language string) string {
	return fmt.Sprintf(`{"url":%q,"title":%q,"seendate":%q,"domain":"example.com","language":%q}`,
		url, title, seendate, language)
}

func TestFetchNewsFiltersNonEnglish(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "eng", r.URL.Query().Get("sourcelang"))
		assert.Equal(t, "artlist", r.URL.Query().Get("mode"))
		fmt.Fprintf(w, `{"articles":[%s,%s,%s]}`,
			rawArticle("https://a.example/1", "Bitcoin climbs past 70k", "20260828T120000Z", "English"),
			rawArticle("https://a.example/2", "Börse steigt weiter", "20260828T110000Z", "German"),
			rawArticle("https://a.example/3", "Fed holds rates steady", "20260828T100000Z", ""))
	})

	articles, err := provider.FetchNews(context.Background(), news.Params{})
	require.NoError(t, err)
	require.Len(t, articles, 2)
	assert.Equal(t, "Bitcoin climbs past 70k", articles[0].Title)
	assert.Equal(t, "Fed holds rates steady", articles[1].Title)
	assert.Equal(t, []string{"crypto"}, articles[0].Tags)
	assert.Equal(t, "gdelt-https://a.example/1-20260828T120000Z", articles[0].ID)
}

func TestFetchNewsDefaultQuery(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "market finance", r.URL.Query().Get("query"))
		fmt.Fprint(w, `{"articles":[]}`)
	})

	_, err := provider.FetchNews(context.Background(), news.Params{})
	require.NoError(t, err)
}

func TestFetchNewsQueryJoinsTermsAndTickers(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "rate hike OR AAPL OR TSLA", r.URL.Query().Get("query"))
		fmt.Fprint(w, `{"articles":[]}`)
	})

	_, err := provider.FetchNews(context.Background(), news.Params{
		Query:   "rate hike",
		Tickers: []string{"AAPL", "TSLA"},
	})
	require.NoError(t, err)
}

func TestFetchNewsAppliesLimitAfterFilter(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		body := `{"articles":[`
		for i := 0; i < 5; i++ {
			if i > 0 {
				body += ","
			}
			body += rawArticle(fmt.Sprintf("https://a.example/%d", i), "Stocks rise", "20260828T120000Z", "English")
		}
		body += `]}`
		fmt.Fprint(w, body)
	})

	articles, err := provider.FetchNews(context.Background(), news.Params{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, articles, 2)
}

func TestFetchNewsMatchesRequestedTickers(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"articles":[%s]}`,
			rawArticle("https://a.example/1", "AAPL beats estimates while tsla dips", "20260828T120000Z", "English"))
	})

	articles, err := provider.FetchNews(context.Background(), news.Params{Tickers: []string{"AAPL", "TSLA", "NVDA"}})
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, []string{"AAPL", "TSLA"}, articles[0].Tickers)
}

func TestFetchNewsDropsMalformedSeenDate(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"articles":[%s]}`,
			rawArticle("https://a.example/1", "Stocks rise", "garbage", "English"))
	})

	articles, err := provider.FetchNews(context.Background(), news.Params{})
	require.NoError(t, err)
	assert.Empty(t, articles)
}

func TestQueryDateRoundTrip(t *testing.T) {
	at := time.Date(2026, 8, 28, 12, 30, 45, 0, time.UTC)
	assert.Equal(t, "20260828123045", FormatQueryDate(at))

	parsed, err := ParseSeenDate("20260828T123045Z")
	require.NoError(t, err)
	assert.Equal(t, at, parsed)
}

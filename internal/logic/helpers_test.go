package logic

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketdash-api/pkg/news"
)

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"BTC", "AAPL"}, splitList("BTC, AAPL"))
	assert.Equal(t, []string{"BTC"}, splitList(",BTC,,"))
	assert.Empty(t, splitList(""))
	assert.Empty(t, splitList(" , "))
}

func TestParseTimeParam(t *testing.T) {
	at, err := parseTimeParam("2026-08-28")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC), at)

	at, err = parseTimeParam("2026-08-28T15:04:05Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 28, 15, 4, 5, 0, time.UTC), at)

	zero, err := parseTimeParam("")
	require.NoError(t, err)
	assert.True(t, zero.IsZero())

	_, err = parseTimeParam("yesterday")
	assert.Error(t, err)
}

func TestNewsSignature(t *testing.T) {
	sig := newsSignature(news.Params{Query: "fed", Tickers: []string{"AAPL", "TSLA"}, Limit: 10})
	assert.Equal(t, "fed|AAPL,TSLA|10", sig)

	// Distinct parameter sets never collide on the same signature.
	other := newsSignature(news.Params{Query: "fed", Tickers: []string{"AAPL"}, Limit: 10})
	assert.NotEqual(t, sig, other)
}

func TestFilterArticles(t *testing.T) {
	articles := []news.Article{
		{ID: "1", Tags: []string{"crypto"}, Source: "example.com"},
		{ID: "2", Tags: []string{"stocks"}, Source: "Other.com"},
		{ID: "3", Tags: []string{"crypto", "macro"}, Source: "example.com"},
	}

	tagged := filterArticles(articles, func(a news.Article) bool {
		return containsAny(a.Tags, []string{"CRYPTO"})
	})
	require.Len(t, tagged, 2)
	assert.Equal(t, "1", tagged[0].ID)
	assert.Equal(t, "3", tagged[1].ID)

	bySource := filterArticles(articles, func(a news.Article) bool {
		return containsFold([]string{"other.com"}, a.Source)
	})
	require.Len(t, bySource, 1)
	assert.Equal(t, "2", bySource[0].ID)

	// The original slice backing array is never mutated.
	assert.Equal(t, "1", articles[0].ID)
	assert.Len(t, articles, 3)
}

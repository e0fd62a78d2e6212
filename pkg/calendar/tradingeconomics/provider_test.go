package tradingeconomics

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketdash-api/pkg/calendar"
)

var pinnedNow = time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)

func newTestProvider(t *testing.T, handler http.HandlerFunc) *Provider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New("test-key",
		WithNow(func() time.Time { return pinnedNow }),
		WithClientOptions(WithBaseURL(server.URL)))
}

func TestFetchEventsDefaultWindowAndCountry(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/calendar/country/united%20states/2026-08-26/2026-09-02", r.URL.EscapedPath())
		assert.Equal(t, "test-key", r.URL.Query().Get("c"))
		fmt.Fprint(w, `[]`)
	})

	events, err := provider.FetchEvents(context.Background(), calendar.Params{})
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestFetchEventsNormalizesAndSortsAscending(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		// Mixed Actual/Forecast types, out-of-order dates, one junk record.
		fmt.Fprint(w, `[
			{"Date":"2026-08-28T14:30:00","Country":"United States","Event":"Nonfarm Payrolls","Importance":3,"Actual":null,"Forecast":180000,"Previous":"175K"},
			{"Date":"2026-08-27T12:30:00","Country":"United States","Event":"Initial Jobless Claims","Importance":2,"Actual":"230K","Forecast":null,"TEForecast":"228K","Previous":232000},
			{"Date":"not-a-date","Country":"United States","Event":"Broken","Importance":1},
			{"Date":"2026-08-26T18:00:00","Country":"United States","Event":"Crude Oil Inventories","Importance":1,"Actual":-1.2}
		]`)
	})

	events, err := provider.FetchEvents(context.Background(), calendar.Params{})
	require.NoError(t, err)
	require.Len(t, events, 3)

	assert.Equal(t, "Crude Oil Inventories", events[0].Event)
	assert.Equal(t, "Initial Jobless Claims", events[1].Event)
	assert.Equal(t, "Nonfarm Payrolls", events[2].Event)

	assert.Equal(t, calendar.ImpactLow, events[0].Impact)
	assert.Equal(t, calendar.ImpactMedium, events[1].Impact)
	assert.Equal(t, calendar.ImpactHigh, events[2].Impact)

	// Numbers and nulls render as plain strings; TEForecast fills a null
	// Forecast.
	assert.Equal(t, "-1.2", events[0].Actual)
	assert.Equal(t, "228K", events[1].Forecast)
	assert.Equal(t, "232000", events[1].Previous)
	assert.Equal(t, "", events[2].Actual)
	assert.Equal(t, "180000", events[2].Forecast)
}

func TestFetchEventsExplicitCountryAndRange(t *testing.T) {
	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC)
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/calendar/country/germany/2026-09-01/2026-09-03", r.URL.EscapedPath())
		fmt.Fprint(w, `[]`)
	})

	_, err := provider.FetchEvents(context.Background(), calendar.Params{
		DateFrom:  from,
		DateTo:    to,
		Countries: []string{" Germany "},
	})
	require.NoError(t, err)
}

func TestMapImportance(t *testing.T) {
	assert.Equal(t, calendar.ImpactHigh, mapImportance(3))
	assert.Equal(t, calendar.ImpactMedium, mapImportance(2))
	assert.Equal(t, calendar.ImpactLow, mapImportance(1))
	assert.Equal(t, calendar.ImpactLow, mapImportance(0))
}

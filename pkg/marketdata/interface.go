package marketdata

import (
	"context"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
)

// Source is the uniform contract every market-data adapter implements.
//
// FetchTicker and FetchMultipleTickers differ deliberately in error policy:
// a missing quote blocks meaningful display, so the single fetch propagates
// upstream failures; the batch fetch drops failed symbols and returns the
// surviving subset. FetchChartData is a best-effort enhancement and returns
// an empty series on any upstream failure.
type Source interface {
	Name() string
	FetchTicker(ctx context.Context, symbol string) (*Ticker, error)
	FetchMultipleTickers(ctx context.Context, symbols []string) ([]Ticker, error)
	FetchChartData(ctx context.Context, symbol, interval string, from, to time.Time) ([]ChartPoint, error)
}

// Limiter gates sequential upstream calls for providers with documented rate
// limits. *rate.Limiter from golang.org/x/time satisfies it; tests inject
// fakes to avoid wall-clock sleeps.
type Limiter interface {
	Wait(ctx context.Context) error
}

// SortChartPoints orders a series ascending by timestamp, the normalized
// ordering regardless of the provider's native one.
func SortChartPoints(points []ChartPoint) {
	sort.Slice(points, func(i, j int) bool {
		return points[i].Timestamp < points[j].Timestamp
	})
}

var validate = validator.New()

// ValidateTicker checks a normalized record against the ticker schema.
// Callers drop (and log) records that fail; validation never aborts a batch.
func ValidateTicker(t *Ticker) error {
	return validate.Struct(t)
}

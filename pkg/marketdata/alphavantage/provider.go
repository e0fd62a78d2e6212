package alphavantage

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/zeromicro/go-zero/core/logx"
	"golang.org/x/time/rate"

	"marketdash-api/pkg/marketdata"
	"marketdash-api/pkg/upstream"
)

const (
	// batchInterval honours the free tier's five calls per minute.
	batchInterval = 12 * time.Second
	// maxBatchSymbols caps synthesized batches so one request cannot burn
	// the whole per-minute budget.
	maxBatchSymbols = 5
)

type seriesFunction struct {
	Function string
	Interval string
}

// intervalFunctions maps chart interval tokens to TIME_SERIES functions,
// falling back to daily for unknown tokens.
var intervalFunctions = map[string]seriesFunction{
	"1min":  {"TIME_SERIES_INTRADAY", "1min"},
	"5min":  {"TIME_SERIES_INTRADAY", "5min"},
	"15min": {"TIME_SERIES_INTRADAY", "15min"},
	"30min": {"TIME_SERIES_INTRADAY", "30min"},
	"60min": {"TIME_SERIES_INTRADAY", "60min"},
	"1d":    {"TIME_SERIES_DAILY", ""},
	"1w":    {"TIME_SERIES_WEEKLY", ""},
	"1M":    {"TIME_SERIES_MONTHLY", ""},
}

// Provider adapts AlphaVantage to the marketdata.Source contract. It is the
// demo-capable default stock provider: it works without a configured key,
// on the slowest documented rate tier.
type Provider struct {
	client  *Client
	limiter marketdata.Limiter
}

type providerConfig struct {
	limiter    marketdata.Limiter
	clientOpts []Option
}

// ProviderOption customises the AlphaVantage provider.
type ProviderOption func(*providerConfig)

// WithLimiter replaces the default inter-call limiter (tests inject fakes).
func WithLimiter(l marketdata.Limiter) ProviderOption {
	return func(cfg *providerConfig) {
		if l != nil {
			cfg.limiter = l
		}
	}
}

// WithClientOptions passes options to the underlying API client.
func WithClientOptions(opts ...Option) ProviderOption {
	return func(cfg *providerConfig) {
		cfg.clientOpts = append(cfg.clientOpts, opts...)
	}
}

// New constructs the AlphaVantage market-data adapter.
func New(apiKey string, opts ...ProviderOption) *Provider {
	cfg := &providerConfig{
		limiter: rate.NewLimiter(rate.Every(batchInterval), 1),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return &Provider{
		client:  NewClient(apiKey, cfg.clientOpts...),
		limiter: cfg.limiter,
	}
}

func (p *Provider) Name() string { return providerName }

func (p *Provider) FetchTicker(ctx context.Context, symbol string) (*marketdata.Ticker, error) {
	quote, err := p.client.GlobalQuote(ctx, symbol)
	if err != nil {
		return nil, err
	}
	return normalizeQuote(quote)
}

// FetchMultipleTickers synthesizes batching from sequential single calls
// spaced twelve seconds apart, capped at five symbols. Failed symbols are
// dropped with a warning.
func (p *Provider) FetchMultipleTickers(ctx context.Context, symbols []string) ([]marketdata.Ticker, error) {
	if len(symbols) > maxBatchSymbols {
		symbols = symbols[:maxBatchSymbols]
	}
	tickers := make([]marketdata.Ticker, 0, len(symbols))
	for _, symbol := range symbols {
		if err := p.limiter.Wait(ctx); err != nil {
			return tickers, err
		}
		ticker, err := p.FetchTicker(ctx, symbol)
		if err != nil {
			logx.WithContext(ctx).Infof("alphavantage: dropping symbol=%s err=%v", symbol, err)
			continue
		}
		tickers = append(tickers, *ticker)
	}
	return tickers, nil
}

func (p *Provider) FetchChartData(ctx context.Context, symbol, interval string, from, to time.Time) ([]marketdata.ChartPoint, error) {
	fn, ok := intervalFunctions[interval]
	if !ok {
		fn = seriesFunction{Function: "TIME_SERIES_DAILY"}
	}

	series, err := p.client.TimeSeries(ctx, symbol, fn.Function, fn.Interval)
	if err != nil {
		logx.WithContext(ctx).Errorf("alphavantage: chart fetch symbol=%s err=%v", symbol, err)
		return []marketdata.ChartPoint{}, nil
	}

	points := make([]marketdata.ChartPoint, 0, len(series))
	for stamp, values := range series {
		ts, err := parseSeriesTime(stamp)
		if err != nil {
			continue
		}
		open, err1 := strconv.ParseFloat(values["1. open"], 64)
		high, err2 := strconv.ParseFloat(values["2. high"], 64)
		low, err3 := strconv.ParseFloat(values["3. low"], 64)
		closePx, err4 := strconv.ParseFloat(values["4. close"], 64)
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
			continue
		}
		point := marketdata.ChartPoint{
			Timestamp: ts,
			Open:      open,
			High:      high,
			Low:       low,
			Close:     closePx,
		}
		if volume, err := strconv.ParseFloat(values["5. volume"], 64); err == nil {
			point.Volume = volume
		}
		points = append(points, point)
	}
	marketdata.SortChartPoints(points)
	return points, nil
}

func normalizeQuote(quote *GlobalQuote) (*marketdata.Ticker, error) {
	price, err := strconv.ParseFloat(quote.Price, 64)
	if err != nil {
		return nil, err
	}
	change, _ := strconv.ParseFloat(quote.Change, 64)
	changePct, _ := strconv.ParseFloat(strings.TrimSuffix(quote.ChangePercent, "%"), 64)

	// GLOBAL_QUOTE carries no company name; the symbol stands in.
	normalized := marketdata.Ticker{
		Symbol:        strings.ToUpper(quote.Symbol),
		Name:          strings.ToUpper(quote.Symbol),
		Type:          marketdata.AssetStock,
		Price:         price,
		Change:        change,
		ChangePercent: changePct,
		LastUpdated:   time.Now().UTC(),
	}
	if volume, err := strconv.ParseFloat(quote.Volume, 64); err == nil {
		normalized.Volume = volume
	}
	if err := marketdata.ValidateTicker(&normalized); err != nil {
		return nil, upstream.Errorf(providerName, 0, "malformed quote for symbol: %s", quote.Symbol)
	}
	return &normalized, nil
}

func parseSeriesTime(value string) (int64, error) {
	for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UnixMilli(), nil
		}
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return 0, err
	}
	return t.UnixMilli(), nil
}

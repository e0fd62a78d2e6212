package polygon

import (
	"context"
	"strings"
	"time"

	"github.com/zeromicro/go-zero/core/logx"
	"golang.org/x/time/rate"

	"marketdash-api/pkg/marketdata"
	"marketdash-api/pkg/upstream"
)

// batchInterval spaces sequential quote calls; Polygon has no batch quote
// endpoint and throttles aggressive pollers.
const batchInterval = 100 * time.Millisecond

var (
	intervalTimespans = map[string]string{
		"1min":  "minute",
		"5min":  "minute",
		"15min": "minute",
		"30min": "minute",
		"1h":    "hour",
		"1d":    "day",
		"1w":    "week",
		"1M":    "month",
	}
	intervalMultipliers = map[string]int{
		"1min":  1,
		"5min":  5,
		"15min": 15,
		"30min": 30,
	}
)

// Provider adapts Polygon to the marketdata.Source contract. Quotes come
// from the previous-close aggregate, with change derived as close minus open.
type Provider struct {
	client  *Client
	limiter marketdata.Limiter
}

type providerConfig struct {
	limiter    marketdata.Limiter
	clientOpts []Option
}

// ProviderOption customises the Polygon provider.
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

// New constructs the Polygon market-data adapter.
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
	ticker, agg, err := p.client.PrevClose(ctx, symbol)
	if err != nil {
		return nil, err
	}

	change := agg.Close - agg.Open
	changePercent := 0.0
	if agg.Open != 0 {
		changePercent = change / agg.Open * 100
	}
	normalized := marketdata.Ticker{
		Symbol:        strings.ToUpper(ticker),
		Name:          strings.ToUpper(ticker),
		Type:          marketdata.AssetStock,
		Price:         agg.Close,
		Change:        change,
		ChangePercent: changePercent,
		Volume:        agg.Volume,
		LastUpdated:   time.UnixMilli(agg.Timestamp).UTC(),
	}
	if err := marketdata.ValidateTicker(&normalized); err != nil {
		return nil, upstream.Errorf(providerName, 0, "malformed quote for symbol: %s", symbol)
	}
	return &normalized, nil
}

// FetchMultipleTickers synthesizes batching from sequential single calls.
// The limiter serializes them: call N+1 does not start until the spacing
// since call N has elapsed. A failed symbol is dropped, never fatal.
func (p *Provider) FetchMultipleTickers(ctx context.Context, symbols []string) ([]marketdata.Ticker, error) {
	tickers := make([]marketdata.Ticker, 0, len(symbols))
	for _, symbol := range symbols {
		if err := p.limiter.Wait(ctx); err != nil {
			return tickers, err
		}
		ticker, err := p.FetchTicker(ctx, symbol)
		if err != nil {
			logx.WithContext(ctx).Infof("polygon: dropping symbol=%s err=%v", symbol, err)
			continue
		}
		tickers = append(tickers, *ticker)
	}
	return tickers, nil
}

func (p *Provider) FetchChartData(ctx context.Context, symbol, interval string, from, to time.Time) ([]marketdata.ChartPoint, error) {
	timespan, ok := intervalTimespans[interval]
	if !ok {
		timespan = "day"
	}
	multiplier := intervalMultipliers[interval]
	if multiplier == 0 {
		multiplier = 1
	}
	if to.IsZero() {
		to = time.Now()
	}
	if from.IsZero() {
		from = to.AddDate(0, 0, -30)
	}

	aggs, err := p.client.Range(ctx, symbol, multiplier, timespan, from, to)
	if err != nil {
		logx.WithContext(ctx).Errorf("polygon: chart fetch symbol=%s err=%v", symbol, err)
		return []marketdata.ChartPoint{}, nil
	}

	points := make([]marketdata.ChartPoint, 0, len(aggs))
	for _, agg := range aggs {
		points = append(points, marketdata.ChartPoint{
			Timestamp: agg.Timestamp,
			Open:      agg.Open,
			High:      agg.High,
			Low:       agg.Low,
			Close:     agg.Close,
			Volume:    agg.Volume,
		})
	}
	marketdata.SortChartPoints(points)
	return points, nil
}

package finnhub

import (
	"context"
	"strings"
	"time"

	"github.com/zeromicro/go-zero/core/logx"
	"golang.org/x/time/rate"

	"marketdash-api/pkg/marketdata"
	"marketdash-api/pkg/upstream"
)

// batchInterval matches the free-tier budget of 60 calls per minute.
const batchInterval = time.Second

// intervalResolutions maps chart interval tokens to Finnhub resolutions,
// falling back to daily for unknown tokens.
var intervalResolutions = map[string]string{
	"1min":  "1",
	"5min":  "5",
	"15min": "15",
	"30min": "30",
	"1h":    "60",
	"1d":    "D",
	"1w":    "W",
	"1M":    "M",
}

// Provider adapts Finnhub to the marketdata.Source contract. Finnhub has no
// batch quote endpoint, so batches are synthesized sequentially.
type Provider struct {
	client  *Client
	limiter marketdata.Limiter
}

type providerConfig struct {
	limiter    marketdata.Limiter
	clientOpts []Option
}

// ProviderOption customises the Finnhub provider.
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

// New constructs the Finnhub market-data adapter.
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
	quote, err := p.client.Quote(ctx, symbol)
	if err != nil {
		return nil, err
	}
	// Finnhub answers 200 with an all-zero body for unknown symbols.
	if quote.Current == 0 && quote.Timestamp == 0 {
		return nil, upstream.Errorf(providerName, 0, "no data for symbol: %s", symbol)
	}

	normalized := marketdata.Ticker{
		Symbol:        strings.ToUpper(symbol),
		Name:          strings.ToUpper(symbol),
		Type:          marketdata.AssetStock,
		Price:         quote.Current,
		Change:        quote.Change,
		ChangePercent: quote.ChangePercent,
		LastUpdated:   time.Unix(quote.Timestamp, 0).UTC(),
	}
	if err := marketdata.ValidateTicker(&normalized); err != nil {
		return nil, upstream.Errorf(providerName, 0, "malformed quote for symbol: %s", symbol)
	}
	return &normalized, nil
}

// FetchMultipleTickers walks symbols sequentially with one second between
// call initiations. Failed symbols are dropped with a warning.
func (p *Provider) FetchMultipleTickers(ctx context.Context, symbols []string) ([]marketdata.Ticker, error) {
	tickers := make([]marketdata.Ticker, 0, len(symbols))
	for _, symbol := range symbols {
		if err := p.limiter.Wait(ctx); err != nil {
			return tickers, err
		}
		ticker, err := p.FetchTicker(ctx, symbol)
		if err != nil {
			logx.WithContext(ctx).Infof("finnhub: dropping symbol=%s err=%v", symbol, err)
			continue
		}
		tickers = append(tickers, *ticker)
	}
	return tickers, nil
}

func (p *Provider) FetchChartData(ctx context.Context, symbol, interval string, from, to time.Time) ([]marketdata.ChartPoint, error) {
	resolution, ok := intervalResolutions[interval]
	if !ok {
		resolution = "D"
	}
	if to.IsZero() {
		to = time.Now()
	}
	if from.IsZero() {
		from = to.AddDate(0, 0, -30)
	}

	candles, err := p.client.Candle(ctx, symbol, resolution, from.Unix(), to.Unix())
	if err != nil {
		logx.WithContext(ctx).Errorf("finnhub: chart fetch symbol=%s err=%v", symbol, err)
		return []marketdata.ChartPoint{}, nil
	}

	points := make([]marketdata.ChartPoint, 0, len(candles.Timestamps))
	for i, ts := range candles.Timestamps {
		if i >= len(candles.Open) || i >= len(candles.High) || i >= len(candles.Low) || i >= len(candles.Close) {
			break
		}
		point := marketdata.ChartPoint{
			Timestamp: ts * 1000,
			Open:      candles.Open[i],
			High:      candles.High[i],
			Low:       candles.Low[i],
			Close:     candles.Close[i],
		}
		if i < len(candles.Volume) {
			point.Volume = candles.Volume[i]
		}
		points = append(points, point)
	}
	marketdata.SortChartPoints(points)
	return points, nil
}

package coingecko

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/zeromicro/go-zero/core/logx"

	"marketdash-api/pkg/marketdata"
	"marketdash-api/pkg/upstream"
)

var validateRow = validator.New().Struct

// intervalDays maps chart interval tokens to the lookback window CoinGecko
// expects. Unknown intervals fall back to a week.
var intervalDays = map[string]int{
	"1h": 1,
	"4h": 2,
	"1d": 30,
	"1w": 90,
	"1M": 365,
}

// Provider adapts CoinGecko to the marketdata.Source contract. CoinGecko is
// the sole crypto provider and needs no API key.
type Provider struct {
	client *Client
}

// New constructs the CoinGecko market-data adapter.
func New(opts ...Option) *Provider {
	return &Provider{client: NewClient(opts...)}
}

func (p *Provider) Name() string { return providerName }

// FetchTicker returns a single quote. An empty result for a valid symbol is
// an upstream failure, not an empty success.
func (p *Provider) FetchTicker(ctx context.Context, symbol string) (*marketdata.Ticker, error) {
	tickers, err := p.FetchMultipleTickers(ctx, []string{symbol})
	if err != nil {
		return nil, err
	}
	if len(tickers) == 0 {
		return nil, upstream.Errorf(providerName, 0, "ticker not found: %s", symbol)
	}
	return &tickers[0], nil
}

// FetchMultipleTickers resolves symbols to coin ids and issues one
// multiplexed call. Rows failing validation are dropped with a warning.
func (p *Provider) FetchMultipleTickers(ctx context.Context, symbols []string) ([]marketdata.Ticker, error) {
	ids := make([]string, 0, len(symbols))
	for _, s := range symbols {
		ids = append(ids, marketdata.CoinID(s))
	}

	rows, err := p.client.Markets(ctx, ids)
	if err != nil {
		return nil, err
	}

	tickers := make([]marketdata.Ticker, 0, len(rows))
	for _, row := range rows {
		ticker, ok := NormalizeRow(row)
		if !ok {
			logx.WithContext(ctx).Infof("coingecko: dropping malformed market row id=%s", row.ID)
			continue
		}
		tickers = append(tickers, ticker)
	}
	return tickers, nil
}

// NormalizeRow converts a raw market row into a Ticker. The second return is
// false when the row fails schema validation.
func NormalizeRow(row MarketRow) (marketdata.Ticker, bool) {
	if err := validateRow(&row); err != nil {
		return marketdata.Ticker{}, false
	}
	ticker := marketdata.Ticker{
		Symbol:        strings.ToUpper(row.Symbol),
		Name:          row.Name,
		Type:          marketdata.AssetCrypto,
		Price:         *row.CurrentPrice,
		Change:        *row.PriceChange24h,
		ChangePercent: *row.PriceChangePct24,
		LastUpdated:   time.Now().UTC(),
	}
	if row.TotalVolume != nil {
		ticker.Volume = *row.TotalVolume
	}
	if row.MarketCap != nil {
		ticker.MarketCap = *row.MarketCap
	}
	return ticker, true
}

// FetchChartData returns the historical series for a symbol. CoinGecko only
// supplies spot prices, so every OHLC field carries the single known price.
// Any upstream failure degrades to an empty series.
func (p *Provider) FetchChartData(ctx context.Context, symbol, interval string, from, to time.Time) ([]marketdata.ChartPoint, error) {
	days, ok := intervalDays[interval]
	if !ok {
		days = 7
	}

	payload, err := p.client.MarketChart(ctx, marketdata.CoinID(symbol), days, interval)
	if err != nil {
		logx.WithContext(ctx).Errorf("coingecko: chart fetch symbol=%s err=%v", symbol, err)
		return []marketdata.ChartPoint{}, nil
	}

	points := make([]marketdata.ChartPoint, 0, len(payload.Prices))
	for i, pair := range payload.Prices {
		ts, price := int64(pair[0]), pair[1]
		point := marketdata.ChartPoint{
			Timestamp: ts,
			Open:      price,
			High:      price,
			Low:       price,
			Close:     price,
		}
		if i < len(payload.TotalVolumes) {
			point.Volume = payload.TotalVolumes[i][1]
		}
		points = append(points, point)
	}
	marketdata.SortChartPoints(points)
	return points, nil
}

package twelvedata

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"marketdash-api/pkg/marketdata"
	"marketdash-api/pkg/upstream"
)

// intervalTokens maps chart interval tokens to TwelveData granularities.
// Unknown intervals fall back to daily since charts are non-critical.
var intervalTokens = map[string]string{
	"1min":  "1min",
	"5min":  "5min",
	"15min": "15min",
	"30min": "30min",
	"1h":    "1h",
	"1d":    "1day",
	"1w":    "1week",
	"1M":    "1month",
}

// Provider adapts TwelveData to the marketdata.Source contract. TwelveData
// supports native batch quotes, so no inter-call throttling is needed.
type Provider struct {
	client *Client
}

// New constructs the TwelveData market-data adapter.
func New(apiKey string, opts ...Option) *Provider {
	return &Provider{client: NewClient(apiKey, opts...)}
}

func (p *Provider) Name() string { return providerName }

func (p *Provider) FetchTicker(ctx context.Context, symbol string) (*marketdata.Ticker, error) {
	quotes, err := p.client.Quotes(ctx, []string{symbol})
	if err != nil {
		return nil, err
	}
	if len(quotes) == 0 {
		return nil, upstream.Errorf(providerName, 0, "no data for symbol: %s", symbol)
	}
	quote := quotes[0]
	if quote.IsError() {
		return nil, upstream.Errorf(providerName, quote.Code, "%s", quote.Message)
	}
	ticker, ok := normalizeQuote(quote)
	if !ok {
		return nil, upstream.Errorf(providerName, 0, "malformed quote for symbol: %s", symbol)
	}
	return &ticker, nil
}

// FetchMultipleTickers issues one multiplexed call and fans the result back
// out by the provider's own symbol field; batch responses may reorder or key
// by symbol, so call order is never trusted. Errored or malformed records
// are dropped with a warning.
func (p *Provider) FetchMultipleTickers(ctx context.Context, symbols []string) ([]marketdata.Ticker, error) {
	quotes, err := p.client.Quotes(ctx, symbols)
	if err != nil {
		logx.WithContext(ctx).Errorf("twelvedata: batch quote err=%v", err)
		return []marketdata.Ticker{}, nil
	}

	bySymbol := make(map[string]marketdata.Ticker, len(quotes))
	for _, quote := range quotes {
		if quote.IsError() {
			logx.WithContext(ctx).Infof("twelvedata: quote error symbol=%s msg=%s", quote.Symbol, quote.Message)
			continue
		}
		ticker, ok := normalizeQuote(quote)
		if !ok {
			logx.WithContext(ctx).Infof("twelvedata: dropping malformed quote symbol=%s", quote.Symbol)
			continue
		}
		bySymbol[ticker.Symbol] = ticker
	}

	tickers := make([]marketdata.Ticker, 0, len(bySymbol))
	for _, symbol := range symbols {
		if ticker, ok := bySymbol[normalizeSymbol(symbol)]; ok {
			tickers = append(tickers, ticker)
		}
	}
	return tickers, nil
}

func (p *Provider) FetchChartData(ctx context.Context, symbol, interval string, from, to time.Time) ([]marketdata.ChartPoint, error) {
	token, ok := intervalTokens[interval]
	if !ok {
		token = "1day"
	}

	payload, err := p.client.TimeSeries(ctx, symbol, token)
	if err != nil {
		logx.WithContext(ctx).Errorf("twelvedata: chart fetch symbol=%s err=%v", symbol, err)
		return []marketdata.ChartPoint{}, nil
	}

	points := make([]marketdata.ChartPoint, 0, len(payload.Values))
	for _, v := range payload.Values {
		ts, err := parseDatetime(v.Datetime)
		if err != nil {
			continue
		}
		open, err1 := strconv.ParseFloat(v.Open, 64)
		high, err2 := strconv.ParseFloat(v.High, 64)
		low, err3 := strconv.ParseFloat(v.Low, 64)
		closePx, err4 := strconv.ParseFloat(v.Close, 64)
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
		if volume, err := strconv.ParseFloat(v.Volume, 64); err == nil {
			point.Volume = volume
		}
		points = append(points, point)
	}
	marketdata.SortChartPoints(points)
	return points, nil
}

func normalizeQuote(q Quote) (marketdata.Ticker, bool) {
	price, err := strconv.ParseFloat(q.Close, 64)
	if err != nil || q.Symbol == "" {
		return marketdata.Ticker{}, false
	}
	change, _ := strconv.ParseFloat(q.Change, 64)
	changePct, _ := strconv.ParseFloat(q.PercentChange, 64)

	name := q.Name
	if name == "" {
		name = q.Symbol
	}
	ticker := marketdata.Ticker{
		Symbol:        normalizeSymbol(q.Symbol),
		Name:          name,
		Type:          marketdata.AssetStock,
		Price:         price,
		Change:        change,
		ChangePercent: changePct,
		LastUpdated:   time.Now().UTC(),
	}
	if volume, err := strconv.ParseFloat(q.Volume, 64); err == nil {
		ticker.Volume = volume
	}
	if err := marketdata.ValidateTicker(&ticker); err != nil {
		return marketdata.Ticker{}, false
	}
	return ticker, true
}

func normalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// parseDatetime handles both date-only and datetime values from time_series.
func parseDatetime(value string) (int64, error) {
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

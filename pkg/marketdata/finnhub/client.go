package finnhub

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"marketdash-api/pkg/upstream"
)

const (
	providerName   = "finnhub"
	defaultBaseURL = "https://finnhub.io/api/v1"
)

// Quote is the raw /quote response. Field names follow Finnhub's terse
// one-letter convention.
type Quote struct {
	Current       float64 `json:"c"`
	Change        float64 `json:"d"`
	ChangePercent float64 `json:"dp"`
	Timestamp     int64   `json:"t"`
	Err           string  `json:"error"`
}

// Candles is the raw /stock/candle response: parallel arrays keyed by index.
type Candles struct {
	Status     string    `json:"s"`
	Timestamps []int64   `json:"t"`
	Open       []float64 `json:"o"`
	High       []float64 `json:"h"`
	Low        []float64 `json:"l"`
	Close      []float64 `json:"c"`
	Volume     []float64 `json:"v"`
}

// Client wraps the Finnhub REST API.
type Client struct {
	apiKey  string
	baseURL string
	http    *upstream.Client
}

// Option configures a new Client.
type Option func(*Client)

// WithBaseURL overrides the production endpoint.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithUpstream injects a custom upstream HTTP client.
func WithUpstream(u *upstream.Client) Option {
	return func(c *Client) {
		if u != nil {
			c.http = u
		}
	}
}

// NewClient constructs a Finnhub API client.
func NewClient(apiKey string, opts ...Option) *Client {
	client := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http:    upstream.NewClient(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Quote fetches the latest quote for one symbol.
func (c *Client) Quote(ctx context.Context, symbol string) (*Quote, error) {
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("token", c.apiKey)

	var payload Quote
	if err := c.http.GetJSON(ctx, providerName, c.baseURL+"/quote?"+q.Encode(), &payload); err != nil {
		return nil, err
	}
	if payload.Err != "" {
		return nil, upstream.Errorf(providerName, 0, "%s", payload.Err)
	}
	return &payload, nil
}

// Candle fetches the OHLCV history for one symbol between two unix seconds.
func (c *Client) Candle(ctx context.Context, symbol, resolution string, from, to int64) (*Candles, error) {
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("resolution", resolution)
	q.Set("from", formatUnix(from))
	q.Set("to", formatUnix(to))
	q.Set("token", c.apiKey)

	var payload Candles
	if err := c.http.GetJSON(ctx, providerName, c.baseURL+"/stock/candle?"+q.Encode(), &payload); err != nil {
		return nil, err
	}
	if payload.Status != "ok" || len(payload.Timestamps) == 0 {
		return nil, upstream.Errorf(providerName, 0, "no chart data for symbol: %s", symbol)
	}
	return &payload, nil
}

func formatUnix(v int64) string {
	return strconv.FormatInt(v, 10)
}

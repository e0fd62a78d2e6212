package polygon

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"marketdash-api/pkg/upstream"
)

const (
	providerName   = "polygon"
	defaultBaseURL = "https://api.polygon.io"
)

type aggsResponse struct {
	Status  string `json:"status"`
	Ticker  string `json:"ticker"`
	Results []Agg  `json:"results"`
}

// Agg is one aggregate bar from the v2 aggs endpoints.
type Agg struct {
	Open      float64 `json:"o"`
	High      float64 `json:"h"`
	Low       float64 `json:"l"`
	Close     float64 `json:"c"`
	Volume    float64 `json:"v"`
	Timestamp int64   `json:"t"`
}

// Client wraps the Polygon aggregates API.
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

// NewClient constructs a Polygon API client.
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

// PrevClose fetches the previous-session aggregate for one ticker.
func (c *Client) PrevClose(ctx context.Context, symbol string) (string, *Agg, error) {
	u := fmt.Sprintf("%s/v2/aggs/ticker/%s/prev?adjusted=true&apiKey=%s",
		c.baseURL, url.PathEscape(symbol), url.QueryEscape(c.apiKey))

	var payload aggsResponse
	if err := c.http.GetJSON(ctx, providerName, u, &payload); err != nil {
		return "", nil, err
	}
	if payload.Status != "OK" || len(payload.Results) == 0 {
		return "", nil, upstream.Errorf(providerName, 0, "no data for symbol: %s", symbol)
	}
	ticker := payload.Ticker
	if ticker == "" {
		ticker = symbol
	}
	return ticker, &payload.Results[0], nil
}

// Range fetches aggregate bars for one ticker over a date window.
func (c *Client) Range(ctx context.Context, symbol string, multiplier int, timespan string, from, to time.Time) ([]Agg, error) {
	u := fmt.Sprintf("%s/v2/aggs/ticker/%s/range/%d/%s/%s/%s?adjusted=true&sort=asc&apiKey=%s",
		c.baseURL, url.PathEscape(symbol), multiplier, timespan,
		from.UTC().Format("2006-01-02"), to.UTC().Format("2006-01-02"),
		url.QueryEscape(c.apiKey))

	var payload aggsResponse
	if err := c.http.GetJSON(ctx, providerName, u, &payload); err != nil {
		return nil, err
	}
	if payload.Status != "OK" {
		return nil, upstream.Errorf(providerName, 0, "no chart data for symbol: %s", symbol)
	}
	return payload.Results, nil
}

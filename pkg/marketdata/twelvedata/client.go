package twelvedata

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"marketdash-api/pkg/upstream"
)

const (
	providerName   = "twelvedata"
	defaultBaseURL = "https://api.twelvedata.com"
)

// Quote is one raw /quote record. TwelveData reports numerics as strings.
// Error responses reuse the same shape with status == "error".
type Quote struct {
	Symbol        string `json:"symbol"`
	Name          string `json:"name"`
	Close         string `json:"close"`
	Change        string `json:"change"`
	PercentChange string `json:"percent_change"`
	Volume        string `json:"volume"`
	Code          int    `json:"code"`
	Status        string `json:"status"`
	Message       string `json:"message"`
}

// IsError reports whether the record is a provider-side error payload.
func (q Quote) IsError() bool {
	return q.Code == 401 || q.Status == "error"
}

// SeriesResponse is the raw /time_series payload.
type SeriesResponse struct {
	Status  string `json:"status"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Values  []struct {
		Datetime string `json:"datetime"`
		Open     string `json:"open"`
		High     string `json:"high"`
		Low      string `json:"low"`
		Close    string `json:"close"`
		Volume   string `json:"volume"`
	} `json:"values"`
}

// Client wraps the TwelveData REST API.
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

// NewClient constructs a TwelveData API client.
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

// Quotes fetches one or more symbols in a single multiplexed call. The API
// answers with a bare object for one symbol and a symbol-keyed map for
// several, so both shapes are handled here.
func (c *Client) Quotes(ctx context.Context, symbols []string) ([]Quote, error) {
	q := url.Values{}
	q.Set("symbol", strings.Join(symbols, ","))
	q.Set("apikey", c.apiKey)

	var raw json.RawMessage
	if err := c.http.GetJSON(ctx, providerName, c.baseURL+"/quote?"+q.Encode(), &raw); err != nil {
		return nil, err
	}

	// Single-symbol responses are a bare quote object.
	var single Quote
	if err := json.Unmarshal(raw, &single); err == nil && (single.Symbol != "" || single.IsError()) {
		return []Quote{single}, nil
	}

	// Multi-symbol responses key each quote by symbol.
	var keyed map[string]Quote
	if err := json.Unmarshal(raw, &keyed); err != nil {
		return nil, upstream.Errorf(providerName, 0, "unexpected quote payload")
	}
	quotes := make([]Quote, 0, len(keyed))
	for symbol, quote := range keyed {
		if quote.Symbol == "" {
			quote.Symbol = symbol
		}
		quotes = append(quotes, quote)
	}
	return quotes, nil
}

// TimeSeries fetches the OHLCV history for one symbol.
func (c *Client) TimeSeries(ctx context.Context, symbol, interval string) (*SeriesResponse, error) {
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("interval", interval)
	q.Set("outputsize", "100")
	q.Set("apikey", c.apiKey)

	var payload SeriesResponse
	if err := c.http.GetJSON(ctx, providerName, c.baseURL+"/time_series?"+q.Encode(), &payload); err != nil {
		return nil, err
	}
	if payload.Code == 401 || payload.Status == "error" {
		return nil, upstream.Errorf(providerName, payload.Code, "%s", payload.Message)
	}
	return &payload, nil
}

package alphavantage

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"marketdash-api/pkg/upstream"
)

const (
	providerName   = "alphavantage"
	defaultBaseURL = "https://www.alphavantage.co/query"
)

// GlobalQuote is the raw GLOBAL_QUOTE record. AlphaVantage keys fields with
// numbered labels and reports every numeric as a string.
type GlobalQuote struct {
	Symbol        string `json:"01. symbol"`
	Price         string `json:"05. price"`
	Volume        string `json:"06. volume"`
	Change        string `json:"09. change"`
	ChangePercent string `json:"10. change percent"`
}

// Client wraps the AlphaVantage query API.
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

// NewClient constructs an AlphaVantage API client. The "demo" key is valid
// for a restricted sample of symbols.
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

// GlobalQuote fetches the latest quote for one symbol. Rate-limit notices
// and explicit error payloads both surface as upstream errors.
func (c *Client) GlobalQuote(ctx context.Context, symbol string) (*GlobalQuote, error) {
	q := url.Values{}
	q.Set("function", "GLOBAL_QUOTE")
	q.Set("symbol", symbol)
	q.Set("apikey", c.apiKey)

	var payload struct {
		ErrorMessage string      `json:"Error Message"`
		Note         string      `json:"Note"`
		GlobalQuote  GlobalQuote `json:"Global Quote"`
	}
	if err := c.http.GetJSON(ctx, providerName, c.baseURL+"?"+q.Encode(), &payload); err != nil {
		return nil, err
	}
	if payload.ErrorMessage != "" {
		return nil, upstream.Errorf(providerName, 0, "%s", payload.ErrorMessage)
	}
	if payload.Note != "" {
		return nil, upstream.Errorf(providerName, 0, "API rate limit reached")
	}
	if payload.GlobalQuote.Symbol == "" {
		return nil, upstream.Errorf(providerName, 0, "no data for symbol: %s", symbol)
	}
	return &payload.GlobalQuote, nil
}

// TimeSeries fetches the series payload for one symbol. The response nests
// bars under a function-dependent "Time Series" key, located dynamically.
func (c *Client) TimeSeries(ctx context.Context, symbol, function, intradayInterval string) (map[string]map[string]string, error) {
	q := url.Values{}
	q.Set("function", function)
	q.Set("symbol", symbol)
	q.Set("apikey", c.apiKey)
	q.Set("outputsize", "compact")
	if intradayInterval != "" {
		q.Set("interval", intradayInterval)
	}

	var raw map[string]json.RawMessage
	if err := c.http.GetJSON(ctx, providerName, c.baseURL+"?"+q.Encode(), &raw); err != nil {
		return nil, err
	}
	if msg, ok := raw["Error Message"]; ok {
		var text string
		_ = json.Unmarshal(msg, &text)
		return nil, upstream.Errorf(providerName, 0, "%s", text)
	}
	if _, ok := raw["Note"]; ok {
		return nil, upstream.Errorf(providerName, 0, "API rate limit reached")
	}

	for key, value := range raw {
		if !strings.Contains(key, "Time Series") {
			continue
		}
		var series map[string]map[string]string
		if err := json.Unmarshal(value, &series); err != nil {
			return nil, upstream.Errorf(providerName, 0, "malformed time series payload")
		}
		return series, nil
	}
	return nil, upstream.Errorf(providerName, 0, "no time series data for symbol: %s", symbol)
}

package tradingeconomics

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
	"time"

	"marketdash-api/pkg/upstream"
)

const (
	providerName   = "tradingeconomics"
	defaultBaseURL = "https://api.tradingeconomics.com"
)

// RawEvent is one record of the Trading Economics calendar response.
// Actual, Forecast and Previous arrive as strings, numbers or null
// depending on the event, so they are kept raw until normalization.
type RawEvent struct {
	Date       string          `json:"Date"`
	Country    string          `json:"Country"`
	Category   string          `json:"Category"`
	Event      string          `json:"Event"`
	Reference  string          `json:"Reference"`
	Actual     json.RawMessage `json:"Actual"`
	Previous   json.RawMessage `json:"Previous"`
	Forecast   json.RawMessage `json:"Forecast"`
	TEForecast json.RawMessage `json:"TEForecast"`
	Importance int             `json:"Importance"`
}

// Client wraps the Trading Economics calendar API.
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

// NewClient constructs a Trading Economics API client.
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

// CountryCalendar fetches calendar events for one country over a date range.
func (c *Client) CountryCalendar(ctx context.Context, country string, from, to time.Time) ([]RawEvent, error) {
	endpoint := c.baseURL + "/calendar/country/" + url.PathEscape(country) +
		"/" + from.Format("2006-01-02") + "/" + to.Format("2006-01-02") +
		"?c=" + url.QueryEscape(c.apiKey)

	var payload []RawEvent
	if err := c.http.GetJSON(ctx, providerName, endpoint, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

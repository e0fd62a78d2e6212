package fred

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"marketdash-api/pkg/upstream"
)

const (
	providerName   = "fred"
	defaultBaseURL = "https://api.stlouisfed.org/fred"
)

// Observation is one raw FRED series observation. Value is "." when the
// series has no reading for that date.
type Observation struct {
	Date  string `json:"date"`
	Value string `json:"value"`
}

type observationsResponse struct {
	Observations []Observation `json:"observations"`
}

// Client wraps the FRED series API.
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

// NewClient constructs a FRED API client.
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

// Observations fetches the most recent observations of one series, newest
// first, starting no earlier than observationStart.
func (c *Client) Observations(ctx context.Context, seriesID string, observationStart time.Time, limit int) ([]Observation, error) {
	q := url.Values{}
	q.Set("series_id", seriesID)
	q.Set("api_key", c.apiKey)
	q.Set("file_type", "json")
	q.Set("sort_order", "desc")
	if limit <= 0 {
		limit = 3
	}
	q.Set("limit", strconv.Itoa(limit))
	if !observationStart.IsZero() {
		q.Set("observation_start", observationStart.Format("2006-01-02"))
	}

	var payload observationsResponse
	if err := c.http.GetJSON(ctx, providerName, c.baseURL+"/series/observations?"+q.Encode(), &payload); err != nil {
		return nil, err
	}
	return payload.Observations, nil
}

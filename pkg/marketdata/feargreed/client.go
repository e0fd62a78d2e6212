package feargreed

import (
	"context"
	"strconv"
	"strings"

	"marketdash-api/pkg/upstream"
)

const (
	providerName   = "feargreed"
	defaultBaseURL = "https://api.alternative.me"
)

// Index is the latest crypto Fear & Greed reading.
type Index struct {
	Value          int
	Classification string
}

type fngResponse struct {
	Data []struct {
		Value               string `json:"value"`
		ValueClassification string `json:"value_classification"`
	} `json:"data"`
}

// Client wraps the alternative.me Fear & Greed API. No credential is
// required.
type Client struct {
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

// NewClient constructs a Fear & Greed API client.
func NewClient(opts ...Option) *Client {
	client := &Client{
		baseURL: defaultBaseURL,
		http:    upstream.NewClient(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Latest fetches the current index reading.
func (c *Client) Latest(ctx context.Context) (*Index, error) {
	var payload fngResponse
	if err := c.http.GetJSON(ctx, providerName, c.baseURL+"/fng/", &payload); err != nil {
		return nil, err
	}
	if len(payload.Data) == 0 {
		return nil, upstream.Errorf(providerName, 0, "empty fear & greed payload")
	}
	value, err := strconv.Atoi(payload.Data[0].Value)
	if err != nil {
		return nil, upstream.Errorf(providerName, 0, "malformed index value: %s", payload.Data[0].Value)
	}
	return &Index{
		Value:          value,
		Classification: payload.Data[0].ValueClassification,
	}, nil
}

package coingecko

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"marketdash-api/pkg/upstream"
)

const (
	providerName   = "coingecko"
	defaultBaseURL = "https://api.coingecko.com/api/v3"
)

// MarketRow is one raw entry of the /coins/markets response. Numeric fields
// are pointers so a missing value fails validation instead of reading as 0.
type MarketRow struct {
	ID               string   `json:"id" validate:"required"`
	Symbol           string   `json:"symbol" validate:"required"`
	Name             string   `json:"name" validate:"required"`
	CurrentPrice     *float64 `json:"current_price" validate:"required"`
	PriceChange24h   *float64 `json:"price_change_24h" validate:"required"`
	PriceChangePct24 *float64 `json:"price_change_percentage_24h" validate:"required"`
	TotalVolume      *float64 `json:"total_volume"`
	MarketCap        *float64 `json:"market_cap"`
}

// ChartPayload mirrors /coins/{id}/market_chart: arrays of [timestamp, value].
type ChartPayload struct {
	Prices       [][2]float64 `json:"prices"`
	TotalVolumes [][2]float64 `json:"total_volumes"`
}

// GlobalData is the subset of /global consumed by the crypto stats endpoint.
type GlobalData struct {
	Data struct {
		MarketCapPercentage map[string]float64 `json:"market_cap_percentage"`
		TotalMarketCap      map[string]float64 `json:"total_market_cap"`
	} `json:"data"`
}

// Client wraps the CoinGecko REST API. No credential is required.
type Client struct {
	baseURL string
	http    *upstream.Client
}

// Option configures a new Client.
type Option func(*Client)

// WithBaseURL overrides the production API endpoint.
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

// NewClient constructs a CoinGecko API client.
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

// Markets fetches quotes for the given coin ids in one multiplexed call.
func (c *Client) Markets(ctx context.Context, ids []string) ([]MarketRow, error) {
	q := url.Values{}
	q.Set("vs_currency", "usd")
	q.Set("ids", strings.Join(ids, ","))
	q.Set("order", "market_cap_desc")
	q.Set("per_page", "250")
	q.Set("page", "1")
	q.Set("sparkline", "false")
	q.Set("price_change_percentage", "24h")

	var rows []MarketRow
	if err := c.http.GetJSON(ctx, providerName, c.baseURL+"/coins/markets?"+q.Encode(), &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// MarketsPage fetches one page of the full market listing ordered by market
// cap, used by the top-movers feature.
func (c *Client) MarketsPage(ctx context.Context, perPage, page int) ([]MarketRow, error) {
	q := url.Values{}
	q.Set("vs_currency", "usd")
	q.Set("order", "market_cap_desc")
	q.Set("per_page", fmt.Sprintf("%d", perPage))
	q.Set("page", fmt.Sprintf("%d", page))
	q.Set("sparkline", "false")
	q.Set("price_change_percentage", "24h")

	var rows []MarketRow
	if err := c.http.GetJSON(ctx, providerName, c.baseURL+"/coins/markets?"+q.Encode(), &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// MarketChart fetches the price/volume series for one coin id.
func (c *Client) MarketChart(ctx context.Context, id string, days int, interval string) (*ChartPayload, error) {
	q := url.Values{}
	q.Set("vs_currency", "usd")
	q.Set("days", fmt.Sprintf("%d", days))
	if interval != "" {
		q.Set("interval", interval)
	}

	var payload ChartPayload
	u := fmt.Sprintf("%s/coins/%s/market_chart?%s", c.baseURL, url.PathEscape(id), q.Encode())
	if err := c.http.GetJSON(ctx, providerName, u, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Global fetches aggregate market statistics.
func (c *Client) Global(ctx context.Context) (*GlobalData, error) {
	var payload GlobalData
	if err := c.http.GetJSON(ctx, providerName, c.baseURL+"/global", &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

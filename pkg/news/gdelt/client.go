package gdelt

import (
	"context"
	"net/url"
	"strings"
	"time"

	"marketdash-api/pkg/upstream"
)

const (
	providerName   = "gdelt"
	defaultBaseURL = "https://api.gdeltproject.org/api/v2/doc/doc"

	// maxRecords is how much we over-fetch so post-filters run against the
	// full result set before the caller's limit is applied.
	maxRecords = "250"
)

// RawArticle is one record of the GDELT 2.1 artlist response.
type RawArticle struct {
	URL           string `json:"url"`
	Title         string `json:"title"`
	SeenDate      string `json:"seendate"`
	SocialImage   string `json:"socialimage"`
	Domain        string `json:"domain"`
	Language      string `json:"language"`
	SourceCountry string `json:"sourcecountry"`
}

type docResponse struct {
	Articles []RawArticle `json:"articles"`
}

// Client wraps the GDELT document search API. No credential is required.
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

// NewClient constructs a GDELT API client.
func NewClient(opts ...Option) *Client {
	client := &Client{
		baseURL: defaultBaseURL,
		http:    upstream.NewClient(upstream.WithUserAgent("marketdash/1.0")),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Search runs an article-list query. The language filter is applied
// provider-side via sourcelang; callers still post-filter defensively.
func (c *Client) Search(ctx context.Context, query string, dateFrom, dateTo time.Time) ([]RawArticle, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("mode", "artlist")
	q.Set("maxrecords", maxRecords)
	q.Set("format", "json")
	q.Set("sort", "datedesc")
	q.Set("sourcelang", "eng")
	if !dateFrom.IsZero() {
		q.Set("startdatetime", FormatQueryDate(dateFrom))
	}
	if !dateTo.IsZero() {
		q.Set("enddatetime", FormatQueryDate(dateTo))
	}

	var payload docResponse
	if err := c.http.GetJSON(ctx, providerName, c.baseURL+"?"+q.Encode(), &payload); err != nil {
		return nil, err
	}
	return payload.Articles, nil
}

// FormatQueryDate renders GDELT's bespoke compact query timestamp:
// year through second concatenated with no separators, in UTC.
func FormatQueryDate(t time.Time) string {
	return t.UTC().Format("20060102150405")
}

// ParseSeenDate converts GDELT's YYYYMMDDThhmmssZ seendate to a time.
func ParseSeenDate(seendate string) (time.Time, error) {
	return time.Parse("20060102T150405Z", seendate)
}

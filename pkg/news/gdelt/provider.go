package gdelt

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/zeromicro/go-zero/core/logx"

	"marketdash-api/pkg/news"
)

const (
	defaultQuery = "market finance"
	defaultLimit = 50
)

var validateArticle = validator.New().Struct

// Provider adapts the GDELT document API to the news.Source contract.
type Provider struct {
	client *Client
}

// New constructs the GDELT news adapter.
func New(opts ...Option) *Provider {
	return &Provider{client: NewClient(opts...)}
}

func (p *Provider) Name() string { return providerName }

// FetchNews searches GDELT and normalizes the result. Query terms and
// tickers are OR-joined; with neither present a generic market query is
// used. Non-English records slip past sourcelang occasionally, so a
// defensive language post-filter runs before the limit is applied.
func (p *Provider) FetchNews(ctx context.Context, params news.Params) ([]news.Article, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	raw, err := p.client.Search(ctx, buildQuery(params), params.DateFrom, params.DateTo)
	if err != nil {
		return nil, err
	}

	articles := make([]news.Article, 0, limit)
	for _, record := range raw {
		if record.Language != "" && !strings.EqualFold(record.Language, "english") {
			continue
		}
		article, err := normalizeArticle(record, params.Tickers)
		if err != nil {
			logx.WithContext(ctx).Infof("gdelt: dropping article url=%s err=%v", record.URL, err)
			continue
		}
		articles = append(articles, *article)
		if len(articles) == limit {
			break
		}
	}
	return articles, nil
}

// buildQuery OR-joins the free-text query and any ticker symbols so a hit on
// either is enough.
func buildQuery(params news.Params) string {
	terms := make([]string, 0, 1+len(params.Tickers))
	if q := strings.TrimSpace(params.Query); q != "" {
		terms = append(terms, q)
	}
	for _, ticker := range params.Tickers {
		if t := strings.TrimSpace(ticker); t != "" {
			terms = append(terms, t)
		}
	}
	if len(terms) == 0 {
		return defaultQuery
	}
	return strings.Join(terms, " OR ")
}

func normalizeArticle(record RawArticle, tickers []string) (*news.Article, error) {
	published, err := ParseSeenDate(record.SeenDate)
	if err != nil {
		return nil, err
	}
	article := news.Article{
		ID:          fmt.Sprintf("gdelt-%s-%s", record.URL, record.SeenDate),
		Title:       record.Title,
		URL:         record.URL,
		Source:      record.Domain,
		PublishedAt: published,
		ImageURL:    record.SocialImage,
		Tags:        news.ExtractTags(record.Title),
		Tickers:     matchTickers(record.Title, tickers),
	}
	if err := validateArticle(article); err != nil {
		return nil, err
	}
	return &article, nil
}

// matchTickers keeps only the requested tickers actually mentioned in the
// title.
func matchTickers(title string, tickers []string) []string {
	matched := make([]string, 0, len(tickers))
	upper := strings.ToUpper(title)
	for _, ticker := range tickers {
		if t := strings.ToUpper(strings.TrimSpace(ticker)); t != "" && strings.Contains(upper, t) {
			matched = append(matched, t)
		}
	}
	return matched
}

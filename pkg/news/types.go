package news

import (
	"context"
	"time"
)

// Sentiment labels an article's tone. Providers in scope supply none, so the
// field stays empty and serializes as null.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// Article is one normalized news item. ID is a stable composite of source
// URL and publish timestamp, unique for deduplication. Instances are
// immutable after construction and never persisted.
type Article struct {
	ID          string     `json:"id" validate:"required"`
	Title       string     `json:"title" validate:"required"`
	Summary     string     `json:"summary,omitempty"`
	URL         string     `json:"url" validate:"required,url"`
	Source      string     `json:"source" validate:"required"`
	PublishedAt time.Time  `json:"publishedAt"`
	ImageURL    string     `json:"imageUrl,omitempty" validate:"omitempty,url"`
	Tags        []string   `json:"tags"`
	Tickers     []string   `json:"tickers"`
	Sentiment   *Sentiment `json:"sentiment"`
}

// Params scope a news search. An empty query and ticker list is replaced by
// a generic default so the provider call never goes out empty-handed.
type Params struct {
	Query    string
	Tickers  []string
	Limit    int
	DateFrom time.Time
	DateTo   time.Time
}

// Source is the contract implemented by every news adapter.
type Source interface {
	Name() string
	FetchNews(ctx context.Context, params Params) ([]Article, error)
}

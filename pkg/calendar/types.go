package calendar

import (
	"context"
	"time"
)

// Impact grades how market-moving an economic event is expected to be.
type Impact string

const (
	ImpactLow    Impact = "low"
	ImpactMedium Impact = "medium"
	ImpactHigh   Impact = "high"
)

// Event is one economic indicator observation or scheduled release. Actual,
// Forecast and Previous stay stringified because providers report mixed
// numeric and text formats ("5.2%", "1.2M"). Instances are immutable after
// construction.
type Event struct {
	ID       string    `json:"id" validate:"required"`
	Date     time.Time `json:"date"`
	Country  string    `json:"country" validate:"required"`
	Event    string    `json:"event" validate:"required"`
	Impact   Impact    `json:"impact" validate:"oneof=low medium high"`
	Actual   string    `json:"actual,omitempty"`
	Forecast string    `json:"forecast,omitempty"`
	Previous string    `json:"previous,omitempty"`
	Currency string    `json:"currency,omitempty"`
}

// Params scope a calendar query. Zero-value fields mean provider defaults.
type Params struct {
	DateFrom  time.Time
	DateTo    time.Time
	Countries []string
	Impact    Impact
}

// Source is the contract implemented by every calendar adapter.
type Source interface {
	Name() string
	FetchEvents(ctx context.Context, params Params) ([]Event, error)
}

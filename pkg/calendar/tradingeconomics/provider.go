package tradingeconomics

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/zeromicro/go-zero/core/logx"

	"marketdash-api/pkg/calendar"
)

const (
	defaultCountry = "united states"
	defaultWindow  = 7 * 24 * time.Hour
)

var validateEvent = validator.New().Struct

// Provider adapts the genuine Trading Economics calendar to the
// calendar.Source contract.
type Provider struct {
	client *Client
	now    func() time.Time
}

type providerConfig struct {
	now        func() time.Time
	clientOpts []Option
}

// ProviderOption customises the Trading Economics provider.
type ProviderOption func(*providerConfig)

// WithNow replaces the wall clock used for the default date window.
func WithNow(now func() time.Time) ProviderOption {
	return func(cfg *providerConfig) {
		if now != nil {
			cfg.now = now
		}
	}
}

// WithClientOptions passes options to the underlying API client.
func WithClientOptions(opts ...Option) ProviderOption {
	return func(cfg *providerConfig) {
		cfg.clientOpts = append(cfg.clientOpts, opts...)
	}
}

// New constructs the Trading Economics calendar adapter.
func New(apiKey string, opts ...ProviderOption) *Provider {
	cfg := &providerConfig{now: time.Now}
	for _, opt := range opts {
		opt(cfg)
	}
	return &Provider{
		client: NewClient(apiKey, cfg.clientOpts...),
		now:    cfg.now,
	}
}

func (p *Provider) Name() string { return "TradingEconomics" }

// FetchEvents lists upcoming calendar events. The date range defaults to
// today through seven days out; countries default to the United States.
// Malformed records are dropped with a warning; output sorts soonest first.
func (p *Provider) FetchEvents(ctx context.Context, params calendar.Params) ([]calendar.Event, error) {
	from := params.DateFrom
	if from.IsZero() {
		from = p.now()
	}
	to := params.DateTo
	if to.IsZero() {
		to = from.Add(defaultWindow)
	}
	country := defaultCountry
	if len(params.Countries) > 0 && strings.TrimSpace(params.Countries[0]) != "" {
		country = strings.ToLower(strings.TrimSpace(params.Countries[0]))
	}

	raw, err := p.client.CountryCalendar(ctx, country, from, to)
	if err != nil {
		return nil, err
	}

	events := make([]calendar.Event, 0, len(raw))
	for _, record := range raw {
		event, err := normalizeEvent(record)
		if err != nil {
			logx.WithContext(ctx).Infof("tradingeconomics: dropping event=%q err=%v", record.Event, err)
			continue
		}
		events = append(events, *event)
	}
	sort.Slice(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})
	return events, nil
}

func normalizeEvent(record RawEvent) (*calendar.Event, error) {
	date, err := parseEventDate(record.Date)
	if err != nil {
		return nil, err
	}
	forecast := rawString(record.Forecast)
	if forecast == "" {
		forecast = rawString(record.TEForecast)
	}
	event := calendar.Event{
		ID:       fmt.Sprintf("te-%s-%s", record.Date, record.Event),
		Date:     date,
		Country:  record.Country,
		Event:    record.Event,
		Impact:   mapImportance(record.Importance),
		Actual:   rawString(record.Actual),
		Forecast: forecast,
		Previous: rawString(record.Previous),
		Currency: "USD",
	}
	if err := validateEvent(event); err != nil {
		return nil, err
	}
	return &event, nil
}

// mapImportance projects the 1-3 Importance scale onto impact levels.
func mapImportance(importance int) calendar.Impact {
	switch importance {
	case 3:
		return calendar.ImpactHigh
	case 2:
		return calendar.ImpactMedium
	default:
		return calendar.ImpactLow
	}
}

// rawString renders a string/number/null JSON value as a plain string.
func rawString(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

func parseEventDate(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable event date: %q", value)
}

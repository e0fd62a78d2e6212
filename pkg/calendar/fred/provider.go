package fred

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"marketdash-api/pkg/calendar"
)

const (
	// observationsPerSeries keeps enough history per series to backfill the
	// previous value for every emitted event.
	observationsPerSeries = 3
	// historyMonths reaches back far enough that even quarterly series
	// return an older observation to backfill Previous from.
	historyMonths = 6
)

type indicatorSeries struct {
	ID     string
	Name   string
	Impact calendar.Impact
}

// indicatorSet is the fixed series list the simulated calendar is built
// from. FRED has no calendar endpoint, so one synthetic event is emitted per
// recent observation of each of these.
var indicatorSet = []indicatorSeries{
	{"UNRATE", "Unemployment Rate", calendar.ImpactHigh},
	{"CPIAUCSL", "CPI", calendar.ImpactHigh},
	{"GDP", "GDP", calendar.ImpactHigh},
	{"FEDFUNDS", "Fed Funds Rate", calendar.ImpactHigh},
	{"DGS10", "10-Year Treasury", calendar.ImpactMedium},
	{"DGS2", "2-Year Treasury", calendar.ImpactMedium},
	{"DCOILWTICO", "WTI Crude Oil", calendar.ImpactLow},
	{"DTWEXBGS", "Trade-Weighted Dollar Index", calendar.ImpactLow},
}

// Provider simulates an economic calendar from FRED indicator observations.
type Provider struct {
	client *Client
	now    func() time.Time
}

type providerConfig struct {
	now        func() time.Time
	clientOpts []Option
}

// ProviderOption customises the FRED provider.
type ProviderOption func(*providerConfig)

// WithNow replaces the wall clock (tests pin the week window).
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

// New constructs the FRED calendar adapter.
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

func (p *Provider) Name() string { return "FRED" }

// FetchEvents fans out one observations call per indicator series and emits
// a synthetic event per observation inside the current week, Monday 00:00
// local through now. Previous is backfilled from the next-older observation
// of the same series. Failed series are dropped; output sorts newest first.
func (p *Provider) FetchEvents(ctx context.Context, params calendar.Params) ([]calendar.Event, error) {
	now := p.now()
	weekStart := startOfWeek(now)
	// The query window starts months before the displayed week: backfilling
	// Previous needs observations older than weekStart, which monthly and
	// quarterly series would otherwise never return.
	historyStart := weekStart.AddDate(0, -historyMonths, 0)

	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		events []calendar.Event
	)
	for _, series := range indicatorSet {
		wg.Add(1)
		go func(series indicatorSeries) {
			defer wg.Done()
			obs, err := p.client.Observations(ctx, series.ID, historyStart, observationsPerSeries)
			if err != nil {
				logx.WithContext(ctx).Infof("fred: dropping series=%s err=%v", series.ID, err)
				return
			}
			emitted := seriesEvents(series, obs, weekStart, now)
			mu.Lock()
			events = append(events, emitted...)
			mu.Unlock()
		}(series)
	}
	wg.Wait()

	sort.Slice(events, func(i, j int) bool {
		return events[i].Date.After(events[j].Date)
	})
	return events, nil
}

// seriesEvents converts a series' newest-first observations to events,
// keeping only those whose release time falls inside [weekStart, now].
func seriesEvents(series indicatorSeries, obs []Observation, weekStart, now time.Time) []calendar.Event {
	events := make([]calendar.Event, 0, len(obs))
	for i, observation := range obs {
		date, err := releaseTime(observation.Date)
		if err != nil || observation.Value == "." {
			continue
		}
		if date.Before(weekStart) || date.After(now) {
			continue
		}
		event := calendar.Event{
			ID:       fmt.Sprintf("fred-%s-%s", series.ID, observation.Date),
			Date:     date,
			Country:  "US",
			Event:    series.Name,
			Impact:   series.Impact,
			Actual:   observation.Value,
			Currency: "USD",
		}
		if i+1 < len(obs) {
			event.Previous = obs[i+1].Value
		}
		events = append(events, event)
	}
	return events
}

// releaseTime places an observation at the typical 14:30 UTC release slot.
func releaseTime(date string) (time.Time, error) {
	return time.Parse(time.RFC3339, date+"T14:30:00Z")
}

// startOfWeek returns Monday 00:00 in t's location.
func startOfWeek(t time.Time) time.Time {
	daysSinceMonday := (int(t.Weekday()) + 6) % 7
	year, month, day := t.AddDate(0, 0, -daysSinceMonday).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

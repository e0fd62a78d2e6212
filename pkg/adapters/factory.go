package adapters

import (
	"strings"
	"sync"

	"marketdash-api/pkg/calendar"
	"marketdash-api/pkg/calendar/fred"
	"marketdash-api/pkg/calendar/tradingeconomics"
	"marketdash-api/pkg/marketdata"
	"marketdash-api/pkg/marketdata/alphavantage"
	"marketdash-api/pkg/marketdata/coingecko"
	"marketdash-api/pkg/marketdata/finnhub"
	"marketdash-api/pkg/marketdata/polygon"
	"marketdash-api/pkg/marketdata/twelvedata"
	"marketdash-api/pkg/news"
	"marketdash-api/pkg/news/gdelt"
	"marketdash-api/pkg/upstream"
)

// demoKey is AlphaVantage's documented keyless-trial credential.
const demoKey = "demo"

// Factory selects and constructs provider adapters from explicit names and
// credential availability. Selection is a pure function of its inputs;
// construction is memoized per (category, name) only when no per-user keys
// are in play, since user keys can change between requests.
type Factory struct {
	env Credentials

	mu       sync.Mutex
	market   map[string]marketdata.Source
	news     map[string]news.Source
	calendar map[string]calendar.Source
}

// NewFactory builds a Factory around the service-level credential set.
func NewFactory(env Credentials) *Factory {
	return &Factory{
		env:      env,
		market:   make(map[string]marketdata.Source),
		news:     make(map[string]news.Source),
		calendar: make(map[string]calendar.Source),
	}
}

// Market resolves a market-data adapter. An explicit name wins outright.
// Otherwise crypto always selects CoinGecko, and stocks walk the key chain
// twelvedata, polygon, finnhub (a user key counts the same as a service
// key), falling back to AlphaVantage which works on the demo credential.
func (f *Factory) Market(category marketdata.Category, name string, user Credentials) (marketdata.Source, error) {
	keys := user.overlay(f.env)

	if name == "" {
		switch {
		case category == marketdata.CategoryCrypto:
			name = "coingecko"
		case keys.TwelveData != "":
			name = "twelvedata"
		case keys.Polygon != "":
			name = "polygon"
		case keys.Finnhub != "":
			name = "finnhub"
		default:
			name = "alphavantage"
		}
	}
	name = strings.ToLower(name)

	if user.IsZero() {
		f.mu.Lock()
		defer f.mu.Unlock()
		memoKey := string(category) + "-" + name
		if source, ok := f.market[memoKey]; ok {
			return source, nil
		}
		source, err := buildMarket(name, keys)
		if err != nil {
			return nil, err
		}
		f.market[memoKey] = source
		return source, nil
	}
	return buildMarket(name, keys)
}

func buildMarket(name string, keys Credentials) (marketdata.Source, error) {
	switch name {
	case "coingecko":
		return coingecko.New(), nil
	case "twelvedata":
		if keys.TwelveData == "" {
			return nil, upstream.ConfigErrorf("twelvedata API key not configured")
		}
		return twelvedata.New(keys.TwelveData), nil
	case "polygon":
		if keys.Polygon == "" {
			return nil, upstream.ConfigErrorf("polygon API key not configured")
		}
		return polygon.New(keys.Polygon), nil
	case "finnhub":
		if keys.Finnhub == "" {
			return nil, upstream.ConfigErrorf("finnhub API key not configured")
		}
		return finnhub.New(keys.Finnhub), nil
	case "alphavantage":
		key := keys.AlphaVantage
		if key == "" {
			key = demoKey
		}
		return alphavantage.New(key), nil
	default:
		return nil, upstream.ConfigErrorf("unknown market data adapter: %s", name)
	}
}

// News resolves a news adapter. GDELT is the keyless default.
func (f *Factory) News(name string) (news.Source, error) {
	if name == "" {
		name = "gdelt"
	}
	name = strings.ToLower(name)

	f.mu.Lock()
	defer f.mu.Unlock()
	if source, ok := f.news[name]; ok {
		return source, nil
	}
	var source news.Source
	switch name {
	case "gdelt":
		source = gdelt.New()
	default:
		return nil, upstream.ConfigErrorf("unknown news adapter: %s", name)
	}
	f.news[name] = source
	return source, nil
}

// Calendar resolves a calendar adapter. Without an explicit name the richer
// Trading Economics feed wins when its key is present, then the FRED
// indicator simulation; with neither key configured the request fails.
func (f *Factory) Calendar(name string, user Credentials) (calendar.Source, error) {
	keys := user.overlay(f.env)

	if name == "" {
		switch {
		case keys.TradingEconomics != "":
			name = "tradingeconomics"
		case keys.FRED != "":
			name = "fred"
		default:
			return nil, upstream.ConfigErrorf("no calendar provider configured")
		}
	}
	name = strings.ToLower(name)

	if user.IsZero() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if source, ok := f.calendar[name]; ok {
			return source, nil
		}
		source, err := buildCalendar(name, keys)
		if err != nil {
			return nil, err
		}
		f.calendar[name] = source
		return source, nil
	}
	return buildCalendar(name, keys)
}

func buildCalendar(name string, keys Credentials) (calendar.Source, error) {
	switch name {
	case "tradingeconomics":
		if keys.TradingEconomics == "" {
			return nil, upstream.ConfigErrorf("tradingeconomics API key not configured")
		}
		return tradingeconomics.New(keys.TradingEconomics), nil
	case "fred":
		if keys.FRED == "" {
			return nil, upstream.ConfigErrorf("FRED API key not configured")
		}
		return fred.New(keys.FRED), nil
	default:
		return nil, upstream.ConfigErrorf("unknown calendar adapter: %s", name)
	}
}

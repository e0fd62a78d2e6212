package adapters

// Credentials is the provider API key bag resolved for one request. Fields
// left empty fall back to the service-level keys; a fully zero value means
// the caller is anonymous.
type Credentials struct {
	TwelveData       string
	Polygon          string
	Finnhub          string
	AlphaVantage     string
	FRED             string
	TradingEconomics string
	OpenAI           string
}

// IsZero reports whether no key is set at all.
func (c Credentials) IsZero() bool {
	return c == Credentials{}
}

// overlay returns c with empty fields filled from fallback.
func (c Credentials) overlay(fallback Credentials) Credentials {
	if c.TwelveData == "" {
		c.TwelveData = fallback.TwelveData
	}
	if c.Polygon == "" {
		c.Polygon = fallback.Polygon
	}
	if c.Finnhub == "" {
		c.Finnhub = fallback.Finnhub
	}
	if c.AlphaVantage == "" {
		c.AlphaVantage = fallback.AlphaVantage
	}
	if c.FRED == "" {
		c.FRED = fallback.FRED
	}
	if c.TradingEconomics == "" {
		c.TradingEconomics = fallback.TradingEconomics
	}
	if c.OpenAI == "" {
		c.OpenAI = fallback.OpenAI
	}
	return c
}

package insight

import "time"

// Direction is the expected market direction of a driver.
type Direction string

const (
	DirectionBullish Direction = "bullish"
	DirectionBearish Direction = "bearish"
	DirectionNeutral Direction = "neutral"
)

// MarketDriver is one AI-generated market-moving theme distilled from recent
// news. Confidence is the model's self-reported 0-1 certainty and is
// informational only.
type MarketDriver struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Impact         string    `json:"impact"`
	Direction      Direction `json:"direction"`
	AffectedAssets []string  `json:"affectedAssets"`
	Confidence     float64   `json:"confidence"`
	Timeframe      string    `json:"timeframe"`
	Sources        []string  `json:"sources,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

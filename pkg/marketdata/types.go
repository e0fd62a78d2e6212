package marketdata

import "time"

// AssetType classifies the instrument behind a quote.
type AssetType string

const (
	AssetCrypto    AssetType = "crypto"
	AssetStock     AssetType = "stock"
	AssetForex     AssetType = "forex"
	AssetCommodity AssetType = "commodity"
	AssetIndex     AssetType = "index"
	AssetFutures   AssetType = "futures"
)

// Ticker is one point-in-time quote normalized across providers. Instances
// are immutable after construction and never persisted.
type Ticker struct {
	Symbol        string    `json:"symbol" validate:"required"`
	Name          string    `json:"name" validate:"required"`
	Type          AssetType `json:"type" validate:"required,oneof=crypto stock forex commodity index futures"`
	Price         float64   `json:"price"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"changePercent"`
	Volume        float64   `json:"volume,omitempty"`
	MarketCap     float64   `json:"marketCap,omitempty"`
	LastUpdated   time.Time `json:"lastUpdated"`
}

// ChartPoint is one OHLCV sample of a historical series. Timestamp is epoch
// milliseconds. Price-only feeds set all four price fields to the single
// known price; that is a documented degradation, not an error.
type ChartPoint struct {
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume,omitempty"`
}

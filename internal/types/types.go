// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package types

import (
	"marketdash-api/pkg/calendar"
	"marketdash-api/pkg/insight"
	"marketdash-api/pkg/marketdata"
	"marketdash-api/pkg/news"
)

type MarketReq struct {
	Symbols string `form:"symbols"`
	Type    string `form:"type,optional"`
	Adapter string `form:"adapter,optional"`
	UserId  string `header:"X-User-Id,optional"`
}

type MarketResp struct {
	Success bool                `json:"success"`
	Data    []marketdata.Ticker `json:"data"`
	Count   int                 `json:"count"`
}

type ChartReq struct {
	Symbol   string `form:"symbol"`
	Interval string `form:"interval,optional,default=1d"`
	From     string `form:"from,optional"`
	To       string `form:"to,optional"`
	Adapter  string `form:"adapter,optional"`
	UserId   string `header:"X-User-Id,optional"`
}

type ChartResp struct {
	Success bool                    `json:"success"`
	Data    []marketdata.ChartPoint `json:"data"`
	Count   int                     `json:"count"`
	Adapter string                  `json:"adapter"`
}

type NewsReq struct {
	Search  string `form:"search,optional"`
	Tickers string `form:"tickers,optional"`
	Tags    string `form:"tags,optional"`
	Sources string `form:"sources,optional"`
	Limit   int    `form:"limit,optional,default=50"`
}

type NewsResp struct {
	Success bool           `json:"success"`
	Data    []news.Article `json:"data"`
	Count   int            `json:"count"`
	Adapter string         `json:"adapter"`
}

type CalendarReq struct {
	DateFrom  string `form:"dateFrom,optional"`
	DateTo    string `form:"dateTo,optional"`
	Countries string `form:"countries,optional"`
	Impact    string `form:"impact,optional"`
	Adapter   string `form:"adapter,optional"`
	UserId    string `header:"X-User-Id,optional"`
}

type CalendarResp struct {
	Success bool             `json:"success"`
	Data    []calendar.Event `json:"data"`
	Count   int              `json:"count"`
	Adapter string           `json:"adapter"`
}

type CryptoStats struct {
	FearGreedIndex int     `json:"fearGreedIndex"`
	FearGreedValue string  `json:"fearGreedValue"`
	BtcDominance   float64 `json:"btcDominance"`
	TotalMarketCap float64 `json:"totalMarketCap"`
}

type CryptoStatsResp struct {
	Success bool        `json:"success"`
	Data    CryptoStats `json:"data"`
}

type TopMovers struct {
	Gainers []marketdata.Ticker `json:"gainers"`
	Losers  []marketdata.Ticker `json:"losers"`
}

type TopMoversResp struct {
	Success bool      `json:"success"`
	Data    TopMovers `json:"data"`
}

type IndexQuote struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Value         float64 `json:"value"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	LastUpdated   string  `json:"lastUpdated"`
}

type IndicesResp struct {
	Success bool         `json:"success"`
	Data    []IndexQuote `json:"data"`
	Count   int          `json:"count"`
}

type AiDriversReq struct {
	Timeframe string   `json:"timeframe,optional,default=week"`
	Assets    []string `json:"assets,optional"`
	UserId    string   `header:"X-User-Id,optional"`
}

type AiDriversResp struct {
	Success bool                   `json:"success"`
	Data    []insight.MarketDriver `json:"data"`
	Count   int                    `json:"count"`
	Source  string                 `json:"source"`
}

type ErrorResp struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

package logic

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	cachekit "marketdash-api/internal/cache"
	"marketdash-api/internal/svc"
	"marketdash-api/internal/types"
	"marketdash-api/pkg/marketdata"
)

// topMoversUniverse is how deep into the market-cap ranking the movers scan
// reaches; topMoversCount is how many names each side keeps.
const (
	topMoversUniverse = 500
	topMoversCount    = 10
)

type TopMoversLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewTopMoversLogic(ctx context.Context, svcCtx *svc.ServiceContext) *TopMoversLogic {
	return &TopMoversLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// TopMovers ranks the top of the crypto market by 24h percentage change and
// returns the ten biggest gainers and losers.
func (l *TopMoversLogic) TopMovers() (*types.TopMoversResp, error) {
	movers, err := cachekit.FetchWith(l.ctx, l.svcCtx.Cache, cachekit.TopMoversKey(), cachekit.TopMoversTTL(l.svcCtx.TTL), l.fetch)
	if err != nil {
		return nil, err
	}
	return &types.TopMoversResp{Success: true, Data: movers}, nil
}

func (l *TopMoversLogic) fetch(ctx context.Context) (types.TopMovers, error) {
	rows, err := l.svcCtx.CoinGecko.MarketsPage(ctx, topMoversUniverse, 1)
	if err != nil {
		return types.TopMovers{}, err
	}

	now := time.Now().UTC()
	tickers := make([]marketdata.Ticker, 0, len(rows))
	for _, row := range rows {
		if row.CurrentPrice == nil || row.PriceChange24h == nil || row.PriceChangePct24 == nil {
			continue
		}
		ticker := marketdata.Ticker{
			Symbol:        strings.ToUpper(row.Symbol),
			Name:          row.Name,
			Type:          marketdata.AssetCrypto,
			Price:         *row.CurrentPrice,
			Change:        *row.PriceChange24h,
			ChangePercent: *row.PriceChangePct24,
			LastUpdated:   now,
		}
		if row.TotalVolume != nil {
			ticker.Volume = *row.TotalVolume
		}
		if row.MarketCap != nil {
			ticker.MarketCap = *row.MarketCap
		}
		tickers = append(tickers, ticker)
	}

	sort.Slice(tickers, func(i, j int) bool {
		return tickers[i].ChangePercent > tickers[j].ChangePercent
	})

	count := topMoversCount
	if count > len(tickers) {
		count = len(tickers)
	}
	gainers := append([]marketdata.Ticker(nil), tickers[:count]...)
	losers := make([]marketdata.Ticker, 0, count)
	for i := 0; i < count; i++ {
		losers = append(losers, tickers[len(tickers)-1-i])
	}

	return types.TopMovers{Gainers: gainers, Losers: losers}, nil
}

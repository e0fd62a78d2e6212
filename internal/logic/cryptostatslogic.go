package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	cachekit "marketdash-api/internal/cache"
	"marketdash-api/internal/svc"
	"marketdash-api/internal/types"
	"marketdash-api/pkg/upstream"
)

type CryptoStatsLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewCryptoStatsLogic(ctx context.Context, svcCtx *svc.ServiceContext) *CryptoStatsLogic {
	return &CryptoStatsLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// CryptoStats merges CoinGecko's global aggregates with the Fear & Greed
// index into one dashboard payload.
func (l *CryptoStatsLogic) CryptoStats() (*types.CryptoStatsResp, error) {
	stats, err := cachekit.FetchWith(l.ctx, l.svcCtx.Cache, cachekit.CryptoStatsKey(), cachekit.CryptoStatsTTL(l.svcCtx.TTL), l.fetch)
	if err != nil {
		return nil, err
	}
	return &types.CryptoStatsResp{Success: true, Data: stats}, nil
}

func (l *CryptoStatsLogic) fetch(ctx context.Context) (types.CryptoStats, error) {
	global, err := l.svcCtx.CoinGecko.Global(ctx)
	if err != nil {
		return types.CryptoStats{}, err
	}
	index, err := l.svcCtx.FearGreed.Latest(ctx)
	if err != nil {
		return types.CryptoStats{}, err
	}

	btcDominance, ok := global.Data.MarketCapPercentage["btc"]
	if !ok {
		return types.CryptoStats{}, upstream.Errorf("coingecko", 0, "global payload missing btc dominance")
	}
	return types.CryptoStats{
		FearGreedIndex: index.Value,
		FearGreedValue: index.Classification,
		BtcDominance:   btcDominance,
		TotalMarketCap: global.Data.TotalMarketCap["usd"],
	}, nil
}

package logic

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"

	cachekit "marketdash-api/internal/cache"
	"marketdash-api/internal/svc"
	"marketdash-api/internal/types"
	"marketdash-api/pkg/marketdata"
)

type MarketLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewMarketLogic(ctx context.Context, svcCtx *svc.ServiceContext) *MarketLogic {
	return &MarketLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// Market splits the requested symbols by asset category, fans out one batch
// call per category's adapter, and merges the partial results. A failing
// category batch degrades that category to zero results rather than failing
// the request.
func (l *MarketLogic) Market(req *types.MarketReq) (*types.MarketResp, error) {
	symbols := splitList(req.Symbols)
	if len(symbols) == 0 {
		return nil, errors.New("no symbols provided")
	}

	byCategory := make(map[marketdata.Category][]string, 2)
	for _, symbol := range symbols {
		category := marketdata.CategoryStocks
		switch req.Type {
		case "":
			category = marketdata.Classify(symbol)
		case string(marketdata.CategoryCrypto):
			category = marketdata.CategoryCrypto
		}
		byCategory[category] = append(byCategory[category], symbol)
	}

	user := l.svcCtx.CredStore.Resolve(l.ctx, req.UserId)

	merged := make([]marketdata.Ticker, 0, len(symbols))
	for _, category := range []marketdata.Category{marketdata.CategoryCrypto, marketdata.CategoryStocks} {
		group := byCategory[category]
		if len(group) == 0 {
			continue
		}
		source, err := l.svcCtx.Factory.Market(category, req.Adapter, user)
		if err != nil {
			return nil, err
		}
		tickers, err := l.fetchBatch(source, category, group, user.IsZero())
		if err != nil {
			l.Errorf("market: %s batch failed: %v", category, err)
			continue
		}
		merged = append(merged, tickers...)
	}

	return &types.MarketResp{
		Success: true,
		Data:    merged,
		Count:   len(merged),
	}, nil
}

// fetchBatch wraps the adapter's batch call in the cache-aside helper. Per
// user keyed requests bypass the shared cache entirely.
func (l *MarketLogic) fetchBatch(source marketdata.Source, category marketdata.Category, symbols []string, cacheable bool) ([]marketdata.Ticker, error) {
	fetch := func(ctx context.Context) ([]marketdata.Ticker, error) {
		return source.FetchMultipleTickers(ctx, symbols)
	}
	if !cacheable {
		return fetch(l.ctx)
	}

	sorted := append([]string(nil), symbols...)
	sort.Strings(sorted)
	key := cachekit.MarketBatchKey(source.Name(), strings.Join(sorted, ","))
	return cachekit.FetchWith(l.ctx, l.svcCtx.Cache, key, cachekit.QuoteTTL(l.svcCtx.TTL), fetch)
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

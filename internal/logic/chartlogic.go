package logic

import (
	"context"
	"errors"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	cachekit "marketdash-api/internal/cache"
	"marketdash-api/internal/svc"
	"marketdash-api/internal/types"
	"marketdash-api/pkg/marketdata"
)

type ChartLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewChartLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ChartLogic {
	return &ChartLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// Chart fetches the historical series for one symbol through the adapter
// selected by the symbol's asset category. Points arrive sorted ascending
// by timestamp; an upstream failure yields an empty series, not an error.
func (l *ChartLogic) Chart(req *types.ChartReq) (*types.ChartResp, error) {
	if req.Symbol == "" {
		return nil, errors.New("no symbol provided")
	}
	interval := req.Interval
	if interval == "" {
		interval = "1d"
	}
	from, err := parseTimeParam(req.From)
	if err != nil {
		return nil, err
	}
	to, err := parseTimeParam(req.To)
	if err != nil {
		return nil, err
	}

	user := l.svcCtx.CredStore.Resolve(l.ctx, req.UserId)
	source, err := l.svcCtx.Factory.Market(marketdata.Classify(req.Symbol), req.Adapter, user)
	if err != nil {
		return nil, err
	}

	fetch := func(ctx context.Context) ([]marketdata.ChartPoint, error) {
		return source.FetchChartData(ctx, req.Symbol, interval, from, to)
	}

	var points []marketdata.ChartPoint
	if user.IsZero() && req.From == "" && req.To == "" {
		key := cachekit.ChartKey(source.Name(), req.Symbol, interval)
		points, err = cachekit.FetchWith(l.ctx, l.svcCtx.Cache, key, cachekit.ChartTTL(l.svcCtx.TTL), fetch)
	} else {
		points, err = fetch(l.ctx)
	}
	if err != nil {
		return nil, err
	}

	return &types.ChartResp{
		Success: true,
		Data:    points,
		Count:   len(points),
		Adapter: source.Name(),
	}, nil
}

func parseTimeParam(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("invalid time parameter: " + raw)
}

package logic

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	cachekit "marketdash-api/internal/cache"
	"marketdash-api/internal/svc"
	"marketdash-api/internal/types"
	"marketdash-api/pkg/calendar/fred"
	"marketdash-api/pkg/upstream"
)

type indexSeries struct {
	ID     string
	Name   string
	Symbol string
}

// indexSet maps FRED series to the familiar ticker symbols the dashboard
// displays them under.
var indexSet = []indexSeries{
	{"SP500", "S&P 500", "^GSPC"},
	{"NASDAQCOM", "NASDAQ Composite", "^IXIC"},
	{"DJIA", "Dow Jones Industrial Average", "^DJI"},
	{"VIXCLS", "VIX (Volatility Index)", "^VIX"},
	{"DTWEXBGS", "US Dollar Index (DXY)", "DXY"},
	{"DGS10", "10-Year Treasury Yield", "^TNX"},
	{"DGS2", "2-Year Treasury Yield", "^IRX"},
	{"DCOILWTICO", "WTI Crude Oil", "CL=F"},
}

type IndicesLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewIndicesLogic(ctx context.Context, svcCtx *svc.ServiceContext) *IndicesLogic {
	return &IndicesLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// Indices quotes the macro index set from each series' last two FRED
// observations, fanned out concurrently. Series that fail or have no data
// are dropped from the snapshot.
func (l *IndicesLogic) Indices() (*types.IndicesResp, error) {
	if l.svcCtx.Config.Keys.FRED == "" {
		return nil, upstream.ConfigErrorf("FRED API key not configured")
	}

	quotes, err := cachekit.FetchWith(l.ctx, l.svcCtx.Cache, cachekit.IndicesKey(), cachekit.IndicesTTL(l.svcCtx.TTL), l.fetch)
	if err != nil {
		return nil, err
	}
	return &types.IndicesResp{
		Success: true,
		Data:    quotes,
		Count:   len(quotes),
	}, nil
}

func (l *IndicesLogic) fetch(ctx context.Context) ([]types.IndexQuote, error) {
	client := fred.NewClient(l.svcCtx.Config.Keys.FRED)

	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		quotes = make([]types.IndexQuote, 0, len(indexSet))
	)
	for _, series := range indexSet {
		wg.Add(1)
		go func(series indexSeries) {
			defer wg.Done()
			quote, err := quoteSeries(ctx, client, series)
			if err != nil {
				logx.WithContext(ctx).Infof("indices: dropping series=%s err=%v", series.ID, err)
				return
			}
			mu.Lock()
			quotes = append(quotes, *quote)
			mu.Unlock()
		}(series)
	}
	wg.Wait()
	return quotes, nil
}

// quoteSeries derives value and change from a series' two newest
// observations; with only one observation the change is zero.
func quoteSeries(ctx context.Context, client *fred.Client, series indexSeries) (*types.IndexQuote, error) {
	obs, err := client.Observations(ctx, series.ID, time.Time{}, 2)
	if err != nil {
		return nil, err
	}
	if len(obs) == 0 {
		return nil, upstream.Errorf("fred", 0, "no observations for series: %s", series.ID)
	}

	value, err := strconv.ParseFloat(obs[0].Value, 64)
	if err != nil {
		return nil, err
	}
	previous := value
	if len(obs) > 1 {
		if p, err := strconv.ParseFloat(obs[1].Value, 64); err == nil {
			previous = p
		}
	}

	change := value - previous
	changePercent := 0.0
	if previous != 0 {
		changePercent = change / previous * 100
	}
	return &types.IndexQuote{
		Symbol:        series.Symbol,
		Name:          series.Name,
		Value:         value,
		Change:        change,
		ChangePercent: changePercent,
		LastUpdated:   obs[0].Date,
	}, nil
}

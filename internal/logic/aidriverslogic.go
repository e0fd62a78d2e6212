package logic

import (
	"context"
	"errors"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"

	"marketdash-api/internal/svc"
	"marketdash-api/internal/types"
	"marketdash-api/pkg/news"
)

// driverNewsLimit bounds how many recent articles feed the model context.
const driverNewsLimit = 20

type AiDriversLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewAiDriversLogic(ctx context.Context, svcCtx *svc.ServiceContext) *AiDriversLogic {
	return &AiDriversLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// AiDrivers builds a news context from recent headlines and asks the
// insight generator for market drivers. A per-user OpenAI key takes
// precedence over the service key.
func (l *AiDriversLogic) AiDrivers(req *types.AiDriversReq) (*types.AiDriversResp, error) {
	user := l.svcCtx.CredStore.Resolve(l.ctx, req.UserId)

	source, err := l.svcCtx.Factory.News("")
	if err != nil {
		return nil, err
	}
	articles, err := source.FetchNews(l.ctx, news.Params{
		Tickers: req.Assets,
		Limit:   driverNewsLimit,
	})
	if err != nil {
		return nil, err
	}
	if len(articles) == 0 {
		return nil, errors.New("no recent news available for analysis")
	}

	var newsContext strings.Builder
	for _, article := range articles {
		newsContext.WriteString(article.Title)
		if article.Summary != "" {
			newsContext.WriteString(": ")
			newsContext.WriteString(article.Summary)
		}
		newsContext.WriteByte('\n')
	}

	drivers, err := l.svcCtx.Insight.GenerateDrivers(l.ctx, newsContext.String(), req.Timeframe, user.OpenAI)
	if err != nil {
		return nil, err
	}

	return &types.AiDriversResp{
		Success: true,
		Data:    drivers,
		Count:   len(drivers),
		Source:  "openai",
	}, nil
}

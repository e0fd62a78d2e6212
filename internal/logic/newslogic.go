package logic

import (
	"context"
	"strconv"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"

	cachekit "marketdash-api/internal/cache"
	"marketdash-api/internal/svc"
	"marketdash-api/internal/types"
	"marketdash-api/pkg/news"
)

type NewsLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewNewsLogic(ctx context.Context, svcCtx *svc.ServiceContext) *NewsLogic {
	return &NewsLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// News fetches articles through the news adapter and applies the tag and
// source post-filters on the normalized result.
func (l *NewsLogic) News(req *types.NewsReq) (*types.NewsResp, error) {
	source, err := l.svcCtx.Factory.News("")
	if err != nil {
		return nil, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 50
	}
	params := news.Params{
		Query:   req.Search,
		Tickers: splitList(req.Tickers),
		Limit:   limit,
	}

	key := cachekit.NewsKey(source.Name(), newsSignature(params))
	articles, err := cachekit.FetchWith(l.ctx, l.svcCtx.Cache, key, cachekit.NewsTTL(l.svcCtx.TTL), func(ctx context.Context) ([]news.Article, error) {
		return source.FetchNews(ctx, params)
	})
	if err != nil {
		return nil, err
	}

	if tags := splitList(req.Tags); len(tags) > 0 {
		articles = filterArticles(articles, func(a news.Article) bool {
			return containsAny(a.Tags, tags)
		})
	}
	if sources := splitList(req.Sources); len(sources) > 0 {
		articles = filterArticles(articles, func(a news.Article) bool {
			return containsFold(sources, a.Source)
		})
	}

	return &types.NewsResp{
		Success: true,
		Data:    articles,
		Count:   len(articles),
		Adapter: source.Name(),
	}, nil
}

func newsSignature(params news.Params) string {
	return strings.Join([]string{
		params.Query,
		strings.Join(params.Tickers, ","),
		strconv.Itoa(params.Limit),
	}, "|")
}

func filterArticles(articles []news.Article, keep func(news.Article) bool) []news.Article {
	filtered := articles[:0:0]
	for _, article := range articles {
		if keep(article) {
			filtered = append(filtered, article)
		}
	}
	return filtered
}

func containsAny(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if strings.EqualFold(h, w) {
				return true
			}
		}
	}
	return false
}

func containsFold(list []string, value string) bool {
	for _, item := range list {
		if strings.EqualFold(item, value) {
			return true
		}
	}
	return false
}

// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest"

	"marketdash-api/internal/svc"
)

func RegisterHandlers(server *rest.Server, serverCtx *svc.ServiceContext) {
	server.AddRoutes(
		[]rest.Route{
			{
				Method:  http.MethodGet,
				Path:    "/api/market",
				Handler: MarketHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/api/chart",
				Handler: ChartHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/api/news",
				Handler: NewsHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/api/calendar",
				Handler: CalendarHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/api/crypto/stats",
				Handler: CryptoStatsHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/api/crypto/top-movers",
				Handler: TopMoversHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/api/indices",
				Handler: IndicesHandler(serverCtx),
			},
			{
				Method:  http.MethodPost,
				Path:    "/api/ai/drivers",
				Handler: AiDriversHandler(serverCtx),
			},
		},
	)
}

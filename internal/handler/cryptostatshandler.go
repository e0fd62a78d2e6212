// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest/httpx"

	"marketdash-api/internal/logic"
	"marketdash-api/internal/svc"
)

func CryptoStatsHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l := logic.NewCryptoStatsLogic(r.Context(), svcCtx)
		resp, err := l.CryptoStats()
		if err != nil {
			respondError(w, r, err)
			return
		}
		httpx.OkJsonCtx(r.Context(), w, resp)
	}
}

package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest/httpx"

	"marketdash-api/internal/types"
	"marketdash-api/pkg/upstream"
)

// respondError maps the error taxonomy onto HTTP statuses: configuration
// problems are the caller's fault, upstream failures are a bad gateway, and
// anything else is internal.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case upstream.IsConfig(err):
		status = http.StatusBadRequest
	case upstream.IsUpstream(err):
		status = http.StatusBadGateway
	}
	httpx.WriteJsonCtx(r.Context(), w, status, types.ErrorResp{
		Success: false,
		Error:   err.Error(),
	})
}

package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/choreboard/pkg/httpcontext"
	summaryUC "github.com/fastygo/choreboard/usecase/summary"
)

type SummaryHandler struct {
	baseHandler
	uc *summaryUC.UseCase
}

func NewSummaryHandler(uc *summaryUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *SummaryHandler {
	return &SummaryHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Completion statistics over a trailing window
// @Tags summary
// @Param period query string false "weekly (default) or monthly"
// @Router /api/summary [get]
func (h *SummaryHandler) GetSummary(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	summary, err := h.uc.Summary(stdCtx, string(ctx.QueryArgs().Peek("period")))
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, summary)
}

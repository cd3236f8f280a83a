package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/choreboard/api/transport"
	"github.com/fastygo/choreboard/pkg/httpcontext"
	participantUC "github.com/fastygo/choreboard/usecase/participant"
)

type ParticipantHandler struct {
	baseHandler
	uc *participantUC.UseCase
}

func NewParticipantHandler(uc *participantUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *ParticipantHandler {
	return &ParticipantHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List participants by name
// @Tags participants
// @Router /api/participants [get]
func (h *ParticipantHandler) ListParticipants(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	participants, err := h.uc.List(stdCtx)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.ParticipantsResponse{Participants: participants})
}

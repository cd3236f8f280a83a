package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/choreboard/api/transport"
	"github.com/fastygo/choreboard/domain"
	"github.com/fastygo/choreboard/pkg/httpcontext"
	taskUC "github.com/fastygo/choreboard/usecase/task"
)

type TaskHandler struct {
	baseHandler
	uc *taskUC.UseCase
}

func NewTaskHandler(uc *taskUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List active tasks by next due time
// @Tags tasks
// @Router /api/tasks [get]
func (h *TaskHandler) ListTasks(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tasks, err := h.uc.ListTasks(stdCtx)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.TasksResponse{Tasks: tasks})
}

// @Summary Create task
// @Tags tasks
// @Router /api/tasks [post]
func (h *TaskHandler) CreateTask(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	var req transport.CreateTaskRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondError(stdCtx, ctx, domain.ErrInvalidPayload)
		return
	}

	task, err := h.uc.CreateTask(stdCtx, taskUC.CreateInput{
		Title:          req.Title,
		IsOneAndDone:   req.IsOneAndDone,
		RecurrenceType: req.RecurrenceTypeValue(),
		RecurrenceDays: req.RecurrenceDays,
	})
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusCreated, transport.TaskResponse{Task: task})
}

// @Summary Record a completion
// @Tags tasks
// @Router /api/tasks/{id}/complete [post]
func (h *TaskHandler) CompleteTask(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	var req transport.CompleteTaskRequest
	if body := ctx.PostBody(); len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			h.respondError(stdCtx, ctx, domain.ErrInvalidPayload)
			return
		}
	}

	id, _ := ctx.UserValue("id").(string)
	if err := h.uc.CompleteTask(stdCtx, id, req.ParticipantID); err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.OKResponse{OK: true})
}

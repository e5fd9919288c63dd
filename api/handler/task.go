package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/internhub/backend/api/transport"
	"github.com/internhub/backend/domain"
	"github.com/internhub/backend/pkg/httpcontext"
	"github.com/internhub/backend/repository"
	taskUC "github.com/internhub/backend/usecase/taskflow"
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

// @Summary List tasks of an application
// @Tags tasks
// @Router /api/v1/applications/{id}/tasks [get]
func (h *TaskHandler) List(ctx *fasthttp.RequestCtx) {
	applicationID, ok := pathID(ctx)
	if !ok {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing application id", nil))
		return
	}

	filter := repository.TaskFilter{
		ApplicationID: applicationID,
		Status:        string(ctx.QueryArgs().Peek("status")),
		Limit:         parseInt(string(ctx.QueryArgs().Peek("limit")), 50),
		Offset:        parseInt(string(ctx.QueryArgs().Peek("offset")), 0),
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tasks, err := h.uc.List(stdCtx, filter)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, tasks)
}

// @Summary Assign a task to a hired application
// @Tags tasks
// @Router /api/v1/applications/{id}/tasks [post]
func (h *TaskHandler) Create(ctx *fasthttp.RequestCtx) {
	if _, ok := h.requireRole(ctx, RoleUnit); !ok {
		return
	}
	applicationID, ok := pathID(ctx)
	if !ok {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing application id", nil))
		return
	}

	var req transport.TaskCreateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	input := taskUC.CreateInput{
		ApplicationID: applicationID,
		Title:         req.Title,
		Description:   req.Description,
		Color:         req.Color,
	}
	var bad bool
	input.StartDate, bad = parseOptionalDate(req.StartDate)
	if bad {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "start_date must be RFC3339", nil))
		return
	}
	input.EndDate, bad = parseOptionalDate(req.EndDate)
	if bad {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "end_date must be RFC3339", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.Create(stdCtx, input)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Submit work on a task
// @Tags tasks
// @Router /api/v1/tasks/{id}/submit [post]
func (h *TaskHandler) Submit(ctx *fasthttp.RequestCtx) {
	if _, ok := h.requireRole(ctx, RoleCandidate); !ok {
		return
	}
	taskID, ok := pathID(ctx)
	if !ok {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing task id", nil))
		return
	}

	var req transport.TaskSubmitRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	task, err := h.uc.Submit(stdCtx, taskID, req.SubmissionLink)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, task)
}

// @Summary Review a submitted task
// @Tags tasks
// @Router /api/v1/tasks/{id}/review [post]
func (h *TaskHandler) Review(ctx *fasthttp.RequestCtx) {
	if _, ok := h.requireRole(ctx, RoleUnit); !ok {
		return
	}
	taskID, ok := pathID(ctx)
	if !ok {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing task id", nil))
		return
	}

	var req transport.TaskReviewRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}
	decision, ok := taskUC.ParseDecision(req.Decision)
	if !ok {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "decision must be accept or redo", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	task, err := h.uc.Review(stdCtx, taskID, decision, req.Remarks)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, task)
}

// @Summary Completion summary over an application's tasks
// @Tags tasks
// @Router /api/v1/applications/{id}/progress [get]
func (h *TaskHandler) Progress(ctx *fasthttp.RequestCtx) {
	applicationID, ok := pathID(ctx)
	if !ok {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing application id", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	progress, err := h.uc.Progress(stdCtx, applicationID)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, progress)
}

// @Summary Calendar grid of an application's tasks
// @Tags tasks
// @Router /api/v1/applications/{id}/calendar [get]
func (h *TaskHandler) Calendar(ctx *fasthttp.RequestCtx) {
	applicationID, ok := pathID(ctx)
	if !ok {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing application id", nil))
		return
	}

	reference := time.Now()
	if raw := string(ctx.QueryArgs().Peek("reference")); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "reference must be RFC3339", nil))
			return
		}
		reference = parsed
	}

	view := domain.ViewMonth
	if raw := string(ctx.QueryArgs().Peek("view")); raw != "" {
		parsed, ok := domain.ParseCalendarView(raw)
		if !ok {
			h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "view must be month or week", nil))
			return
		}
		view = parsed
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	grid, err := h.uc.Calendar(stdCtx, applicationID, reference, view)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, grid)
}

func parseOptionalDate(raw string) (*time.Time, bool) {
	if raw == "" {
		return nil, false
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, true
	}
	return &parsed, false
}

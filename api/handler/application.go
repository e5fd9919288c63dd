package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/internhub/backend/api/transport"
	"github.com/internhub/backend/domain"
	"github.com/internhub/backend/pkg/httpcontext"
	"github.com/internhub/backend/repository"
	applicationUC "github.com/internhub/backend/usecase/applicationflow"
	interviewUC "github.com/internhub/backend/usecase/interview"
)

type ApplicationHandler struct {
	baseHandler
	applications *applicationUC.UseCase
	interviews   *interviewUC.UseCase
}

func NewApplicationHandler(applications *applicationUC.UseCase, interviews *interviewUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *ApplicationHandler {
	return &ApplicationHandler{
		baseHandler:  newBaseHandler(adapter, logger),
		applications: applications,
		interviews:   interviews,
	}
}

// @Summary List applications
// @Tags applications
// @Router /api/v1/applications [get]
func (h *ApplicationHandler) List(ctx *fasthttp.RequestCtx) {
	filter := repository.ApplicationFilter{
		CandidateID:  string(ctx.QueryArgs().Peek("candidate_id")),
		InternshipID: string(ctx.QueryArgs().Peek("internship_id")),
		Status:       string(ctx.QueryArgs().Peek("status")),
		Limit:        parseInt(string(ctx.QueryArgs().Peek("limit")), 50),
		Offset:       parseInt(string(ctx.QueryArgs().Peek("offset")), 0),
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	applications, err := h.applications.List(stdCtx, filter)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, applications)
}

// @Summary Fetch one application
// @Tags applications
// @Router /api/v1/applications/{id} [get]
func (h *ApplicationHandler) Get(ctx *fasthttp.RequestCtx) {
	id, ok := pathID(ctx)
	if !ok {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing application id", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	app, err := h.applications.Get(stdCtx, id)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, app)
}

// @Summary Move an application to a new status
// @Tags applications
// @Router /api/v1/applications/{id}/transition [post]
func (h *ApplicationHandler) Transition(ctx *fasthttp.RequestCtx) {
	if _, ok := h.requireRole(ctx, RoleUnit); !ok {
		return
	}
	id, ok := pathID(ctx)
	if !ok {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing application id", nil))
		return
	}

	var req transport.TransitionRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}
	target, ok := domain.ParseApplicationStatus(req.Target)
	if !ok {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "unknown application status", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	result, err := h.applications.Transition(stdCtx, id, target)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.NewSuccess(result.Application, transport.NotificationMeta(result.NotificationFailed)))
}

// @Summary Schedule or reschedule an interview
// @Tags applications
// @Router /api/v1/applications/{id}/interview [post]
func (h *ApplicationHandler) ScheduleInterview(ctx *fasthttp.RequestCtx) {
	if _, ok := h.requireRole(ctx, RoleUnit); !ok {
		return
	}
	id, ok := pathID(ctx)
	if !ok {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing application id", nil))
		return
	}

	var req transport.InterviewRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}
	scheduledAt, err := time.Parse(time.RFC3339, req.ScheduledAt)
	if err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "scheduled_at must be RFC3339", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	result, err := h.interviews.Schedule(stdCtx, id, scheduledAt, req.Details)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	payload := map[string]interface{}{
		"application":    result.Application,
		"interview":      result.Interview,
		"interview_date": result.InterviewDate,
	}
	h.respondJSON(ctx, http.StatusOK, transport.NewSuccess(payload, transport.NotificationMeta(result.NotificationFailed)))
}

func pathID(ctx *fasthttp.RequestCtx) (string, bool) {
	id, ok := ctx.UserValue("id").(string)
	return id, ok && id != ""
}

func parseInt(value string, fallback int) int {
	if v, err := strconv.Atoi(value); err == nil {
		return v
	}
	return fallback
}

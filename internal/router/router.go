package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/internhub/backend/api/handler"
)

type Handlers struct {
	Application *apiHandler.ApplicationHandler
	Task        *apiHandler.TaskHandler
	Health      *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Application lifecycle
	r.GET("/api/v1/applications", authMiddleware(handlers.Application.List))
	r.GET("/api/v1/applications/{id}", authMiddleware(handlers.Application.Get))
	r.POST("/api/v1/applications/{id}/transition", authMiddleware(handlers.Application.Transition))
	r.POST("/api/v1/applications/{id}/interview", authMiddleware(handlers.Application.ScheduleInterview))

	// Task lifecycle and derived views
	r.GET("/api/v1/applications/{id}/tasks", authMiddleware(handlers.Task.List))
	r.POST("/api/v1/applications/{id}/tasks", authMiddleware(handlers.Task.Create))
	r.POST("/api/v1/tasks/{id}/submit", authMiddleware(handlers.Task.Submit))
	r.POST("/api/v1/tasks/{id}/review", authMiddleware(handlers.Task.Review))
	r.GET("/api/v1/applications/{id}/progress", authMiddleware(handlers.Task.Progress))
	r.GET("/api/v1/applications/{id}/calendar", authMiddleware(handlers.Task.Calendar))

	return r
}

package router

import (
	"github.com/fasthttp/router"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	apiHandler "github.com/fastygo/choreboard/api/handler"
)

type Handlers struct {
	Task        *apiHandler.TaskHandler
	Summary     *apiHandler.SummaryHandler
	Participant *apiHandler.ParticipantHandler
	Health      *apiHandler.HealthHandler
}

// Options toggles optional routes.
type Options struct {
	Metrics bool
}

func New(handlers Handlers, opts Options) *router.Router {
	r := router.New()
	r.SaveMatchedRoutePath = true

	if handlers.Health != nil {
		r.GET("/health", handlers.Health.Check)
	}
	if opts.Metrics {
		r.GET("/metrics", fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler()))
	}

	r.GET("/api/participants", handlers.Participant.ListParticipants)
	r.GET("/api/summary", handlers.Summary.GetSummary)

	r.GET("/api/tasks", handlers.Task.ListTasks)
	r.POST("/api/tasks", handlers.Task.CreateTask)
	r.POST("/api/tasks/{id}/complete", handlers.Task.CompleteTask)

	return r
}

// Chain wraps h with middlewares; the first one is outermost.
func Chain(h fasthttp.RequestHandler, middlewares ...func(fasthttp.RequestHandler) fasthttp.RequestHandler) fasthttp.RequestHandler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

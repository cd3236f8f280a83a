package middleware

import (
	"fmt"
	"time"

	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/choreboard/internal/metrics"
	"github.com/fastygo/choreboard/pkg/httpcontext"
)

// AccessLog logs every request and records it in the HTTP metrics. Requests are labeled
// with their route pattern, so the router must save matched paths.
func AccessLog(logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			started := time.Now()
			reqID := httpcontext.RequestID(ctx)

			next(ctx)

			elapsed := time.Since(started)
			status := ctx.Response.StatusCode()
			route := routeLabel(ctx)
			method := string(ctx.Method())
			metrics.RecordRequest(route, method, status, elapsed.Seconds())

			fields := []zap.Field{
				zap.String("request_id", reqID),
				zap.String("method", method),
				zap.String("path", string(ctx.Path())),
				zap.Int("status", status),
				zap.Duration("duration", elapsed),
			}
			if status >= fasthttp.StatusInternalServerError {
				logger.Error("request failed", fields...)
				return
			}
			logger.Info("request handled", fields...)
		}
	}
}

// Recover turns a panic into a 500 response.
func Recover(logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("panic in handler",
						zap.String("path", string(ctx.Path())),
						zap.String("panic", fmt.Sprint(rec)),
						zap.Stack("stack"))
					ctx.ResetBody()
					ctx.Response.Header.SetContentType("application/json")
					ctx.SetStatusCode(fasthttp.StatusInternalServerError)
					ctx.SetBodyString(`{"error":"internal error","code":"INTERNAL"}`)
				}
			}()
			next(ctx)
		}
	}
}

func routeLabel(ctx *fasthttp.RequestCtx) string {
	if route, ok := ctx.UserValue(router.MatchedRoutePathParam).(string); ok && route != "" {
		return route
	}
	return "unmatched"
}

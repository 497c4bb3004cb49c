package httpkit

import (
	"time"

	"residences/internal/platform/metrics"
	"residences/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack
type StackOptions struct {
	Timeout time.Duration
	Slow    time.Duration
	CORS    middleware.CORSOptions
	Metrics *metrics.Metrics
}

// CommonStack is the middleware every versioned API router starts with
// access log and recovery sit inside the request id so both can report it
func CommonStack(o StackOptions) []middleware.Middleware {
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	stack := middleware.Defaults(o.Timeout)
	return append(stack,
		middleware.AccessLog(middleware.AccessLogOptions{Slow: o.Slow, Metrics: o.Metrics}),
		middleware.RecoverJSON(o.Metrics),
		middleware.CORS(o.CORS),
	)
}

// Auth authenticates requests through p
func Auth(p middleware.AuthPort) middleware.Middleware { return middleware.Auth(p) }

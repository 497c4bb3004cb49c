package middleware

import (
	"net/http"
	"time"

	"residences/internal/platform/logger"
	"residences/internal/platform/metrics"
	pnet "residences/internal/platform/net"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// AccessLogOptions configures AccessLog
type AccessLogOptions struct {
	// Slow requests log at warn, zero disables
	Slow time.Duration
	// Metrics receives request counts and latency when set
	Metrics *metrics.Metrics
}

// AccessLog writes one zerolog line per request and records it in Prometheus
func AccessLog(opt AccessLogOptions) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			ctx := logger.WithRequest(r.Context(), pnet.RequestID(r.Context()), "")
			r = r.WithContext(ctx)
			next.ServeHTTP(ww, r)

			elapsed := time.Since(start)
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			if m := opt.Metrics; m != nil {
				m.RequestsTotal.WithLabelValues(r.Method, metrics.StatusClass(status)).Inc()
				m.RequestDuration.WithLabelValues(r.Method).Observe(elapsed.Seconds())
			}

			log := logger.C(r.Context())
			evt := log.Info()
			if opt.Slow > 0 && elapsed >= opt.Slow {
				evt = log.Warn()
			}
			evt.Int("status", status).
				Dur("elapsed", elapsed).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("bytes", ww.BytesWritten()).
				Msg("request done")
		})
	}
}

package middleware

import (
	"net/http"
	"runtime/debug"

	perr "residences/internal/platform/errors"
	"residences/internal/platform/logger"
	"residences/internal/platform/metrics"
	pnet "residences/internal/platform/net"
)

// RecoverJSON turns handler panics into a 500 envelope and logs the stack
// m may be nil
func RecoverJSON(m *metrics.Metrics) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if v == http.ErrAbortHandler {
					panic(v)
				}
				if m != nil {
					m.PanicsTotal.Inc()
				}
				logger.C(r.Context()).Error().
					Interface("panic", v).
					Bytes("stack", debug.Stack()).
					Msg("panic recovered")

				if id := pnet.RequestID(r.Context()); id != "" {
					w.Header().Set("X-Request-Id", id)
				}
				writeFailure(w, r, perr.PanicErrf("internal error"))
			}()
			next.ServeHTTP(w, r)
		})
	}
}

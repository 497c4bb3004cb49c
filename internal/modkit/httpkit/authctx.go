package httpkit

import (
	"net/http"

	"github.com/google/uuid"

	perr "residences/internal/platform/errors"
	"residences/internal/platform/logger"
	pnet "residences/internal/platform/net"
	phttp "residences/internal/platform/net/http"
	"residences/internal/platform/net/middleware"
)

// User returns the authenticated user id
func User(r *http.Request) (string, error) {
	uid := pnet.UserID(r.Context())
	if uid == "" {
		return "", perr.Unauthorizedf("missing bearer token")
	}
	return uid, nil
}

// Residence returns the residence id the request is scoped to
func Residence(r *http.Request) (string, error) {
	rid := pnet.ResidenceID(r.Context())
	if rid == "" {
		return "", perr.WithField(perr.New(perr.ErrorCodeInvalidArgument, "residence id required"), "residence_id")
	}
	return rid, nil
}

// ResidenceScope reads the residence id path parameter, checks it is a uuid
// and stores it on the context for handlers and request logs
func ResidenceScope(param string) middleware.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := URLParam(r, param)
			id, err := uuid.Parse(raw)
			if err != nil {
				phttp.WriteError(w, r, perr.WithField(perr.InvalidArgf("invalid residence id %q", raw), "residence_id"))
				return
			}
			rid := id.String()
			ctx := pnet.WithRequest(r.Context(), "", rid)
			ctx = logger.WithRequest(ctx, pnet.RequestID(ctx), rid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

package httpkit

import (
	"crypto/subtle"
	"net/http"
	"strings"

	perr "residences/internal/platform/errors"
)

// TokenFunc resolves a bearer token to a user id
type TokenFunc func(token string) (userID string, err error)

// Port implements middleware.AuthPort over the Authorization header
type Port struct {
	parse TokenFunc
}

// NewPortFunc builds a Port from a token resolver
func NewPortFunc(fn TokenFunc) *Port {
	return &Port{parse: fn}
}

// Parse reads "Authorization: Bearer <token>" and resolves it
// every failure is unauthorized, resolver errors are not echoed
func (p *Port) Parse(r *http.Request) (string, error) {
	raw, err := Bearer(r)
	if err != nil {
		return "", err
	}
	if p == nil || p.parse == nil {
		return "", perr.Unauthorizedf("invalid bearer token")
	}
	uid, err := p.parse(raw)
	if err != nil || uid == "" {
		return "", perr.Unauthorizedf("invalid bearer token")
	}
	return uid, nil
}

// StaticTokens resolves tokens from a fixed token to user id table,
// e.g. CORE_API_TOKENS="3f9c...=<user uuid>,..."
func StaticTokens(table map[string]string) TokenFunc {
	type entry struct{ token, user string }
	entries := make([]entry, 0, len(table))
	for tok, uid := range table {
		entries = append(entries, entry{token: tok, user: uid})
	}
	return func(token string) (string, error) {
		for _, e := range entries {
			if subtle.ConstantTimeCompare([]byte(e.token), []byte(token)) == 1 {
				return e.user, nil
			}
		}
		return "", perr.Unauthorizedf("unknown token")
	}
}

// Bearer returns the raw token of a Bearer Authorization header
func Bearer(r *http.Request) (string, error) {
	authz := strings.TrimSpace(r.Header.Get("Authorization"))
	const prefix = "bearer "
	if len(authz) <= len(prefix) || !strings.EqualFold(authz[:len(prefix)], prefix) {
		return "", perr.Unauthorizedf("missing bearer token")
	}
	raw := strings.TrimSpace(authz[len(prefix):])
	if raw == "" {
		return "", perr.Unauthorizedf("missing bearer token")
	}
	return raw, nil
}

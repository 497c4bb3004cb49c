// Package net carries request scoped identity and the response envelope
// shared by every transport
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type ctxKey string

const (
	keyResidenceID ctxKey = "residence_id"
	keyUserID      ctxKey = "user_id"
)

// WithRequest stores the request id where chi's middleware looks for it,
// plus the residence the request is scoped to
func WithRequest(ctx context.Context, reqID, residenceID string) context.Context {
	if reqID != "" {
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	if residenceID != "" {
		ctx = context.WithValue(ctx, keyResidenceID, residenceID)
	}
	return ctx
}

// WithUser stores the authenticated user id
func WithUser(ctx context.Context, userID string) context.Context {
	if userID == "" {
		return ctx
	}
	return context.WithValue(ctx, keyUserID, userID)
}

// RequestID returns the request id, empty when absent
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }

// ResidenceID returns the residence the request is scoped to, empty when absent
func ResidenceID(ctx context.Context) string {
	v, _ := ctx.Value(keyResidenceID).(string)
	return v
}

// UserID returns the authenticated user id, empty when absent
func UserID(ctx context.Context) string {
	v, _ := ctx.Value(keyUserID).(string)
	return v
}

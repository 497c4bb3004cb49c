package net

import (
	"net/http"

	perr "residences/internal/platform/errors"
)

// Envelope is the body of every JSON response
type Envelope struct {
	StatusCode int             `json:"status_code"`
	Status     string          `json:"status"`
	Code       *perr.ErrorCode `json:"code,omitempty"`
	Error      string          `json:"error,omitempty"`
	Field      string          `json:"field,omitempty"`
	RequestID  string          `json:"request_id,omitempty"`
	Data       any             `json:"data,omitempty"`
}

// Success wraps data in a status envelope
func Success(status int, data any, reqID string) Envelope {
	return Envelope{
		StatusCode: status,
		Status:     http.StatusText(status),
		RequestID:  reqID,
		Data:       data,
	}
}

// Failure maps err to its status and envelope, a nil err is a 200
func Failure(err error, reqID string) (int, Envelope) {
	if err == nil {
		return http.StatusOK, Success(http.StatusOK, nil, reqID)
	}
	status, w := perr.HTTP(err)
	code := w.Code
	return status, Envelope{
		StatusCode: status,
		Status:     http.StatusText(status),
		Code:       &code,
		Error:      w.Message,
		Field:      w.Field,
		RequestID:  reqID,
	}
}

package httpkit

import (
	"net/http"

	phttp "residences/internal/platform/net/http"
)

// PostJSON mounts a POST handler with a decoded and validated T body
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	phttp.PostJSON(r, path, h)
}

// Get mounts a body less GET handler
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	phttp.GetJSON(r, path, h)
}

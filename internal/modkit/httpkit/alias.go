// Package httpkit is the HTTP toolkit modules build handlers with
// modules import it instead of the platform http package directly
package httpkit

import (
	"net/http"

	phttp "residences/internal/platform/net/http"
)

type (
	// Response is a return style handler result
	Response = phttp.Response

	// Handler is the platform handler type
	Handler = phttp.Handler

	// Router is the platform router seam
	Router = phttp.Router
)

// OK returns a 200 response
func OK(data any) Response { return phttp.OK(data) }

// Created returns a 201 response
func Created(data any) Response { return phttp.Created(data) }

// Error returns a response whose status and envelope come from err
func Error(err error) Response { return phttp.Error(err) }

// Handle adapts a Response returning function
func Handle(fn func(*http.Request) Response) Handler { return phttp.Handle(fn) }

// URLParam returns a captured path parameter
func URLParam(r *http.Request, name string) string { return phttp.URLParam(r, name) }

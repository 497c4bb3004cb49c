// Package module defines the contract feature modules implement and a small
// port registry the composition root uses to cross wire them
package module

import (
	phttp "residences/internal/platform/net/http"
)

// Module mounts routes and exposes a module defined port set
// kept apart from modkit so a module can import it without a cycle
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}

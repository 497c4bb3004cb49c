// Package module wires meta endpoints into the API
package module

import (
	"time"

	"residences/internal/modkit"
	"residences/internal/modkit/httpkit"
	"residences/internal/modkit/module"
	metahttp "residences/internal/services/api/meta/http"
)

// Module implements modkit.Module
type Module struct {
	b       modkit.Built
	deps    modkit.Deps
	service string
	started time.Time
}

// New constructs the meta module, service names the binary in payloads
func New(deps modkit.Deps, service string, opts ...modkit.Option) *Module {
	return &Module{
		b:       modkit.Build("meta", "/meta", opts...),
		deps:    deps,
		service: service,
		started: time.Now(),
	}
}

// MountRoutes implements modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {
	d := metahttp.Deps{
		ServiceName:  m.service,
		StartedAt:    m.started,
		ReadyTimeout: m.deps.Cfg.Prefix("CORE_META_").MayDuration("READY_TIMEOUT", 2*time.Second),
		Modules:      module.Names,
		PG:           m.deps.PG,
		CH:           m.deps.CH,
	}
	m.b.Mount(r, func(sr httpkit.Router) { metahttp.Register(sr, d) })
}

// Name implements modkit.Module
func (m *Module) Name() string { return m.b.Name }

// Prefix returns the route prefix
func (m *Module) Prefix() string { return m.b.Prefix }

// Ports implements modkit.Module
func (m *Module) Ports() any { return nil }

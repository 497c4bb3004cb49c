package modkit

import (
	"residences/internal/modkit/httpkit"
	"residences/internal/platform/net/middleware"
	pstrings "residences/internal/platform/strings"
)

// Built is the resolved option set a module keeps
type Built struct {
	Name   string
	Prefix string
	Mw     []middleware.Middleware
	Ports  any
}

// Build applies opts over the module's defaults
func Build(defName, defPrefix string, opts ...Option) Built {
	c := buildCfg{name: defName, prefix: defPrefix}
	for _, o := range opts {
		o(&c)
	}
	if c.prefix != "" {
		c.prefix = pstrings.MustPrefix(c.prefix)
	}
	return Built{
		Name:   c.name,
		Prefix: c.prefix,
		Mw:     append([]middleware.Middleware(nil), c.mw...),
		Ports:  c.ports,
	}
}

// PortsAs returns the injected ports as T, ok is false when none of that type were given
func PortsAs[T any](b Built) (T, bool) {
	v, ok := b.Ports.(T)
	return v, ok
}

// Mount registers routes under the module prefix with its middleware
// an empty prefix mounts in a group so middleware stays scoped to the module
func (b Built) Mount(r httpkit.Router, register func(httpkit.Router)) {
	if b.Prefix == "" {
		r.Group(func(g httpkit.Router) {
			if len(b.Mw) > 0 {
				g.Use(b.Mw...)
			}
			register(g)
		})
		return
	}
	httpkit.MountUnder(r, b.Prefix, b.Mw, register)
}

// Package modkit wires feature modules: shared deps, build options and mounting
package modkit

import (
	"residences/internal/modkit/module"
	phttp "residences/internal/platform/net/http"
)

// Module is the surface every feature module exposes to the composition root
type Module = module.Module

// Builder constructs a Module from shared deps and options
type Builder func(Deps, ...Option) Module

// Mount registers each module's ports and routes on r, in order
func Mount(r phttp.Router, mods ...Module) {
	for _, m := range mods {
		module.Register(m.Name(), m.Ports())
		m.MountRoutes(r)
	}
}

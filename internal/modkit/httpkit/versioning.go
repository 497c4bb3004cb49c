package httpkit

import (
	"strings"

	"residences/internal/platform/net/middleware"
)

// MountAPI mounts a subrouter under /api/{version} with mw applied to it
//
//	httpkit.MountAPI(r, "v1", httpkit.CommonStack(opts), func(api httpkit.Router) {
//		voice.MountRoutes(api)
//	})
func MountAPI(r Router, version string, mw []middleware.Middleware, mount func(Router)) {
	MountUnder(r, "/api/"+strings.Trim(version, "/"), mw, mount)
}

// MountAPIV1 is MountAPI for v1
func MountAPIV1(r Router, mw []middleware.Middleware, mount func(Router)) {
	MountAPI(r, "v1", mw, mount)
}

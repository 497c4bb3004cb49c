// Package api composes the residences HTTP API
package api

import (
	"time"

	"residences/internal/modkit"
	"residences/internal/modkit/httpkit"
	"residences/internal/modkit/swaggerkit"
	"residences/internal/platform/config"
	"residences/internal/platform/logger"
	"residences/internal/platform/metrics"
	phttp "residences/internal/platform/net/http"
	"residences/internal/platform/net/middleware"
	"residences/internal/platform/store"

	metamod "residences/internal/services/api/meta/module"
	voicemod "residences/internal/services/voice/module"
)

// ServiceName names the API in meta payloads and logs
const ServiceName = "residences-api"

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         logger.Logger
	Metrics        *metrics.Metrics
	EnableSwagger  bool
	EnableProfiler bool
}

// API is the mounted surface, Close flushes module side work
type API struct {
	voice *voicemod.Module
}

// Mount mounts the API service onto the given router
//
// meta is public, voice routes need a bearer token from CORE_API_TOKENS
func Mount(r phttp.Router, opt Options) *API {
	if opt.Metrics == nil {
		opt.Metrics = metrics.Default()
	}
	deps := modkit.DepsFrom(opt.Store, opt.Config, opt.Logger, opt.Metrics)
	cfg := opt.Config.Prefix("CORE_API_")

	meta := metamod.New(deps, ServiceName)
	voice := voicemod.New(deps)

	tokens := cfg.MayPairs("TOKENS")
	if len(tokens) == 0 {
		logger.Named("api").Warn().Msg("CORE_API_TOKENS is empty, voice routes will reject every request")
	}
	auth := httpkit.NewPortFunc(httpkit.StaticTokens(tokens))
	stack := httpkit.CommonStack(httpkit.StackOptions{
		Timeout: cfg.MayDuration("TIMEOUT", 30*time.Second),
		Slow:    cfg.MayDuration("SLOW_REQUEST", 750*time.Millisecond),
		CORS: middleware.CORSOptions{
			AllowedOrigins: cfg.MayCSV("CORS_ORIGINS", nil),
			MaxAge:         300,
		},
		Metrics: opt.Metrics,
	})

	httpkit.MountAPIV1(r, stack, func(v1 httpkit.Router) {
		modkit.Mount(v1, meta)
		httpkit.Protected(v1, auth, func(pr httpkit.Router) {
			modkit.Mount(pr, voice)
		})
	})

	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)
	phttp.MountMetrics(r, opt.Metrics.Handler())

	return &API{voice: voice}
}

// Close releases module resources, it is safe on a nil API
func (a *API) Close() error {
	if a == nil {
		return nil
	}
	return a.voice.Close()
}

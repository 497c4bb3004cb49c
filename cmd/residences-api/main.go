// @title         Residences API
// @version       0.3.0
// @description   Voice command resolution for care residences

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"residences/internal/modkit/repokit"
	"residences/internal/platform/config"
	"residences/internal/platform/logger"
	"residences/internal/platform/metrics"
	phttp "residences/internal/platform/net/http"
	"residences/internal/platform/store"

	"residences/internal/services/api"
)

func main() {
	logger.Init(logger.FromEnv())
	l := logger.Get()

	// root config, modules read their own prefixes (CORE_API_*, CORE_VOICE_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, store.FromEnv(root, "residences", "api"), store.WithLogger(*l))
	if err != nil {
		l.Fatal().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// every enabled backend must answer before the listener opens
	if err := repokit.WaitReady(ctx, st, apiCfg.MayInt("BOOT_ATTEMPTS", 10), 2*time.Second); err != nil {
		l.Fatal().Err(err).Msg("store not ready")
	}

	// http server (reads CORE_API_PORT and timeouts)
	srv := phttp.NewServer(apiCfg)

	a := api.Mount(srv.Router(), api.Options{
		Config:         root,
		Store:          st,
		Logger:         *l,
		Metrics:        metrics.Default(),
		EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
		EnableProfiler: apiCfg.MayBool("PROFILER", false),
	})
	defer func() {
		if err := a.Close(); err != nil {
			l.Error().Err(err).Msg("failed to flush voice audit")
		}
	}()

	if err := srv.Run(ctx, apiCfg.MayDuration("SHUTDOWN_GRACE", 15*time.Second)); err != nil {
		l.Error().Err(err).Msg("http server stopped")
	}
}

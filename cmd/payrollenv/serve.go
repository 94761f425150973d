package main

import (
	"context"
	"time"

	"github.com/matiasleandrokruk/payrollenv/internal/infra/eventbus"
	"github.com/matiasleandrokruk/payrollenv/internal/infra/metrics"
	"github.com/matiasleandrokruk/payrollenv/internal/server"
)

func runServe(ctx context.Context, a *app, args []string) int {
	fs := newFlagSet("serve")
	dataDir := a.dataFlag(fs)
	addr := fs.String("addr", a.cfg.HTTPAddr, "Listen address")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	bus := eventbus.New()
	e, err := a.newEnvironment(*dataDir, bus)
	if err != nil {
		a.log.Error().Err(err).Msg("load environment")
		return 1
	}

	deps := server.Deps{Env: e, Logger: a.log}
	if a.cfg.MetricsEnabled {
		deps.Bus = bus
		deps.Metrics = metrics.New(bus.Dropped)
	}
	cfg := server.DefaultConfig()
	cfg.Addr = *addr

	srv, err := server.NewServer(deps, cfg)
	if err != nil {
		a.log.Error().Err(err).Msg("build server")
		return 1
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start(ctx) }()

	select {
	case err := <-errCh:
		if err != nil {
			a.log.Error().Err(err).Msg("server stopped")
			return 1
		}
		return 0
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.log.Error().Err(err).Msg("shutdown")
		return 1
	}
	select {
	case <-errCh:
	case <-time.After(a.cfg.ShutdownTimeout):
	}
	return 0
}

// Package main is the entry point for the lifeline dispatch server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/karthikbm/lifeline/internal/api"
	"github.com/karthikbm/lifeline/internal/config"
	"github.com/karthikbm/lifeline/internal/directory"
	"github.com/karthikbm/lifeline/internal/dispatch"
	"github.com/karthikbm/lifeline/internal/fleet"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[main] configuration error: %v", err)
	}

	if cfg.IsDevelopment() {
		log.SetLevel(log.DebugLevel)
	}

	// A missing or broken catalog must not keep the service down; an
	// empty fleet still answers every request.
	registry := fleet.NewRegistry()
	if err := registry.Load(cfg.VehicleCatalogPath); err != nil {
		log.Warnf("[main] vehicle catalog unavailable, serving empty fleet: %v", err)
	}

	phoneDir := directory.New()
	if err := phoneDir.Load(cfg.PhoneDirectoryPath); err != nil {
		log.Warnf("[main] phone directory unavailable: %v", err)
	} else {
		log.Infof("[main] loaded %d phone locations", phoneDir.Count())
	}

	engine := dispatch.NewEngine(registry, phoneDir, dispatch.NewJournal(), cfg.SpeedKmh)
	router := api.NewRouter(cfg, registry, phoneDir, engine)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
		// No global read/write deadlines: websocket clients hold their
		// connections open. Per-request timeouts come from the
		// middleware chain.
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Infof("[main] lifeline server listening on port %s (%s)", cfg.Port, cfg.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info("[main] shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("[main] server error: %v", err)
	}
}

package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mbellotti/go-visit-counter/internal/bootstrap"
	"github.com/mbellotti/go-visit-counter/internal/config"
	"github.com/mbellotti/go-visit-counter/internal/server"
	"github.com/mbellotti/go-visit-counter/internal/visit"
	"github.com/mbellotti/go-visit-counter/pkg/telemetry"
	"github.com/mbellotti/go-visit-counter/pkg/telemetry/implementation"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	configPath := flag.String("config", "", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}

	tel, err := implementation.NewTelemetry(implementation.Config{
		ServiceName: "go-visit-counter",
		MetricsAddr: cfg.Metrics.Addr,
		Development: cfg.Log.Development,
	})
	if err != nil {
		panic(err)
	}
	log := tel.Logger()

	if err := tel.Start(ctx); err != nil {
		log.Error("failed to start telemetry", telemetry.Err(err))
	}

	ids, err := bootstrap.InitializeRequestIDs()
	if err != nil {
		log.Fatal("failed to initialize request id generator", telemetry.Err(err))
	}

	store, err := bootstrap.InitializeStorage(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal("failed to initialize storage", telemetry.Err(err))
	}

	counter := visit.NewCounter(tel.Meter())
	visits := visit.NewService(counter, store, log)

	handler := server.NewHandler(visits, tel.Meter(), log)
	router := server.NewRouter(handler,
		server.Recovery(log),
		server.Tracing(tel.Tracer(), ids),
	)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sig
		log.Info("shutting down server...")
		cancel()
	}()

	go func() {
		log.Info("http server running",
			telemetry.String("addr", cfg.Server.Addr),
			telemetry.String("backend", cfg.Storage.Backend),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to serve", telemetry.Err(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http server shutdown failed", telemetry.Err(err))
	}
	if err := store.Close(); err != nil {
		log.Error("failed to close store", telemetry.Err(err))
	}
	if err := tel.Close(shutdownCtx); err != nil {
		log.Error("failed to close telemetry", telemetry.Err(err))
	}
	log.Info("server stopped")
}

// Package main is the entry point for the field trip widget server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pkordes/fieldtrip-widget/internal/client"
	"github.com/pkordes/fieldtrip-widget/internal/config"
	"github.com/pkordes/fieldtrip-widget/internal/handler"
	"github.com/pkordes/fieldtrip-widget/internal/metrics"
	"github.com/pkordes/fieldtrip-widget/internal/middleware"
	"github.com/pkordes/fieldtrip-widget/internal/page"
	"github.com/pkordes/fieldtrip-widget/internal/service"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}
	loc, err := cfg.Location()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Backend ----------------------------------------------------------
	m := metrics.New()
	api := client.New(cfg.APIBaseURL,
		client.WithTimeout(cfg.APITimeout),
		client.WithLogger(logger),
		client.WithObserver(m),
	)
	slog.Info("backend configured",
		"field_trips", api.Endpoints().FieldTrips,
		"payment", api.Endpoints().Payment,
	)

	// The page is loaded once at startup and shared by every request.
	appCtx, cancelApp := context.WithCancel(context.Background())
	defer cancelApp()
	pg := page.New(appCtx, api, logger)
	pg.Load()
	defer pg.Close()

	sessions := service.NewRegistrationService(api, cfg.SessionTTL, logger)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Metrics →
	// CORS → MaxBodySize → Recoverer.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(middleware.NewMetrics(m))
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))
	r.Use(chimiddleware.Recoverer)

	r.Handle("/metrics", m.Handler())
	r.Mount("/", handler.NewServer(pg, sessions, logger, loc).Routes())

	// --- HTTP Server ------------------------------------------------------
	// WriteTimeout leaves room for a payment call that runs up to APITimeout.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.APITimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

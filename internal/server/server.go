// Package server exposes the dashboard panels over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/castinsight/castdash/core"
	"github.com/castinsight/castdash/internal/contract"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// WebAPI is the HTTP server of the dashboard.
type WebAPI struct {
	router          *chi.Mux
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

// Dependencies are the collaborators the routes need.
type Dependencies struct {
	Dashboard *core.Dashboard
	Metrics   *Metrics
	Ready     []ReadyCheck
}

// Config holds the listener settings and the dependencies.
type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

// ConfigureRouter builds the chi router: middleware, /api panels, probes and /metrics.
func ConfigureRouter(logger *zerolog.Logger, config Config) *chi.Mux {
	deps := config.Dependencies
	if deps.Metrics == nil {
		deps.Metrics = NewMetrics()
	}
	handler := NewHandler(deps.Dashboard)

	router := chi.NewRouter()
	router.Use(RequestLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(deps.Metrics.Middleware)
	router.Use(middleware.SetHeader("Access-Control-Allow-Origin", "*"))

	router.Route("/api", handler.Routes)
	router.Method(http.MethodGet, "/healthz", HealthHandler())
	router.Method(http.MethodGet, "/readyz", ReadyHandler(deps.Ready...))
	router.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	return router
}

// NewWebAPI wires the router into an http.Server.
func NewWebAPI(logger zerolog.Logger, config Config) *WebAPI {
	router := ConfigureRouter(&logger, config)

	timeout := config.ShutdownTimeout
	if timeout <= 0 {
		timeout = contract.DefaultShutdownTimeout
	}
	return &WebAPI{
		router: router,
		logger: &logger,
		server: &http.Server{
			Addr:              config.Addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		shutdownTimeout: timeout,
	}
}

// Handler returns the root handler, mostly for tests.
func (w *WebAPI) Handler() http.Handler {
	return w.router
}

// Start serves until the listener fails, ctx is cancelled or the process
// receives SIGINT/SIGTERM, then shuts down gracefully.
func (w *WebAPI) Start(ctx context.Context) error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")
	case <-ctx.Done():
		w.logger.Info().Msg("context cancelled, shutting down")
	}

	// Give outstanding requests a deadline for completion.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
	defer cancel()

	if err := w.server.Shutdown(shutdownCtx); err != nil {
		w.logger.Error().Err(err).Msg("graceful shutdown failed")
		return w.server.Close()
	}
	return nil
}

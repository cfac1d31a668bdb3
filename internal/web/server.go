// Package web exposes the address service over HTTP.
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/addrconv/internal/service"
	"github.com/addrconv/internal/web/handlers"
	"github.com/addrconv/internal/web/middleware"
)

// Server represents the web server
type Server struct {
	config     *Config
	service    *service.Service
	gatherer   prometheus.Gatherer
	log        zerolog.Logger
	httpServer *http.Server
	router     *mux.Router
}

// NewServer creates a new web server instance. gatherer backs /metrics and
// may be nil when metrics are disabled.
func NewServer(config *Config, svc *service.Service, gatherer prometheus.Gatherer, log zerolog.Logger) *Server {
	server := &Server{
		config:   config,
		service:  svc,
		gatherer: gatherer,
		log:      log,
	}

	server.setupRoutes()

	server.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port),
		Handler:      server.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return server
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	s.router = mux.NewRouter()

	// Convert config for handlers (to avoid import cycle)
	handlerConfig := &handlers.Config{}
	handlerConfig.Features.StorageEnabled = s.config.Features.StorageEnabled

	addressHandler := &handlers.AddressHandler{Service: s.service, Config: handlerConfig, Log: s.log}

	s.router.HandleFunc("/healthz", handlers.Health).Methods("GET")
	if s.config.Features.MetricsEnabled && s.gatherer != nil {
		s.router.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})).Methods("GET")
	}

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/convert", addressHandler.Convert).Methods("POST")

	if s.config.Features.StorageEnabled {
		api.HandleFunc("/addresses", addressHandler.Create).Methods("POST")
		api.HandleFunc("/addresses/{id}", addressHandler.Get).Methods("GET")
		api.HandleFunc("/addresses/{id}", addressHandler.Update).Methods("PUT")
		api.HandleFunc("/addresses/{id}", addressHandler.Delete).Methods("DELETE")
	}

	if s.config.Auth.Enabled {
		// Apply authentication middleware to API routes only
		api.Use(middleware.Authentication(s.config.Auth.APIKey))
	}
}

// Handler returns the router wrapped in CORS and request logging.
func (s *Server) Handler() http.Handler {
	return middleware.CORS()(middleware.RequestLogging(s.log)(s.router))
}

// Start serves until ctx is cancelled or SIGINT/SIGTERM arrives, then
// shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.httpServer.Addr).Msg("starting server")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	s.log.Info().Msg("server stopped")
	return nil
}

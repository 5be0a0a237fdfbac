// Package api exposes the daemon's HTTP control surface.
//
// Routes are versioned under /api/v1. Authentication is a static bearer
// token; when no token is configured the API is open, which is the expected
// setup for a loopback-only bind.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"clipforge/internal/config"
	"clipforge/internal/logging"
	"clipforge/internal/pipeline"
	"clipforge/internal/videos"
)

// Server serves the HTTP API over the video store.
type Server struct {
	cfg    *config.Config
	store  *videos.Store
	state  *pipeline.StateManager
	logger *slog.Logger
}

// NewServer builds a Server.
func NewServer(cfg *config.Config, store *videos.Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Server{
		cfg:    cfg,
		store:  store,
		state:  pipeline.NewStateManager(store, logger),
		logger: logger.With(logging.String(logging.FieldComponent, "api")),
	}
}

// Router assembles the chi route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.logRequests)

	r.Get("/api/v1/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		r.Use(s.authenticate)

		r.Route("/api/v1/videos", func(r chi.Router) {
			r.Post("/", s.handleCreate)
			r.Get("/", s.handleList)
			r.Get("/stats", s.handleStats)
			r.Route("/{videoID}", func(r chi.Router) {
				r.Get("/", s.handleGet)
				r.Post("/cancel", s.handleCancel)
				r.Post("/retry", s.handleRetry)
				r.Delete("/", s.handleDelete)
			})
		})
	})

	return r
}

// Serve runs the HTTP server until the context is cancelled, then shuts it
// down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Paths.APIBind,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()
	s.logger.Info("api listening",
		logging.String("bind", s.cfg.Paths.APIBind),
		logging.String(logging.FieldEventType, "api_started"),
	)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}

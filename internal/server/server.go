// Package server exposes the category store and the table analyses over a
// JSON HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Veraticus/reviewlens/internal/config"
	"github.com/Veraticus/reviewlens/internal/storage"
	"github.com/gorilla/mux"
)

const shutdownTimeout = 10 * time.Second

// Server routes API requests to the category store and uploaded tables.
type Server struct {
	store   *storage.CategoryStore
	tables  *TableCache
	limiter *Limiter
	router  *mux.Router
	cfg     config.ServerConfig
}

// New builds a server and its routes.
func New(store *storage.CategoryStore, cfg config.ServerConfig) *Server {
	s := &Server{
		store:   store,
		tables:  NewTableCache(cfg.TableTTL),
		limiter: NewLimiter(cfg.RateLimit, cfg.Burst),
		cfg:     cfg,
	}
	s.routes()
	return s
}

// Tables returns the upload cache.
func (s *Server) Tables() *TableCache {
	return s.tables
}

// Handler returns the root handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	r := mux.NewRouter()
	r.Use(recoverer, requestLogger)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(s.limiter.Middleware)

	api.HandleFunc("/categories", s.listCategories).Methods(http.MethodGet)
	api.HandleFunc("/categories", s.createCategory).Methods(http.MethodPost)
	api.HandleFunc("/categories/{name}", s.updateCategory).Methods(http.MethodPut)
	api.HandleFunc("/categories/{name}", s.deleteCategory).Methods(http.MethodDelete)

	api.HandleFunc("/presets", s.listPresets).Methods(http.MethodGet)
	api.HandleFunc("/presets/{name}/import", s.importPreset).Methods(http.MethodPost)

	api.HandleFunc("/tables", s.uploadTable).Methods(http.MethodPost)
	api.HandleFunc("/tables/{id}", s.getTable).Methods(http.MethodGet)
	api.HandleFunc("/tables/{id}", s.deleteTable).Methods(http.MethodDelete)
	api.HandleFunc("/tables/{id}/overview", s.overview).Methods(http.MethodGet)
	api.HandleFunc("/tables/{id}/summary", s.summary).Methods(http.MethodGet)
	api.HandleFunc("/tables/{id}/groups", s.groups).Methods(http.MethodGet)
	api.HandleFunc("/tables/{id}/distribution", s.distribution).Methods(http.MethodGet)
	api.HandleFunc("/tables/{id}/trend", s.trend).Methods(http.MethodGet)
	api.HandleFunc("/tables/{id}/dashboard", s.dashboard).Methods(http.MethodGet)
	api.HandleFunc("/tables/{id}/classify", s.classify).Methods(http.MethodPost)
	api.HandleFunc("/tables/{id}/export", s.export).Methods(http.MethodGet)
	api.HandleFunc("/tables/{id}/charts/{kind}", s.chart).Methods(http.MethodGet)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	s.router = r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	slog.Info("server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}

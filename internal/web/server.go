// Package web provides the HTTP server: the comments REST API and the threaded HTML view.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/rs/cors"

	"github.com/evcraddock/threads/internal/comment"
	"github.com/evcraddock/threads/internal/config"
	"github.com/evcraddock/threads/internal/logging"
	"github.com/evcraddock/threads/internal/metrics"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

// Server is the threads HTTP server.
type Server struct {
	comments  *comment.Service
	cfg       config.Config
	templates *template.Template
	mux       *http.ServeMux
	handler   http.Handler
}

// NewServer creates a server over the given comment service.
func NewServer(svc *comment.Service, cfg config.Config) (*Server, error) {
	funcMap := template.FuncMap{
		"formatTime": tmplFormatTime,
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	s := &Server{
		comments:  svc,
		cfg:       cfg,
		templates: tmpl,
		mux:       http.NewServeMux(),
	}

	staticContent, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("creating static sub-fs: %w", err)
	}

	s.mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticContent))))
	s.mux.Handle("/metrics", metrics.Handler())
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/comments", s.handleAPIComments)
	s.mux.HandleFunc("/comments/", s.handleAPIComments)
	s.mux.HandleFunc("/ui/comments", s.handleUIComments)
	s.mux.HandleFunc("/ui/comments/", s.handleUIComments)
	s.mux.HandleFunc("/", s.handleIndex)

	s.handler = corsOptions(cfg.AllowedOrigins).Handler(logging.RequestLogger(s.mux))

	return s, nil
}

// corsOptions allows cross-origin requests from origins only. cors treats an
// empty list as "*", so no origins means no cross-origin access at all.
func corsOptions(origins []string) *cors.Cors {
	opts := cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	}
	if len(origins) == 0 {
		opts.AllowOriginFunc = func(string) bool { return false }
	}
	return cors.New(opts)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// ListenAndServe serves on the configured port until ctx is cancelled,
// then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", srv.Addr, "store", s.cfg.Store)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	slog.Info("server stopped")
	return nil
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	apiJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}

// tmplFormatTime renders a comment timestamp for display.
func tmplFormatTime(t time.Time) string {
	return t.UTC().Format("Jan 2, 2006 3:04 PM")
}

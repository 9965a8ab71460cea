// Package web serves the evaluation dashboard as server-rendered HTML pages.
package web

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/mwiater/evalboard/internal/appconfig"
	"github.com/mwiater/evalboard/internal/evalapi"
	"github.com/mwiater/evalboard/internal/logging"
)

// Server renders the dashboard pages from live backend data. Nothing is cached
// between requests; every page load fetches what it shows.
type Server struct {
	cfg    appconfig.Config
	client *evalapi.Client
	tmpl   *template.Template
	mux    *http.ServeMux
	now    func() time.Time

	demoInFlight atomic.Bool
}

// New builds a Server with its routes registered.
func New(cfg appconfig.Config, client *evalapi.Client) *Server {
	s := &Server{
		cfg:    cfg,
		client: client,
		mux:    http.NewServeMux(),
		now:    time.Now,
	}
	s.tmpl = template.Must(template.New("web").Funcs(s.funcMap()).Parse(pageTemplates))

	s.mux.HandleFunc("GET /{$}", s.dashboardHandler)
	s.mux.HandleFunc("GET /models", s.modelsHandler)
	s.mux.HandleFunc("GET /test-cases", s.testCasesHandler)
	s.mux.HandleFunc("GET /test-cases/{id}", s.testCaseHandler)
	s.mux.HandleFunc("GET /results", s.resultsHandler)
	s.mux.HandleFunc("GET /results/export", s.exportHandler)
	s.mux.HandleFunc("POST /demo", s.demoHandler)
	s.mux.HandleFunc("GET /api/dashboard", s.dashboardAPIHandler)
	s.mux.HandleFunc("GET /health", s.healthHandler)
	return s
}

// ServeHTTP logs each request and dispatches it to the matching page.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	s.mux.ServeHTTP(w, r)
	logging.LogEvent("[WEB] %s %s (%s)", r.Method, r.URL.RequestURI(), time.Since(start).Round(time.Millisecond))
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.ListenAddress(),
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      2*s.cfg.RequestTimeout() + 5*time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("evalboard web dashboard listening on %s (backend %s)", srv.Addr, s.client.BaseURL())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("web server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Println("Shutting down web dashboard...")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown web server: %w", err)
		}
		return nil
	}
}

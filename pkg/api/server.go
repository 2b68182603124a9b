// Package api serves the catalogue and the navigation resolver over a small
// read-only JSON API for local tools.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kerbaras/guya/pkg/data"
	"github.com/kerbaras/guya/pkg/sources"
)

// Catalog is the part of services.Catalog the API reads.
type Catalog interface {
	Books(ctx context.Context, useCache bool) ([]*data.Book, error)
	Book(ctx context.Context, id string) (*data.Book, error)
}

// Preferences supplies the preferred group for page resolution.
type Preferences interface {
	PreferredGroup() string
}

type Server struct {
	httpServer *http.Server
	router     chi.Router
	log        *zap.SugaredLogger
}

func NewServer(addr string, catalog Catalog, prefs Preferences, links sources.Links, log *zap.SugaredLogger) *Server {
	h := &handler{catalog: catalog, prefs: prefs, links: links, log: log}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(requestLogger(log))
	r.Use(chimw.Recoverer)
	r.Use(chimw.CleanPath)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ok(w, map[string]string{"status": "ok"})
	})
	r.Route("/books", func(r chi.Router) {
		r.Get("/", h.listBooks)
		r.Get("/{book}", h.getBook)
		r.Get("/{book}/chapters/{chapter}", h.getChapter)
		r.Get("/{book}/chapters/{chapter}/pages/{page}", h.getPage)
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
			IdleTimeout:       time.Minute,
		},
	}
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe blocks until the server is closed.
func (s *Server) ListenAndServe() error {
	s.log.Infow("server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}

func requestLogger(log *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Debugw("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
				"request_id", chimw.GetReqID(r.Context()))
		})
	}
}

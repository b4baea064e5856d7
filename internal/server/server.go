// Package server implements the riskflow HTTP API.
//
// The server renders one dataset. Stateless endpoints take the interaction
// state from query parameters:
//
//	GET /api/scene?hover=3&selected=12
//	GET /diagram.svg?hover=3
//
// Sessions keep the state server-side so a client can replay the event
// stream of a viewer one event at a time:
//
//	POST   /api/sessions                      create, returns the session
//	GET    /api/sessions/{id}                 state and scene
//	POST   /api/sessions/{id}/events          apply {"type":"click","id":12}
//	GET    /api/sessions/{id}/diagram.svg     render the current state
//	DELETE /api/sessions/{id}
//
// Every session request, reads included, pushes the expiry out by the
// session TTL.
//
// Geometry is computed once at startup. Each request forks the base engine
// with the request's state, so concurrent requests never share a state
// machine; requests against the same session are serialized.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/matzehuels/riskflow/pkg/dataset"
	"github.com/matzehuels/riskflow/pkg/pipeline"
	"github.com/matzehuels/riskflow/pkg/render/flow"
	"github.com/matzehuels/riskflow/pkg/render/flow/sink"
	"github.com/matzehuels/riskflow/pkg/session"
)

// Config holds server configuration.
type Config struct {
	Addr        string
	CORSOrigins []string // empty allows localhost only
	SessionTTL  time.Duration
	Metrics     http.Handler // served at /metrics when non-nil
}

// Server serves a single dataset.
type Server struct {
	cfg     Config
	opts    pipeline.Options
	svgOpts []sink.SVGOption
	base    *flow.Engine
	hash    string
	store   session.Store
	locks   *keyedMutex
	logger  *log.Logger

	router     chi.Router
	httpServer *http.Server
}

// New lays out ds with opts and builds the router. opts must already be
// validated.
func New(cfg Config, ds *dataset.Dataset, opts pipeline.Options, store session.Store, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = log.Default()
	}
	if store == nil {
		store = session.NewMemoryStore()
	}
	base, err := flow.New(ds, opts.Canvas, opts.EngineOptions()...)
	if err != nil {
		return nil, err
	}
	hash, err := pipeline.DatasetHash(ds)
	if err != nil {
		return nil, err
	}
	svgOpts, err := pipeline.SVGOptions(opts)
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:     cfg,
		opts:    opts,
		svgOpts: svgOpts,
		base:    base,
		hash:    hash,
		store:   store,
		locks:   newKeyedMutex(),
		logger:  logger,
	}
	s.router = s.buildRouter()
	return s, nil
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(observe)

	corsOpts := cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}
	if len(s.cfg.CORSOrigins) > 0 {
		corsOpts.AllowedOrigins = s.cfg.CORSOrigins
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/healthz", s.handleHealth)
	if s.cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.cfg.Metrics)
	}

	r.Get("/diagram.svg", s.handleDiagram)
	r.Route("/api", func(r chi.Router) {
		r.Get("/dataset", s.handleDataset)
		r.Get("/scene", s.handleScene)
		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", s.handleCreateSession)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetSession)
				r.Delete("/", s.handleDeleteSession)
				r.Post("/events", s.handleEvents)
				r.Get("/diagram.svg", s.handleSessionDiagram)
			})
		})
	})
	return r
}

// Handler returns the router.
func (s *Server) Handler() http.Handler { return s.router }

// Start listens on the configured address until Shutdown is called.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	s.logger.Info("riskflow server listening", "addr", s.cfg.Addr,
		"nodes", s.base.Dataset().NodeCount(), "links", s.base.Dataset().LinkCount())
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// RunCleanup removes expired sessions every interval until ctx is done.
func (s *Server) RunCleanup(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if err := s.store.Cleanup(ctx); err != nil {
				s.logger.Warn("session cleanup failed", "error", err)
			}
		}
	}
}

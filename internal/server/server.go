// Package server exposes the solver over HTTP and websocket.
//
//	POST /solve_cube    {"scrambled_cube": [[[...]]]} -> {"moves": [...]}
//	GET  /solves/{id}   a stored solve
//	GET  /ws            streams solutions one move per message
//	GET  /healthz       liveness
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/SeamusWaldron/cubesolver"
	"github.com/SeamusWaldron/cubesolver/internal/cache"
	"github.com/SeamusWaldron/cubesolver/internal/config"
	"github.com/SeamusWaldron/cubesolver/internal/storage"
)

// maxBodyBytes bounds request bodies; a cube document is well under 1 KiB.
const maxBodyBytes = 64 << 10

// Server serves solve requests. Each request solves on its own cube, so
// requests run concurrently.
type Server struct {
	cfg        config.ServerConfig
	log        *zap.Logger
	cache      *cache.Cache
	store      storage.Store
	solverOpts []cubesolver.Option
	upgrader   websocket.Upgrader
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// WithCache answers repeated states from c.
func WithCache(c *cache.Cache) Option {
	return func(s *Server) {
		s.cache = c
	}
}

// WithStore records every successful solve in st.
func WithStore(st storage.Store) Option {
	return func(s *Server) {
		s.store = st
	}
}

// WithSolverOptions passes opts to every solve.
func WithSolverOptions(opts ...cubesolver.Option) Option {
	return func(s *Server) {
		s.solverOpts = append(s.solverOpts, opts...)
	}
}

// New creates a server.
func New(cfg config.ServerConfig, opts ...Option) *Server {
	s := &Server{
		cfg: cfg,
		log: zap.NewNop(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // the visualizer is served from another origin
			},
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("POST /solve_cube", s.handleSolve)
	mux.HandleFunc("GET /solves/{id}", s.handleGetSolve)
	mux.HandleFunc("GET /ws", s.handleWS)
	return s.logRequests(mux)
}

// Run listens on the configured address until ctx is cancelled, then
// shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Address, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", zap.String("address", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// solve answers g from the cache when possible and records the solve.
func (s *Server) solve(ctx context.Context, g cubesolver.Grid) (*cubesolver.Solution, bool, error) {
	start := time.Now()

	var (
		sol *cubesolver.Solution
		hit bool
		err error
	)
	if s.cache != nil {
		var cacheErr error
		sol, hit, cacheErr, err = s.cache.Solve(ctx, g, s.solverOpts...)
		if cacheErr != nil {
			s.log.Warn("solution cache unavailable", zap.Error(cacheErr))
		}
	} else {
		sol, err = cubesolver.Solve(g, s.solverOpts...)
	}
	if err != nil {
		return nil, false, err
	}

	elapsed := time.Since(start)
	s.log.Debug("cube solved",
		zap.Int("moves", len(sol.Moves)),
		zap.Bool("cached", hit),
		zap.Duration("elapsed", elapsed),
	)

	if s.store != nil && !hit {
		rec := storage.NewRecord(g, sol, elapsed, "server")
		if err := s.store.SaveSolve(ctx, rec); err != nil {
			s.log.Warn("failed to record solve", zap.Error(err))
		}
	}
	return sol, hit, nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}

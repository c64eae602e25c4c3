// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/tvcatalog/internal/core/episode"
	"github.com/taibuivan/tvcatalog/internal/core/genre"
	"github.com/taibuivan/tvcatalog/internal/core/rating"
	"github.com/taibuivan/tvcatalog/internal/core/season"
	"github.com/taibuivan/tvcatalog/internal/core/series"
	"github.com/taibuivan/tvcatalog/internal/platform/config"
	"github.com/taibuivan/tvcatalog/internal/platform/constants"
	"github.com/taibuivan/tvcatalog/internal/platform/middleware"
	"github.com/taibuivan/tvcatalog/internal/users/account"
	"github.com/taibuivan/tvcatalog/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once by the serve command with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
type Handlers struct {
	// Liveness is the /health handler, always 200 while the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler, 200 when all deps are healthy.
	Readiness http.HandlerFunc

	Series  *series.Handler
	Season  *season.Handler
	Episode *episode.Handler
	Genre   *genre.Handler

	// Rating and State serve the two facets of the per-user series fact.
	Rating *rating.Handler
	State  *rating.Handler

	// Auth handles registration and login.
	Auth *auth.Handler

	// Account handles /users/me and user administration.
	Account *account.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := NewRouter(context, cfg, log, verifier, h)

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// NewRouter builds the routing tree. It is separate from [NewServer] so tests
// can drive the full tree with httptest.
func NewRouter(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context, cfg.RateLimitRPS, cfg.RateLimitBurst))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.Authenticate(verifier))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	r.Get("/", indexHandler)
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Catalog
	r.Route("/tv", func(tv chi.Router) {
		h.Series.RegisterRoutes(tv)

		tv.Route("/{id}/season", func(seasons chi.Router) {
			h.Season.RegisterRoutes(seasons)
			seasons.Route("/{number}/episode", h.Episode.RegisterRoutes)
		})

		tv.Route("/{id}/rate", h.Rating.RegisterRoutes)
		tv.Route("/{id}/state", h.State.RegisterRoutes)
	})

	r.Route("/genres", h.Genre.RegisterRoutes)

	// # Users
	r.Route("/users", func(users chi.Router) {
		h.Auth.RegisterRoutes(users)
		h.Account.RegisterRoutes(users)
	})

	return r
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}

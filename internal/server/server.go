package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/womni/backoffice/internal/auth"
	"github.com/womni/backoffice/internal/handler"
	"github.com/womni/backoffice/internal/server/middleware"
	"github.com/womni/backoffice/internal/store"
)

// Config holds the HTTP server configuration.
type Config struct {
	Host            string
	Port            int
	ShutdownTimeout time.Duration
	CORSOrigins     []string
	TokenTTL        time.Duration
}

// DefaultConfig returns a Config with production defaults. The CORS origin
// list matches the frontends the backoffice serves.
func DefaultConfig() Config {
	return Config{
		Host:            "0.0.0.0",
		Port:            8080,
		ShutdownTimeout: 30 * time.Second,
		CORSOrigins: []string{
			"http://localhost:4200",
			"http://localhost:8100",
			"capacitor://localhost",
			"https://pos.womni.store",
			"https://app.womni.store",
			"https://backoffice.womni.store",
		},
		TokenTTL: 365 * 24 * time.Hour,
	}
}

// Server is the backoffice HTTP server. It owns the chi router, the store,
// the token codec, and the request resolver.
type Server struct {
	cfg        Config
	router     chi.Router
	store      *store.Store
	codec      *auth.TokenCodec
	resolver   *auth.Resolver
	httpServer *http.Server
	logger     *slog.Logger
}

// New creates a Server with all routes and middleware wired, ready for
// ListenAndServe.
func New(cfg Config, st *store.Store, codec *auth.TokenCodec, resolver *auth.Resolver, logger *slog.Logger) *Server {
	s := &Server{
		cfg:      cfg,
		store:    st,
		codec:    codec,
		resolver: resolver,
		logger:   logger,
	}
	s.setupRouter()
	return s
}

// Router returns the server's HTTP handler, used by tests to drive requests
// through httptest without binding a listener.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) setupRouter() {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{
			"Accept", "Authorization", "Content-Type",
			"x-womni-token", "x-womni-tenant", "x-womni-accountId",
		},
		ExposedHeaders:   []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           600,
	}))

	r.Get("/healthz", s.handleHealthz)
	r.Get("/readyz", s.handleReadyz)

	authHandler := handler.NewAuthHandler(s.store, s.codec, s.cfg.TokenTTL, s.logger)
	employeeHandler := handler.NewEmployeeHandler(s.store, s.logger)
	accountHandler := handler.NewAccountHandler(s.store, s.logger)

	r.Route("/v2", func(r chi.Router) {
		r.Post("/auth/login", authHandler.Login)

		r.Route("/employee", func(r chi.Router) {
			r.Post("/", employeeHandler.Create)
			r.Get("/search", employeeHandler.Search)
			r.Get("/{employeeId}/accounts", employeeHandler.ListAccounts)
			r.Post("/{employeeId}/accounts", employeeHandler.CreateAssociation)
			r.Get("/{employeeId}/accounts/{accountId}", employeeHandler.GetAssociation)
			r.Put("/{employeeId}/accounts/{accountId}", employeeHandler.UpdateAssociation)
		})

		// Account creation needs a verified employee token but no account
		// grant; the account does not exist yet.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireEmployee(s.codec))
			r.Post("/account", accountHandler.Create)
		})

		// Account-scoped routes resolve the caller against the addressed
		// account via the dual-path authenticator.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(s.resolver, s.logger))
			r.Get("/accounts/{accountId}/employees", accountHandler.ListEmployees)
		})
	})

	s.router = r
}

// handleHealthz is a liveness probe.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// handleReadyz is a readiness probe; 503 when the store is unreachable.
func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := s.store.Ping(r.Context()); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"status":"degraded"}`))
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// ListenAndServe starts the server and blocks until SIGINT or SIGTERM, then
// drains in-flight requests before returning.
func (s *Server) ListenAndServe() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server listen: %w", err)
	case <-ctx.Done():
		s.logger.Info("shutdown signal received, draining connections")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

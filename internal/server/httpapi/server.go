// Package httpapi exposes the authentication service over HTTP with JSON
// bodies, per the documented wire contract.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"authd/internal/logging"
	"authd/internal/server/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

type Server struct {
	address string
	auth    *services.AuthService
	logger  logging.Logger
}

func NewServer(a string, l logging.Logger, as *services.AuthService) *Server {
	return &Server{
		address: a,
		logger:  l.With("module", "http_server"),
		auth:    as,
	}
}

// Router assembles the chi router with middleware and the wire-contract
// routes. Exposed separately so tests can drive it with httptest.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(s.requestID)
	r.Use(s.logRequests)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/ping", s.handlePing)
	r.Post("/auth/register", s.handleRegister)
	r.Post("/auth/sign-in", s.handleSignIn)
	r.Post("/auth/sign-out", s.handleSignOut)

	return r
}

// Run starts the HTTP server and shuts it down gracefully when ctx is
// cancelled.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

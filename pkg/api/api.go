// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

// Package api serves the check results over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/telekom/icmpdiag/internal/logger"
)

var _ API = (*api)(nil)

const readHeaderTimeout = 5 * time.Second

//go:generate go tool moq -out api_moq.go . API
type API interface {
	// Run starts serving the registered routes until the context is done
	// or the server is shut down.
	Run(ctx context.Context) error
	// Shutdown gracefully stops the server.
	Shutdown(ctx context.Context) error
	// RegisterRoutes registers the routes on the server.
	// Must be called once before Run.
	RegisterRoutes(ctx context.Context, routes ...Route) error
}

// Route is a handler served on a path for a method
type Route struct {
	Path    string
	Method  string
	Handler http.HandlerFunc
}

type api struct {
	server *http.Server
	router chi.Router
	tls    TLSConfig
}

// New creates a new api server from the configuration
func New(cfg Config) API {
	r := chi.NewRouter()
	return &api{
		server: &http.Server{Addr: cfg.ListeningAddress, Handler: r, ReadHeaderTimeout: readHeaderTimeout},
		router: r,
		tls:    cfg.Tls,
	}
}

// Run serves the api until the context is done or the server is shut down
func (a *api) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)
	cErr := make(chan error, 1)
	go func() {
		log.InfoContext(ctx, "Serving api", "addr", a.server.Addr, "tls", a.tls.Enabled)
		if a.tls.Enabled {
			cErr <- a.server.ListenAndServeTLS(a.tls.CertPath, a.tls.KeyPath)
			return
		}
		cErr <- a.server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		return fmt.Errorf("failed serving api: %w", ctx.Err())
	case err := <-cErr:
		if errors.Is(err, http.ErrServerClosed) {
			log.InfoContext(ctx, "Api server closed")
			return nil
		}
		log.ErrorContext(ctx, "Failed serving api", "error", err)
		return fmt.Errorf("failed serving api: %w", err)
	}
}

// Shutdown gracefully stops the server
func (a *api) Shutdown(ctx context.Context) error {
	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed shutting down api: %w", err)
	}
	return nil
}

// RegisterRoutes registers the routes and a root route answering 200 OK
func (a *api) RegisterRoutes(ctx context.Context, routes ...Route) error {
	a.router.Use(logger.Middleware(ctx), middleware.Recoverer)
	for _, route := range routes {
		if !slices.Contains(supportedMethods, route.Method) {
			return ErrInvalidRoute{Method: route.Method, Path: route.Path}
		}
		a.router.Method(route.Method, route.Path, route.Handler)
	}

	a.router.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return nil
}

var supportedMethods = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
}

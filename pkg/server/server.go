/*
Copyright © 2025 Schemaguard Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package server exposes the validation engine over HTTP: POST
// /v1/validate and /v1/schema/check plus health, readiness and metrics
// endpoints. Requests are rate limited and stamped with request IDs.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Server is the HTTP validation service.
type Server struct {
	name    string
	version string
	cfg     *Config
	limiter *rate.Limiter

	mu    sync.RWMutex
	ready bool
}

// ServerOption is a functional option for configuring Server instances.
type ServerOption func(*Server)

// WithName sets the service name reported on the default route.
func WithName(name string) ServerOption {
	return func(s *Server) {
		s.name = name
	}
}

// WithVersion sets the service version.
func WithVersion(version string) ServerOption {
	return func(s *Server) {
		s.version = version
	}
}

// WithConfig overrides the default configuration.
func WithConfig(cfg *Config) ServerOption {
	return func(s *Server) {
		if cfg != nil {
			s.cfg = cfg
		}
	}
}

// New creates a Server with the provided options.
func New(opts ...ServerOption) *Server {
	s := &Server{
		name:    "schemaguard",
		version: "dev",
		cfg:     DefaultConfig(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.limiter = rate.NewLimiter(s.cfg.RateLimit, s.cfg.RateLimitBurst)
	return s
}

// Run starts the server and blocks until ctx is canceled or the listener
// fails. Shutdown is graceful, bounded by Config.ShutdownTimeout.
func (s *Server) Run(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Address, s.cfg.Port)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      s.setupRoutes(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
	}

	s.mu.Lock()
	s.ready = true
	s.mu.Unlock()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		s.mu.Lock()
		s.ready = false
		s.mu.Unlock()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()

		slog.Info("shutting down server")
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

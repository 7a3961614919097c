package api

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/schemaguard/schemaguard/pkg/logging"
	"github.com/schemaguard/schemaguard/pkg/server"
)

const name = "schemaguard-api-server"

// Serve starts the validation API server and blocks until shutdown. It
// configures logging, sets up routes, and handles graceful shutdown on
// SIGINT/SIGTERM. Returns an error if the server fails to start or
// encounters a fatal error.
func Serve(version string, cfg *server.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.SetDefaultStructuredLogger(name, version)
	slog.Info("starting",
		"name", name,
		"version", version,
	)

	s := server.New(
		server.WithName(name),
		server.WithVersion(version),
		server.WithConfig(cfg),
	)

	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}

/*
Copyright © 2025 Schemaguard Authors
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/schemaguard/schemaguard/pkg/api"
	"github.com/schemaguard/schemaguard/pkg/server"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the validation HTTP API",
		Description: `Starts an HTTP service exposing the validation engine:

  POST /v1/validate      validate a config against a schema
  POST /v1/schema/check  meta-validate a schema document
  GET  /health           liveness probe
  GET  /ready            readiness probe
  GET  /metrics          Prometheus metrics

Environment variables PORT, RATE_LIMIT and LOG_LEVEL override defaults.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "address",
				Usage: "Listen address (default: all interfaces)",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Listen port",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			cfg := server.DefaultConfig()
			if addr := cmd.String("address"); addr != "" {
				cfg.Address = addr
			}
			if port := cmd.Int("port"); port != 0 {
				cfg.Port = int(port)
			}
			return api.Serve(version, cfg)
		},
	}
}

/*
Copyright © 2025 Schemaguard Authors
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/schemaguard/schemaguard/pkg/logging"
)

const appName = "schemaguard"

var (
	// overridden during build with ldflags to reflect actual version info,
	// e.g. -X "github.com/schemaguard/schemaguard/pkg/cli.version=1.0.0"
	version = "dev"
)

// Shared flags across commands
var (
	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output file path (default: stdout)",
	}

	formatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   "text",
		Usage:   "output format (text, yaml, json, table)",
	}
)

// New builds the root command.
func New() *cli.Command {
	return &cli.Command{
		Name:    appName,
		Usage:   "Validate configuration documents against declarative schemas",
		Version: version,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
			&cli.BoolFlag{
				Name:  "log-json",
				Usage: "Output logs in JSON format",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logging.Setup(cmd.Bool("debug"), cmd.Bool("log-json"))
			return ctx, nil
		},
		Commands: []*cli.Command{
			validateCmd(),
			checkSchemaCmd(),
			serveCmd(),
			versionCmd(),
		},
	}
}

func versionCmd() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print version information",
		Action: func(_ context.Context, _ *cli.Command) error {
			fmt.Printf("%s %s\n", appName, version)
			return nil
		},
	}
}

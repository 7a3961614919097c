/*
Copyright © 2025 Schemaguard Authors
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/schemaguard/schemaguard/pkg/document"
	"github.com/schemaguard/schemaguard/pkg/serializer"
	"github.com/schemaguard/schemaguard/pkg/validator"
)

// Process exit codes of the validate command.
const (
	exitValid       = 0
	exitInvalid     = 1
	exitSchemaError = 2
)

func validateCmd() *cli.Command {
	return &cli.Command{
		Name:                  "validate",
		EnableShellCompletion: true,
		Usage:                 "Validate a configuration file against a schema",
		Description: `Validates a configuration document against a declarative schema and
reports every violation in one pass.

The schema is a mapping from field name to a rule descriptor with a
mandatory 'type' key (string, int, float, bool, file, directory, enum,
list) and kind-specific constraint keys such as min/max bounds, regex
patterns, allowed enum values, file extensions, and list element types.

# Examples

Validate a config:
  schemaguard validate --schema rules.yaml --config config.yaml

Reject keys not declared in the schema:
  schemaguard validate -s rules.yaml -c config.yaml --no-allow-extra-keys

Emit the full report as JSON:
  schemaguard validate -s rules.yaml -c config.yaml --format json

# Exit Codes

  0  configuration is valid
  1  schema is well-formed but the configuration violates it
  2  schema is malformed or a document failed to decode`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "schema",
				Aliases:  []string{"s"},
				Required: true,
				Usage:    "Path to the schema (rules) file",
			},
			&cli.StringFlag{
				Name:     "config",
				Aliases:  []string{"c"},
				Required: true,
				Usage:    "Path to the configuration file to validate",
			},
			&cli.BoolFlag{
				Name:  "allow-extra-keys",
				Value: true,
				Usage: "Allow configuration keys not declared in the schema",
			},
			&cli.BoolFlag{
				Name:  "no-allow-extra-keys",
				Usage: "Reject configuration keys not declared in the schema",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Suppress per-finding output, rely on the exit code",
			},
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			s, err := loadSchema(cmd.String("schema"))
			if err != nil {
				printSchemaError(err)
				return cli.Exit("", exitCodeFor(err))
			}

			config, err := document.FromFile(cmd.String("config"))
			if err != nil {
				fmt.Fprintf(os.Stderr, "%v\n", err)
				return cli.Exit("", exitCodeFor(err))
			}

			opts := []validator.Option{validator.WithVersion(version)}
			if cmd.IsSet("allow-extra-keys") || cmd.IsSet("no-allow-extra-keys") {
				// Explicit flags win over a policy declared in the schema.
				allowExtra := cmd.Bool("allow-extra-keys") && !cmd.Bool("no-allow-extra-keys")
				opts = append(opts, validator.WithAllowExtraKeys(allowExtra))
			}

			v := validator.New(opts...)
			result, err := v.Validate(ctx, s, config)
			if err != nil {
				return fmt.Errorf("validation failed to run: %w", err)
			}

			if outFormat != "" {
				ser := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
				defer func() {
					if err := ser.Close(); err != nil {
						slog.Warn("failed to close serializer", "error", err)
					}
				}()
				if err := ser.Serialize(ctx, result); err != nil {
					return err
				}
			}

			quiet := cmd.Bool("quiet")
			if result.Valid() {
				if !quiet && outFormat == "" {
					fmt.Println("Configuration is valid.")
				}
				return nil
			}

			if !quiet && outFormat == "" {
				fmt.Fprintf(os.Stderr, "Validation failed with %d finding(s):\n", len(result.Findings))
				for _, f := range result.Findings {
					fmt.Fprintf(os.Stderr, "  - %s\n", f)
				}
			}
			return cli.Exit("", exitInvalid)
		},
	}
}

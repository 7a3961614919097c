/*
Copyright © 2025 Schemaguard Authors
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/schemaguard/schemaguard/pkg/document"
	"github.com/schemaguard/schemaguard/pkg/schema"
)

func checkSchemaCmd() *cli.Command {
	return &cli.Command{
		Name:                  "check-schema",
		EnableShellCompletion: true,
		Usage:                 "Meta-validate a schema file without validating any config",
		Description: `Checks that a schema document is well-formed: every field entry is a
mapping with a recognized type, numeric bound pairs are ordered, enum
rules declare a non-empty homogeneous allowed list, list rules declare a
resolvable element_type, and regex patterns compile.

All problems are reported in one pass.

# Examples

  schemaguard check-schema --schema rules.yaml

# Exit Codes

  0  schema is well-formed
  2  schema is malformed or failed to decode`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "schema",
				Aliases:  []string{"s"},
				Required: true,
				Usage:    "Path to the schema (rules) file",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			path := cmd.String("schema")
			doc, err := document.FromFile(path)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%v\n", err)
				return cli.Exit("", exitCodeFor(err))
			}

			if problems := schema.Check(doc); len(problems) > 0 {
				fmt.Fprintf(os.Stderr, "Schema is invalid (%d problems):\n", len(problems))
				for _, p := range problems {
					fmt.Fprintf(os.Stderr, "  - %s\n", p)
				}
				return cli.Exit("", exitSchemaError)
			}

			fmt.Println("Schema is valid.")
			return nil
		},
	}
}

/*
Copyright © 2025 Schemaguard Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/schemaguard/schemaguard/pkg/document"
	"github.com/schemaguard/schemaguard/pkg/errors"
	"github.com/schemaguard/schemaguard/pkg/schema"
	"github.com/schemaguard/schemaguard/pkg/serializer"
)

// formatText is the human-readable default of the validate command; the
// serializer formats are for machine consumption.
const formatText = "text"

// parseOutputFormat extracts and validates the output format from CLI flags.
// Returns the validated format or an error if the format is unknown.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	raw := cmd.String("format")
	if raw == formatText {
		return "", nil
	}
	outFormat := serializer.Format(raw)
	if outFormat.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q, valid formats are: text, yaml, json, table", outFormat)
	}
	return outFormat, nil
}

// loadSchema reads, decodes and meta-validates a schema file. Any problem
// means the run is un-attempted: nothing is validated against a broken
// schema. Decode failures carry DECODE_ERROR, meta-validation failures
// SCHEMA_ERROR; exitCodeFor maps both to exit code 2.
func loadSchema(path string) (*schema.Schema, error) {
	doc, err := document.FromFile(path)
	if err != nil {
		return nil, err
	}
	s, err := schema.Parse(doc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSchema, "schema rejected", err)
	}
	return s, nil
}

// exitCodeFor maps a structured error code to the process exit code:
// malformed schemas and undecodable documents are exit 2, everything else
// reports as a validation failure.
func exitCodeFor(err error) int {
	switch errors.CodeOf(err) {
	case errors.ErrCodeSchema, errors.ErrCodeDecode:
		return exitSchemaError
	}
	return exitInvalid
}

// printSchemaError renders every aggregated schema problem to stderr.
func printSchemaError(err error) {
	var serr *schema.Error
	if errors.As(err, &serr) {
		fmt.Fprintf(os.Stderr, "Schema is invalid (%d problems):\n", len(serr.Problems))
		for _, p := range serr.Problems {
			fmt.Fprintf(os.Stderr, "  - %s\n", p)
		}
		return
	}
	fmt.Fprintf(os.Stderr, "%v\n", err)
}

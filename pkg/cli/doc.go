/*
Copyright © 2025 Schemaguard Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package cli implements the command-line interface for the schemaguard tool.
//
// # Overview
//
// The schemaguard CLI validates configuration documents against
// declarative, data-driven schemas, reporting every violation in one pass
// rather than stopping at the first error. It is a thin shell around the
// validation engine in pkg/validator.
//
// # Commands
//
// validate - Validate a configuration against a schema:
//
//	schemaguard validate --schema rules.yaml --config config.yaml
//	schemaguard validate -s rules.yaml -c config.yaml --no-allow-extra-keys
//	schemaguard validate -s rules.yaml -c config.yaml --format json --output report.json
//
// check-schema - Meta-validate a schema file (nothing is validated against
// a broken schema, so this backs "validate my schema" tooling):
//
//	schemaguard check-schema --schema rules.yaml
//
// serve - Expose the engine over HTTP:
//
//	schemaguard serve --port 8080
//
// # Global Flags
//
//	--debug      Enable debug logging
//	--log-json   Output logs in JSON format
//	--help, -h   Show command help
//	--version    Show version information
//
// # Output Formats
//
// text (default) prints a human-readable summary; yaml, json and table
// emit the full report for machine consumption, to stdout or --output.
//
// # Environment Variables
//
//	LOG_LEVEL   Set logging verbosity (debug, info, warn, error)
//	PORT        Listen port for serve
//	RATE_LIMIT  Requests per second for serve
//
// # Exit Codes
//
//	0  Configuration is valid
//	1  Schema is well-formed, configuration violates it
//	2  Schema malformed or a document failed to decode
//
// # Architecture
//
// The CLI uses the urfave/cli/v3 framework and delegates to specialized
// packages:
//   - pkg/document  - decoded document trees (ordered mappings)
//   - pkg/schema    - rule model and schema meta-validation
//   - pkg/validator - the validation engine
//   - pkg/serializer - output formatting
//   - pkg/server    - the HTTP API exposed by serve
//   - pkg/logging   - structured logging
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/schemaguard/schemaguard/pkg/cli.version=1.0.0'"
package cli

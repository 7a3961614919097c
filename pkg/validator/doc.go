/*
Copyright © 2025 Schemaguard Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package validator walks a decoded configuration tree against a parsed
// schema and reports every violation in one deterministic pass.
//
// # Overview
//
// The validator never fails fast: every schema field and every constraint
// on every field is evaluated regardless of earlier failures, and the
// accumulated findings are returned together in one Result. Finding order
// follows schema field declaration order, then config document order for
// unexpected keys, so repeated runs over the same inputs produce identical
// output.
//
// # Finding Codes
//
//   - MissingRequiredField - required field absent from (or null in) config
//   - TypeMismatch         - value's dynamic type does not match the rule
//   - ConstraintViolation  - right type, but a bound, pattern, or
//     membership constraint is violated
//   - FilesystemError      - file/directory target missing, unreadable,
//     empty, or not absolute when required
//   - UnexpectedKey        - config key not declared in the schema when
//     extra keys are disallowed
//
// # Usage
//
// Basic validation:
//
//	s, err := schema.Parse(schemaDoc)
//	if err != nil {
//	    log.Fatal(err) // broken schema, nothing was validated
//	}
//	v := validator.New(validator.WithAllowExtraKeys(false))
//	result, err := v.Validate(ctx, s, configDoc)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, f := range result.Findings {
//	    fmt.Printf("  - %s\n", f)
//	}
//
// # Concurrency
//
// A Validator holds no mutable state between runs; each Validate call is a
// pure function of its inputs (plus the filesystem probes of file and
// directory rules). One Validator may serve concurrent calls without
// coordination.
package validator

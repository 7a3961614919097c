/*
Copyright © 2025 Schemaguard Authors
SPDX-License-Identifier: Apache-2.0
*/

package validator

import (
	"time"

	"github.com/schemaguard/schemaguard/pkg/header"
)

// Code classifies one finding.
type Code string

const (
	// CodeMissingRequiredField marks a schema-declared required field that
	// is absent from (or null in) the configuration.
	CodeMissingRequiredField Code = "MissingRequiredField"

	// CodeTypeMismatch marks a value whose dynamic type does not match the
	// rule's declared kind.
	CodeTypeMismatch Code = "TypeMismatch"

	// CodeConstraintViolation marks a value of the right type that
	// violates a bound, pattern, or membership constraint.
	CodeConstraintViolation Code = "ConstraintViolation"

	// CodeFilesystemError marks a file or directory rule whose target does
	// not exist, is unreadable, is empty, or is not absolute when
	// required.
	CodeFilesystemError Code = "FilesystemError"

	// CodeUnexpectedKey marks a configuration key not declared in the
	// schema when extra keys are disallowed.
	CodeUnexpectedKey Code = "UnexpectedKey"
)

// Status is the overall outcome of a validation run.
type Status string

const (
	StatusPass Status = "pass"
	StatusFail Status = "fail"
)

// Finding is a single reported validation failure. Findings are
// independent of each other; their order follows schema field declaration
// order, then config document order for unexpected keys.
type Finding struct {
	// Field locates the offending value, using dotted/bracketed notation
	// for list elements (e.g. "samples[2]"). Empty for document-level
	// findings.
	Field   string `json:"field" yaml:"field"`
	Code    Code   `json:"code" yaml:"code"`
	Message string `json:"message" yaml:"message"`
}

func (f Finding) String() string {
	if f.Field == "" {
		return f.Message
	}
	return f.Field + ": " + f.Message
}

// Summary aggregates counts for a validation run.
type Summary struct {
	// Fields is the number of schema fields evaluated.
	Fields int `json:"fields" yaml:"fields"`

	// Findings is the total number of findings.
	Findings int `json:"findings" yaml:"findings"`

	// ByCode breaks findings down per code. Omitted when empty.
	ByCode map[Code]int `json:"byCode,omitempty" yaml:"byCode,omitempty"`

	Status   Status        `json:"status" yaml:"status"`
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// Result is the immutable outcome of one validation run. Callers decide
// exit behavior from Valid(); the full finding sequence is always
// available, never just the first problem.
type Result struct {
	header.Header `json:",inline" yaml:",inline"`

	Findings []Finding `json:"findings" yaml:"findings"`
	Summary  Summary   `json:"summary" yaml:"summary"`
}

// NewResult creates an empty Result.
func NewResult() *Result {
	return &Result{}
}

// Init stamps the result header with kind, API version and the validator
// version.
func (r *Result) Init(kind, apiVersion, version string) {
	opts := []header.Option{
		header.WithKind(kind),
		header.WithAPIVersion(apiVersion),
	}
	if version != "" {
		opts = append(opts, header.WithMetadata("validator-version", version))
	}
	r.Header = *header.New(opts...)
}

// Valid reports whether the run produced zero findings.
func (r *Result) Valid() bool {
	return len(r.Findings) == 0
}

func (r *Result) append(f ...Finding) {
	r.Findings = append(r.Findings, f...)
}

func (r *Result) finalize(fields int, start time.Time) {
	r.Summary.Fields = fields
	r.Summary.Findings = len(r.Findings)
	r.Summary.Duration = time.Since(start)
	r.Summary.Status = StatusPass
	if len(r.Findings) > 0 {
		r.Summary.Status = StatusFail
		r.Summary.ByCode = make(map[Code]int, len(r.Findings))
		for _, f := range r.Findings {
			r.Summary.ByCode[f.Code]++
		}
	}
}

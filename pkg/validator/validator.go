/*
Copyright © 2025 Schemaguard Authors
SPDX-License-Identifier: Apache-2.0
*/

package validator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/schemaguard/schemaguard/pkg/document"
	"github.com/schemaguard/schemaguard/pkg/errors"
	"github.com/schemaguard/schemaguard/pkg/header"
	"github.com/schemaguard/schemaguard/pkg/schema"
	"github.com/schemaguard/schemaguard/pkg/suggest"
)

const (
	// Kind is the kind for validation reports.
	Kind = "ValidationReport"

	// DefaultMaxDepth bounds recursion into nested sequences of an
	// externally supplied config tree.
	DefaultMaxDepth = 32
)

// APIVersion is the API version for validation reports.
var APIVersion = header.APIVersionDomain + "/" + header.APIVersionV1

// Validator walks a configuration tree against a schema tree and
// aggregates every finding into a single report. It holds no state between
// runs; a single Validator may be used concurrently.
type Validator struct {
	// Version is the validator version (typically the CLI version).
	Version string

	// AllowExtraKeys controls whether config keys not declared in the
	// schema are tolerated. Defaults to true.
	AllowExtraKeys bool

	// MaxDepth bounds recursion into nested sequences.
	MaxDepth int

	// allowExtraSet records that AllowExtraKeys was set explicitly, which
	// makes it win over a schema's top-level allow_extra_keys entry.
	allowExtraSet bool
}

// Option is a functional option for configuring Validator instances.
type Option func(*Validator)

// WithVersion returns an Option that sets the Validator version string.
func WithVersion(version string) Option {
	return func(v *Validator) {
		v.Version = version
	}
}

// WithAllowExtraKeys returns an Option that sets the extra-key policy,
// overriding any policy the schema document declares.
func WithAllowExtraKeys(allow bool) Option {
	return func(v *Validator) {
		v.AllowExtraKeys = allow
		v.allowExtraSet = true
	}
}

// WithMaxDepth returns an Option that overrides the recursion bound.
func WithMaxDepth(depth int) Option {
	return func(v *Validator) {
		v.MaxDepth = depth
	}
}

// New creates a new Validator with the provided options.
func New(opts ...Option) *Validator {
	v := &Validator{
		AllowExtraKeys: true,
		MaxDepth:       DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate is a convenience wrapper for one-shot library callers.
func Validate(s *schema.Schema, config document.Value, allowExtraKeys bool) (*Result, error) {
	return New(WithAllowExtraKeys(allowExtraKeys)).Validate(context.Background(), s, config)
}

// Validate walks the configuration against the schema and returns every
// finding in one pass. It never stops at the first failure: each field and
// each constraint is evaluated regardless of earlier findings, and the
// emission order is deterministic (schema declaration order, then config
// document order for unexpected keys).
func (v *Validator) Validate(ctx context.Context, s *schema.Schema, config document.Value) (*Result, error) {
	start := time.Now()

	if s == nil {
		return nil, errors.New(errors.ErrCodeInternal, "schema cannot be nil")
	}

	result := NewResult()
	result.Init(Kind, APIVersion, v.Version)

	fields, ok := config.Fields()
	if !ok {
		// A non-mapping document cannot be traversed meaningfully.
		result.append(Finding{
			Code:    CodeTypeMismatch,
			Message: fmt.Sprintf("configuration document must be a mapping, got %s", config.Type()),
		})
		result.finalize(s.Len(), start)
		observeRun(result)
		return result, nil
	}

	for _, field := range s.Fields() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		value, present := fields.Get(field.Name)
		result.append(v.checkField(field.Name, field.Rule, value, present, 0)...)
	}

	allowExtra := v.AllowExtraKeys
	if !v.allowExtraSet {
		if p := s.ExtraKeys(); p != nil {
			allowExtra = *p
		}
	}
	if !allowExtra {
		for _, key := range fields.Keys() {
			if s.Has(key) {
				continue
			}
			msg := "unexpected configuration key, not declared in schema"
			if hint, found := suggest.Closest(key, s.FieldNames()); found {
				msg = fmt.Sprintf("%s (did you mean %q?)", msg, hint)
			}
			result.append(Finding{Field: key, Code: CodeUnexpectedKey, Message: msg})
		}
	}

	result.finalize(s.Len(), start)
	observeRun(result)

	slog.Debug("validation completed",
		"fields", result.Summary.Fields,
		"findings", result.Summary.Findings,
		"status", result.Summary.Status,
		"duration", result.Summary.Duration)

	return result, nil
}

// checkField runs the shared required check, then dispatches to the
// kind-specific checker. An absent (or null) optional field is simply
// skipped: no further constraint runs against a value that is not there.
func (v *Validator) checkField(path string, rule schema.Rule, value document.Value, present bool, depth int) []Finding {
	if !present {
		if rule.Required {
			return []Finding{{
				Field:   path,
				Code:    CodeMissingRequiredField,
				Message: "missing required field",
			}}
		}
		return nil
	}

	if value.IsNull() {
		if rule.Required {
			return []Finding{{
				Field:   path,
				Code:    CodeMissingRequiredField,
				Message: "required field is null",
			}}
		}
		return nil
	}

	check, ok := checks[rule.Kind]
	if !ok {
		// Unreachable for schemas built by schema.Parse; guards rules
		// constructed by hand.
		return []Finding{{
			Field:   path,
			Code:    CodeTypeMismatch,
			Message: fmt.Sprintf("no checker registered for kind %q", rule.Kind),
		}}
	}
	return check(v, path, rule, value, depth)
}

/*
Copyright © 2025 Schemaguard Authors
SPDX-License-Identifier: Apache-2.0
*/

package validator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemaguard/schemaguard/pkg/document"
	"github.com/schemaguard/schemaguard/pkg/schema"
)

func mustSchema(t *testing.T, src string) *schema.Schema {
	t.Helper()
	doc, err := document.Parse([]byte(src))
	require.NoError(t, err)
	s, err := schema.Parse(doc)
	require.NoError(t, err)
	return s
}

func mustDoc(t *testing.T, src string) document.Value {
	t.Helper()
	doc, err := document.Parse([]byte(src))
	require.NoError(t, err)
	return doc
}

const pipelineSchema = `
name:
  type: string
  required: true
  min_length: 1
threads:
  type: int
  min: 1
  max: 64
mode:
  type: enum
  allowed: [fast, slow]
samples:
  type: list
  element_type: string
  min_items: 1
`

func TestValidate_Valid(t *testing.T) {
	s := mustSchema(t, pipelineSchema)
	config := mustDoc(t, `
name: run-a
threads: 8
mode: fast
samples: [a, b]
`)

	result, err := New().Validate(context.Background(), s, config)
	require.NoError(t, err)
	assert.True(t, result.Valid())
	assert.Equal(t, StatusPass, result.Summary.Status)
	assert.Equal(t, 4, result.Summary.Fields)
	assert.Zero(t, result.Summary.Findings)
	assert.Nil(t, result.Summary.ByCode)
}

// One pass reports every violation, never just the first.
func TestValidate_AggregatesAllFindings(t *testing.T) {
	s := mustSchema(t, pipelineSchema)
	config := mustDoc(t, `
threads: 0
mode: medium
samples: []
`)

	result, err := New().Validate(context.Background(), s, config)
	require.NoError(t, err)
	require.Len(t, result.Findings, 4)

	// Findings follow schema declaration order.
	assert.Equal(t, "name", result.Findings[0].Field)
	assert.Equal(t, CodeMissingRequiredField, result.Findings[0].Code)

	assert.Equal(t, "threads", result.Findings[1].Field)
	assert.Equal(t, CodeConstraintViolation, result.Findings[1].Code)
	assert.Contains(t, result.Findings[1].Message, "less than minimum 1")

	assert.Equal(t, "mode", result.Findings[2].Field)
	assert.Contains(t, result.Findings[2].Message, "not in allowed set")

	assert.Equal(t, "samples", result.Findings[3].Field)
	assert.Contains(t, result.Findings[3].Message, "fewer than minimum 1")

	assert.Equal(t, StatusFail, result.Summary.Status)
	assert.Equal(t, 4, result.Summary.Findings)
	assert.Equal(t, 1, result.Summary.ByCode[CodeMissingRequiredField])
	assert.Equal(t, 3, result.Summary.ByCode[CodeConstraintViolation])
}

func TestValidate_Deterministic(t *testing.T) {
	s := mustSchema(t, pipelineSchema)
	config := mustDoc(t, "threads: 0\nmode: medium\nsamples: []\n")

	first, err := New().Validate(context.Background(), s, config)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := New().Validate(context.Background(), s, config)
		require.NoError(t, err)
		assert.Equal(t, first.Findings, again.Findings)
	}
}

func TestValidate_RequiredNull(t *testing.T) {
	s := mustSchema(t, "name:\n  type: string\n  required: true\n")
	result, err := New().Validate(context.Background(), s, mustDoc(t, "name: null\n"))
	require.NoError(t, err)
	require.Len(t, result.Findings, 1)
	assert.Equal(t, CodeMissingRequiredField, result.Findings[0].Code)
	assert.Equal(t, "required field is null", result.Findings[0].Message)
}

func TestValidate_OptionalAbsentOrNull(t *testing.T) {
	s := mustSchema(t, "threads:\n  type: int\n  min: 1\n")

	result, err := New().Validate(context.Background(), s, mustDoc(t, "{}\n"))
	require.NoError(t, err)
	assert.True(t, result.Valid())

	// Null counts as absent: no constraint runs against it.
	result, err = New().Validate(context.Background(), s, mustDoc(t, "threads: null\n"))
	require.NoError(t, err)
	assert.True(t, result.Valid())
}

func TestValidate_InclusiveBounds(t *testing.T) {
	s := mustSchema(t, "threads:\n  type: int\n  min: 1\n  max: 64\n")

	for _, src := range []string{"threads: 1\n", "threads: 64\n"} {
		result, err := New().Validate(context.Background(), s, mustDoc(t, src))
		require.NoError(t, err)
		assert.True(t, result.Valid(), src)
	}
}

func TestValidate_IntRejectsFloat(t *testing.T) {
	s := mustSchema(t, "threads:\n  type: int\n")
	result, err := New().Validate(context.Background(), s, mustDoc(t, "threads: 8.0\n"))
	require.NoError(t, err)
	require.Len(t, result.Findings, 1)
	assert.Equal(t, CodeTypeMismatch, result.Findings[0].Code)
	assert.Equal(t, "expected int, got float", result.Findings[0].Message)
}

func TestValidate_FloatAcceptsInt(t *testing.T) {
	s := mustSchema(t, "ratio:\n  type: float\n  min: 0\n  max: 1\n")
	result, err := New().Validate(context.Background(), s, mustDoc(t, "ratio: 1\n"))
	require.NoError(t, err)
	assert.True(t, result.Valid())
}

func TestValidate_ExtraKeys(t *testing.T) {
	s := mustSchema(t, "threads:\n  type: int\n")
	config := mustDoc(t, "threads: 4\nthreds: 2\nzzz: 1\n")

	// Tolerated by default.
	result, err := New().Validate(context.Background(), s, config)
	require.NoError(t, err)
	assert.True(t, result.Valid())

	result, err = New(WithAllowExtraKeys(false)).Validate(context.Background(), s, config)
	require.NoError(t, err)
	require.Len(t, result.Findings, 2)

	assert.Equal(t, "threds", result.Findings[0].Field)
	assert.Equal(t, CodeUnexpectedKey, result.Findings[0].Code)
	assert.Contains(t, result.Findings[0].Message, `did you mean "threads"?`)

	assert.Equal(t, "zzz", result.Findings[1].Field)
	assert.NotContains(t, result.Findings[1].Message, "did you mean")
}

// A schema may declare its own extra-key policy with a top-level
// allow_extra_keys entry; an explicit option still wins.
func TestValidate_SchemaExtraKeyPolicy(t *testing.T) {
	s := mustSchema(t, "allow_extra_keys: false\nname:\n  type: string\n")
	config := mustDoc(t, "name: run-a\ndebug: true\n")

	result, err := New().Validate(context.Background(), s, config)
	require.NoError(t, err)
	require.Len(t, result.Findings, 1)
	assert.Equal(t, "debug", result.Findings[0].Field)
	assert.Equal(t, CodeUnexpectedKey, result.Findings[0].Code)

	result, err = New(WithAllowExtraKeys(true)).Validate(context.Background(), s, config)
	require.NoError(t, err)
	assert.True(t, result.Valid())

	permissive := mustSchema(t, "allow_extra_keys: true\nname:\n  type: string\n")
	result, err = New(WithAllowExtraKeys(false)).Validate(context.Background(), permissive, config)
	require.NoError(t, err)
	require.Len(t, result.Findings, 1)
	assert.Equal(t, CodeUnexpectedKey, result.Findings[0].Code)
}

func TestValidate_ListElements(t *testing.T) {
	s := mustSchema(t, `
samples:
  type: list
  element_type: int
  min: 0
  min_items: 3
`)
	result, err := New().Validate(context.Background(), s, mustDoc(t, "samples: [1, -2]\n"))
	require.NoError(t, err)
	require.Len(t, result.Findings, 2)

	// Length bound and element findings coexist in one run.
	assert.Equal(t, "samples", result.Findings[0].Field)
	assert.Contains(t, result.Findings[0].Message, "fewer than minimum 3")
	assert.Equal(t, "samples[1]", result.Findings[1].Field)
	assert.Contains(t, result.Findings[1].Message, "less than minimum 0")
}

func TestValidate_MaxDepth(t *testing.T) {
	s := mustSchema(t, "samples:\n  type: list\n  element_type: string\n")
	v := New(WithMaxDepth(0))
	result, err := v.Validate(context.Background(), s, mustDoc(t, "samples: [a]\n"))
	require.NoError(t, err)
	require.Len(t, result.Findings, 1)
	assert.Contains(t, result.Findings[0].Message, "exceeds maximum depth")
}

func TestValidate_NonMappingConfig(t *testing.T) {
	s := mustSchema(t, "name:\n  type: string\n")
	result, err := New().Validate(context.Background(), s, mustDoc(t, "- a\n- b\n"))
	require.NoError(t, err)
	require.Len(t, result.Findings, 1)
	assert.Equal(t, CodeTypeMismatch, result.Findings[0].Code)
	assert.Empty(t, result.Findings[0].Field)
	assert.Equal(t, StatusFail, result.Summary.Status)
}

func TestValidate_NilSchema(t *testing.T) {
	_, err := New().Validate(context.Background(), nil, mustDoc(t, "{}\n"))
	assert.Error(t, err)
}

func TestValidate_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := mustSchema(t, "name:\n  type: string\n")
	_, err := New().Validate(ctx, s, mustDoc(t, "name: x\n"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestValidate_ResultHeader(t *testing.T) {
	s := mustSchema(t, "name:\n  type: string\n")
	result, err := New(WithVersion("1.2.3")).Validate(context.Background(), s, mustDoc(t, "{}\n"))
	require.NoError(t, err)
	assert.Equal(t, Kind, result.Kind)
	assert.Equal(t, "schemaguard.io/v1alpha1", result.APIVersion)
	assert.Equal(t, "1.2.3", result.Metadata["validator-version"])
}

func TestValidate_PackageLevel(t *testing.T) {
	s := mustSchema(t, "name:\n  type: string\n")
	result, err := Validate(s, mustDoc(t, "name: x\nextra: 1\n"), false)
	require.NoError(t, err)
	require.Len(t, result.Findings, 1)
	assert.Equal(t, CodeUnexpectedKey, result.Findings[0].Code)
}

func TestFinding_String(t *testing.T) {
	assert.Equal(t, "threads: too small", Finding{Field: "threads", Message: "too small"}.String())
	assert.Equal(t, "top-level problem", Finding{Message: "top-level problem"}.String())
}

/*
Copyright © 2025 Schemaguard Authors
SPDX-License-Identifier: Apache-2.0
*/

package document

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemaguard/schemaguard/pkg/errors"
)

func TestParse_ScalarTyping(t *testing.T) {
	doc, err := Parse([]byte(`
name: genome
threads: 8
ratio: 0.25
verbose: true
note: "8"
empty: null
`))
	require.NoError(t, err)

	m, ok := doc.Fields()
	require.True(t, ok)

	tests := []struct {
		key  string
		want Type
	}{
		{"name", TypeString},
		{"threads", TypeInt},
		{"ratio", TypeFloat},
		{"verbose", TypeBool},
		{"note", TypeString}, // quoted scalar stays a string
		{"empty", TypeNull},
	}
	for _, tt := range tests {
		v, ok := m.Get(tt.key)
		require.True(t, ok, tt.key)
		assert.Equal(t, tt.want, v.Type(), tt.key)
	}

	threads, _ := m.Get("threads")
	i, ok := threads.IntVal()
	assert.True(t, ok)
	assert.Equal(t, int64(8), i)

	// A YAML float is never an int, even with a zero fraction.
	ratio, _ := m.Get("ratio")
	_, ok = ratio.IntVal()
	assert.False(t, ok)
	f, ok := ratio.FloatVal()
	assert.True(t, ok)
	assert.Equal(t, 0.25, f)

	// Ints widen to float cleanly.
	f, ok = threads.FloatVal()
	assert.True(t, ok)
	assert.Equal(t, 8.0, f)
}

func TestParse_PreservesMappingOrder(t *testing.T) {
	doc, err := Parse([]byte("zebra: 1\nalpha: 2\nmiddle: 3\n"))
	require.NoError(t, err)

	m, ok := doc.Fields()
	require.True(t, ok)
	assert.Equal(t, []string{"zebra", "alpha", "middle"}, m.Keys())
}

func TestParse_DuplicateKeys(t *testing.T) {
	doc, err := Parse([]byte("a: 1\nb: 2\na: 3\n"))
	require.NoError(t, err)

	m, ok := doc.Fields()
	require.True(t, ok)

	// Last occurrence wins on lookup, but Entries keeps both so schema
	// meta-validation can reject duplicates.
	v, ok := m.Get("a")
	require.True(t, ok)
	i, _ := v.IntVal()
	assert.Equal(t, int64(3), i)
	assert.Len(t, m.Entries(), 3)
	assert.Equal(t, []string{"a", "b"}, m.Keys())
	assert.Equal(t, 2, m.Len())
}

func TestParse_EmptyDocument(t *testing.T) {
	doc, err := Parse(nil)
	require.NoError(t, err)
	m, ok := doc.Fields()
	require.True(t, ok)
	assert.Equal(t, 0, m.Len())
}

func TestParse_JSONInput(t *testing.T) {
	doc, err := Parse([]byte(`{"mode": "fast", "count": 3}`))
	require.NoError(t, err)

	m, ok := doc.Fields()
	require.True(t, ok)
	mode, _ := m.Get("mode")
	s, ok := mode.StringVal()
	assert.True(t, ok)
	assert.Equal(t, "fast", s)
}

func TestParse_Sequences(t *testing.T) {
	doc, err := Parse([]byte("samples: [a, b, c]\n"))
	require.NoError(t, err)

	m, _ := doc.Fields()
	v, ok := m.Get("samples")
	require.True(t, ok)
	items, ok := v.Items()
	require.True(t, ok)
	assert.Len(t, items, 3)
	s, _ := items[1].StringVal()
	assert.Equal(t, "b", s)
}

func TestParse_Anchors(t *testing.T) {
	doc, err := Parse([]byte("base: &b hello\nref: *b\n"))
	require.NoError(t, err)

	m, _ := doc.Fields()
	ref, ok := m.Get("ref")
	require.True(t, ok)
	s, _ := ref.StringVal()
	assert.Equal(t, "hello", s)
}

func TestParse_NonStringKey(t *testing.T) {
	_, err := Parse([]byte("{? [a]: 1}"))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeDecode, errors.CodeOf(err))
}

func TestParse_MalformedYAML(t *testing.T) {
	_, err := Parse([]byte("a: [1, 2\n"))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeDecode, errors.CodeOf(err))
}

func TestFromFile_Missing(t *testing.T) {
	_, err := FromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeDecode, errors.CodeOf(err))
}

func TestValue_Equal(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"equal strings", String("x"), String("x"), true},
		{"different strings", String("x"), String("y"), false},
		{"int and equal float", Int(1), Float(1.0), true},
		{"int and unequal float", Int(1), Float(1.5), false},
		{"string never equals int", String("1"), Int(1), false},
		{"bools", Bool(true), Bool(true), true},
		{"nulls", Null(), Null(), true},
		{"sequences", Sequence(Int(1), Int(2)), Sequence(Int(1), Int(2)), true},
		{"sequence lengths differ", Sequence(Int(1)), Sequence(Int(1), Int(2)), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Equal(tt.b))
		})
	}
}

func TestValue_String(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{String("fast"), `"fast"`},
		{Int(42), "42"},
		{Float(2.5), "2.5"},
		{Bool(false), "false"},
		{Null(), "null"},
		{Sequence(String("a"), Int(1)), `["a", 1]`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.v.String())
	}
}

func TestValue_BoolStrictness(t *testing.T) {
	// No truthy-string coercion.
	_, ok := String("true").BoolVal()
	assert.False(t, ok)

	b, ok := Bool(true).BoolVal()
	assert.True(t, ok)
	assert.True(t, b)
}

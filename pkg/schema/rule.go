/*
Copyright © 2025 Schemaguard Authors
SPDX-License-Identifier: Apache-2.0
*/

package schema

import (
	"regexp"

	"github.com/schemaguard/schemaguard/pkg/document"
)

// Kind is the declared type of a schema field.
type Kind string

const (
	KindString    Kind = "string"
	KindInt       Kind = "int"
	KindFloat     Kind = "float"
	KindBool      Kind = "bool"
	KindFile      Kind = "file"
	KindDirectory Kind = "directory"
	KindEnum      Kind = "enum"
	KindList      Kind = "list"
)

// kinds in declaration order, used for error messages and suggestions.
var kinds = []Kind{
	KindString, KindInt, KindFloat, KindBool,
	KindFile, KindDirectory, KindEnum, KindList,
}

// Kinds returns the supported rule kinds.
func Kinds() []Kind {
	out := make([]Kind, len(kinds))
	copy(out, kinds)
	return out
}

// ParseKind resolves a type name from a schema document. "dir" is accepted
// as an alias for "directory".
func ParseKind(s string) (Kind, bool) {
	if s == "dir" {
		return KindDirectory, true
	}
	for _, k := range kinds {
		if s == string(k) {
			return k, true
		}
	}
	return "", false
}

func (k Kind) String() string { return string(k) }

// Rule holds the constraints for one schema field. Only the fields
// matching Kind are populated; the rest stay zero. Rules are plain data,
// built once by Parse and never mutated afterwards.
type Rule struct {
	Kind     Kind
	Required bool

	// string
	MinLength *int
	MaxLength *int
	Pattern   string
	Regex     *regexp.Regexp

	// int / float (inclusive bounds)
	Min *float64
	Max *float64

	// file
	Extensions []string

	// directory
	Absolute bool

	// enum
	Allowed []document.Value

	// list
	MinItems *int
	MaxItems *int
	Element  *Rule
}

// Field pairs a schema field name with its rule.
type Field struct {
	Name string
	Rule Rule
}

// Schema is an ordered set of named rules. Field order follows the schema
// document, which fixes the order findings are reported in.
type Schema struct {
	fields []Field
	index  map[string]struct{}

	// extraKeys is the document's top-level allow_extra_keys policy, nil
	// when the schema does not declare one.
	extraKeys *bool
}

// ExtraKeys returns the schema's declared extra-key policy, or nil when
// the document carries no top-level allow_extra_keys entry. An explicit
// caller-side policy takes precedence over this.
func (s *Schema) ExtraKeys() *bool {
	if s == nil {
		return nil
	}
	return s.extraKeys
}

// Fields returns the fields in declaration order.
func (s *Schema) Fields() []Field {
	if s == nil {
		return nil
	}
	return s.fields
}

// Has reports whether a field with the given name is declared.
func (s *Schema) Has(name string) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[name]
	return ok
}

// FieldNames returns the declared field names in order.
func (s *Schema) FieldNames() []string {
	names := make([]string, 0, len(s.fields))
	for _, f := range s.fields {
		names = append(names, f.Name)
	}
	return names
}

// Len returns the number of declared fields.
func (s *Schema) Len() int {
	if s == nil {
		return 0
	}
	return len(s.fields)
}

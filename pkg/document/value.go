/*
Copyright © 2025 Schemaguard Authors
SPDX-License-Identifier: Apache-2.0
*/

package document

import (
	"fmt"
	"strings"
)

// Type identifies the dynamic type of a decoded Value.
type Type string

const (
	TypeNull     Type = "null"
	TypeString   Type = "string"
	TypeInt      Type = "int"
	TypeFloat    Type = "float"
	TypeBool     Type = "bool"
	TypeSequence Type = "sequence"
	TypeMapping  Type = "mapping"
)

// Value is one node of a decoded configuration or schema tree: a scalar
// (string, int, float, bool, null), a sequence of Values, or a mapping from
// string keys to Values. Mappings remember document order, which keeps
// validation output deterministic. Values are immutable once decoded.
type Value struct {
	typ Type
	str string
	num int64
	flt float64
	b   bool
	seq []Value
	m   *Mapping
}

// Entry is one key/value pair of a Mapping, in document order.
type Entry struct {
	Key   string
	Value Value
}

// Mapping is an ordered string-keyed collection of Values. Duplicate keys
// are preserved in Entries so callers can detect them; Get returns the last
// occurrence, matching common YAML decoder behavior.
type Mapping struct {
	entries []Entry
	index   map[string]int
}

// Null returns the null scalar.
func Null() Value { return Value{typ: TypeNull} }

// String returns a string scalar.
func String(s string) Value { return Value{typ: TypeString, str: s} }

// Int returns an integer scalar.
func Int(i int64) Value { return Value{typ: TypeInt, num: i} }

// Float returns a floating-point scalar.
func Float(f float64) Value { return Value{typ: TypeFloat, flt: f} }

// Bool returns a boolean scalar.
func Bool(b bool) Value { return Value{typ: TypeBool, b: b} }

// Sequence returns a sequence value holding the given items.
func Sequence(items ...Value) Value {
	return Value{typ: TypeSequence, seq: items}
}

// Map returns a mapping value holding the given entries in order.
func Map(entries ...Entry) Value {
	m := &Mapping{index: make(map[string]int, len(entries))}
	for _, e := range entries {
		m.entries = append(m.entries, e)
		m.index[e.Key] = len(m.entries) - 1
	}
	return Value{typ: TypeMapping, m: m}
}

// Type returns the dynamic type of the value.
func (v Value) Type() Type {
	if v.typ == "" {
		return TypeNull
	}
	return v.typ
}

// IsNull reports whether the value is the null scalar.
func (v Value) IsNull() bool { return v.Type() == TypeNull }

// StringVal returns the string payload. ok is false for non-strings.
func (v Value) StringVal() (string, bool) {
	if v.typ != TypeString {
		return "", false
	}
	return v.str, true
}

// IntVal returns the integer payload. ok is false for non-integers,
// including floats with a zero fractional part: an int is only an int if
// the document said so.
func (v Value) IntVal() (int64, bool) {
	if v.typ != TypeInt {
		return 0, false
	}
	return v.num, true
}

// FloatVal returns the numeric payload as float64. Integers widen cleanly,
// so ok is true for both int and float scalars.
func (v Value) FloatVal() (float64, bool) {
	switch v.typ {
	case TypeFloat:
		return v.flt, true
	case TypeInt:
		return float64(v.num), true
	default:
		return 0, false
	}
}

// BoolVal returns the boolean payload. ok is false for non-bools; there is
// no truthy-string coercion.
func (v Value) BoolVal() (bool, bool) {
	if v.typ != TypeBool {
		return false, false
	}
	return v.b, true
}

// Items returns the elements of a sequence value.
func (v Value) Items() ([]Value, bool) {
	if v.typ != TypeSequence {
		return nil, false
	}
	return v.seq, true
}

// Fields returns the mapping payload.
func (v Value) Fields() (*Mapping, bool) {
	if v.typ != TypeMapping || v.m == nil {
		return nil, false
	}
	return v.m, true
}

// IsScalar reports whether the value is a non-container node (null
// included).
func (v Value) IsScalar() bool {
	switch v.Type() {
	case TypeSequence, TypeMapping:
		return false
	}
	return true
}

// Equal compares two values for validation purposes. Scalars of the same
// type compare by payload; int and float compare numerically so that an
// enum allowing 1 accepts 1.0. Containers compare element-wise.
func (v Value) Equal(o Value) bool {
	vt, ot := v.Type(), o.Type()
	if (vt == TypeInt || vt == TypeFloat) && (ot == TypeInt || ot == TypeFloat) {
		a, _ := v.FloatVal()
		b, _ := o.FloatVal()
		return a == b
	}
	if vt != ot {
		return false
	}
	switch vt {
	case TypeNull:
		return true
	case TypeString:
		return v.str == o.str
	case TypeBool:
		return v.b == o.b
	case TypeSequence:
		if len(v.seq) != len(o.seq) {
			return false
		}
		for i := range v.seq {
			if !v.seq[i].Equal(o.seq[i]) {
				return false
			}
		}
		return true
	case TypeMapping:
		if v.m.Len() != o.m.Len() {
			return false
		}
		for _, e := range v.m.entries {
			ov, ok := o.m.Get(e.Key)
			if !ok || !e.Value.Equal(ov) {
				return false
			}
		}
		return true
	}
	return false
}

// String renders the value for use in diagnostics. Strings are quoted,
// containers render in a compact flow style.
func (v Value) String() string {
	switch v.Type() {
	case TypeNull:
		return "null"
	case TypeString:
		return fmt.Sprintf("%q", v.str)
	case TypeInt:
		return fmt.Sprintf("%d", v.num)
	case TypeFloat:
		return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%f", v.flt), "0"), ".")
	case TypeBool:
		return fmt.Sprintf("%t", v.b)
	case TypeSequence:
		parts := make([]string, len(v.seq))
		for i, it := range v.seq {
			parts[i] = it.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case TypeMapping:
		parts := make([]string, 0, v.m.Len())
		for _, e := range v.m.entries {
			parts = append(parts, e.Key+": "+e.Value.String())
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return string(v.typ)
}

// Get returns the value for key. With duplicate keys the last occurrence
// wins.
func (m *Mapping) Get(key string) (Value, bool) {
	if m == nil {
		return Value{}, false
	}
	i, ok := m.index[key]
	if !ok {
		return Value{}, false
	}
	return m.entries[i].Value, true
}

// Has reports whether key is present.
func (m *Mapping) Has(key string) bool {
	if m == nil {
		return false
	}
	_, ok := m.index[key]
	return ok
}

// Keys returns the keys in document order. Duplicates appear once, at
// their first position.
func (m *Mapping) Keys() []string {
	if m == nil {
		return nil
	}
	keys := make([]string, 0, len(m.entries))
	seen := make(map[string]struct{}, len(m.entries))
	for _, e := range m.entries {
		if _, dup := seen[e.Key]; dup {
			continue
		}
		seen[e.Key] = struct{}{}
		keys = append(keys, e.Key)
	}
	return keys
}

// Entries returns all key/value pairs in document order, duplicates
// included.
func (m *Mapping) Entries() []Entry {
	if m == nil {
		return nil
	}
	return m.entries
}

// Len returns the number of distinct keys.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.index)
}

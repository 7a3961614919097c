/*
Copyright © 2025 Schemaguard Authors
SPDX-License-Identifier: Apache-2.0
*/

package schema

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/schemaguard/schemaguard/pkg/document"
	"github.com/schemaguard/schemaguard/pkg/suggest"
)

// Problem is one defect found in a schema document.
type Problem struct {
	Field   string `json:"field" yaml:"field"`
	Message string `json:"message" yaml:"message"`
}

func (p Problem) String() string {
	if p.Field == "" {
		return p.Message
	}
	return p.Field + ": " + p.Message
}

// Error aggregates every problem found in a schema document. A schema with
// any problem is never used for validation; the whole run is treated as
// un-attempted.
type Error struct {
	Problems []Problem
}

func (e *Error) Error() string {
	lines := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		lines[i] = p.String()
	}
	return "invalid schema: " + strings.Join(lines, "; ")
}

// legacy rule toggles from older schema documents. Their behavior is now
// always on, so they are accepted and ignored rather than rejected.
var legacyKeys = map[Kind][]string{
	KindFile:      {"must_exist", "must_be_readable", "non_empty"},
	KindDirectory: {"must_exist"},
}

// kindKeys lists the constraint keys each kind accepts, beyond the common
// "type" and "required". Any other key on a rule conflicts with its kind.
var kindKeys = map[Kind][]string{
	KindString:    {"min_length", "max_length", "regex"},
	KindInt:       {"min", "max"},
	KindFloat:     {"min", "max"},
	KindBool:      {},
	KindFile:      {"extensions"},
	KindDirectory: {"absolute", "must_be_absolute"},
	KindEnum:      {"allowed"},
	KindList:      {"element_type", "min_items", "max_items", "min_length", "max_length"},
}

// Parse builds a Schema from a decoded schema document and meta-validates
// it in the same pass. All problems are aggregated; the returned error is
// a *Error carrying every one of them. Field names with a leading
// underscore are reserved meta keys and are skipped; the top-level
// allow_extra_keys key sets the schema's extra-key policy instead of
// declaring a field.
func Parse(doc document.Value) (*Schema, error) {
	fields, ok := doc.Fields()
	if !ok {
		return nil, &Error{Problems: []Problem{{
			Message: fmt.Sprintf("schema document must be a mapping of field names to rules, got %s", doc.Type()),
		}}}
	}

	p := &parser{}
	s := &Schema{index: make(map[string]struct{}, fields.Len())}

	for _, entry := range fields.Entries() {
		name := entry.Key
		if strings.HasPrefix(name, "_") {
			continue
		}
		if name == "allow_extra_keys" {
			// Reserved top-level key: the schema's extra-key policy, not a
			// field rule.
			b, ok := entry.Value.BoolVal()
			if !ok {
				p.addf(name, "'allow_extra_keys' must be a boolean, got %s", entry.Value.Type())
				continue
			}
			s.extraKeys = &b
			continue
		}
		if _, dup := s.index[name]; dup {
			p.addf(name, "duplicate field name")
			continue
		}

		rule, ok := p.parseRule(name, entry.Value)
		if !ok {
			// Problems already recorded; keep going so every defect in the
			// schema is reported in one run.
			continue
		}

		s.fields = append(s.fields, Field{Name: name, Rule: rule})
		s.index[name] = struct{}{}
	}

	if len(p.problems) > 0 {
		return nil, &Error{Problems: p.problems}
	}
	return s, nil
}

// Check meta-validates a schema document without keeping the parsed form.
// It backs "check my schema" tooling.
func Check(doc document.Value) []Problem {
	if _, err := Parse(doc); err != nil {
		if serr, ok := err.(*Error); ok {
			return serr.Problems
		}
		return []Problem{{Message: err.Error()}}
	}
	return nil
}

type parser struct {
	problems []Problem
}

func (p *parser) addf(field, format string, args ...any) {
	p.problems = append(p.problems, Problem{Field: field, Message: fmt.Sprintf(format, args...)})
}

// parseRule builds the Rule for one schema field. It records every problem
// it finds instead of stopping at the first; ok is false when the rule is
// unusable.
func (p *parser) parseRule(field string, v document.Value) (Rule, bool) {
	before := len(p.problems)

	m, ok := v.Fields()
	if !ok {
		p.addf(field, "rule must be a mapping with a 'type' key, got %s", v.Type())
		return Rule{}, false
	}

	kind, ok := p.parseType(field, m)
	if !ok {
		return Rule{}, false
	}

	rule := Rule{Kind: kind}
	rule.Required = p.boolKey(field, m, "required")

	p.checkKeys(field, m, kind)

	switch kind {
	case KindString:
		rule.MinLength = p.intKey(field, m, "min_length")
		rule.MaxLength = p.intKey(field, m, "max_length")
		rule.Pattern, rule.Regex = p.regexKey(field, m)
		p.checkIntBounds(field, "min_length", "max_length", rule.MinLength, rule.MaxLength)

	case KindInt, KindFloat:
		rule.Min = p.numKey(field, m, "min")
		rule.Max = p.numKey(field, m, "max")
		if rule.Min != nil && rule.Max != nil && *rule.Min > *rule.Max {
			p.addf(field, "min (%v) must not exceed max (%v)", *rule.Min, *rule.Max)
		}

	case KindFile:
		rule.Extensions = p.extensionsKey(field, m)

	case KindDirectory:
		rule.Absolute = p.boolKey(field, m, "absolute") || p.boolKey(field, m, "must_be_absolute")

	case KindEnum:
		rule.Allowed = p.allowedKey(field, m)

	case KindList:
		rule.MinItems = p.itemBound(field, m, "min_items", "min_length")
		rule.MaxItems = p.itemBound(field, m, "max_items", "max_length")
		p.checkIntBounds(field, "min_items", "max_items", rule.MinItems, rule.MaxItems)
		rule.Element = p.elementRule(field, m)
	}

	return rule, len(p.problems) == before
}

func (p *parser) parseType(field string, m *document.Mapping) (Kind, bool) {
	tv, ok := m.Get("type")
	if !ok {
		p.addf(field, "rule is missing the mandatory 'type' key")
		return "", false
	}
	name, ok := tv.StringVal()
	if !ok {
		p.addf(field, "'type' must be a string, got %s", tv.Type())
		return "", false
	}
	kind, ok := ParseKind(name)
	if !ok {
		if hint, found := suggest.Closest(name, kindNames()); found {
			p.addf(field, "unsupported type %q (did you mean %q?)", name, hint)
		} else {
			p.addf(field, "unsupported type %q, supported types: %s", name, strings.Join(kindNames(), ", "))
		}
		return "", false
	}
	return kind, true
}

// checkKeys rejects constraint keys that conflict with the declared kind,
// e.g. regex on an int rule.
func (p *parser) checkKeys(field string, m *document.Mapping, kind Kind) {
	allowed := map[string]struct{}{"type": {}, "required": {}}
	for _, k := range kindKeys[kind] {
		allowed[k] = struct{}{}
	}
	for _, k := range legacyKeys[kind] {
		allowed[k] = struct{}{}
	}
	if kind == KindList {
		// Element-level constraints live on the list rule itself and apply
		// to every element.
		if ek, ok := p.elementKind(field, m, false); ok {
			for _, k := range kindKeys[ek] {
				allowed[k] = struct{}{}
			}
			for _, k := range legacyKeys[ek] {
				allowed[k] = struct{}{}
			}
		}
	}
	for _, key := range m.Keys() {
		if _, ok := allowed[key]; ok {
			if isLegacyKey(kind, key) {
				slog.Debug("ignoring legacy schema key, behavior is always enforced",
					"field", field, "key", key)
			}
			continue
		}
		p.addf(field, "key %q conflicts with type %q", key, kind)
	}
}

func isLegacyKey(kind Kind, key string) bool {
	for _, k := range legacyKeys[kind] {
		if k == key {
			return true
		}
	}
	return false
}

// elementKind resolves the element_type of a list rule. Problems are only
// recorded when report is true, so it can be called twice per rule without
// duplicating messages.
func (p *parser) elementKind(field string, m *document.Mapping, report bool) (Kind, bool) {
	ev, ok := m.Get("element_type")
	if !ok {
		if report {
			p.addf(field, "list rule is missing the mandatory 'element_type' key")
		}
		return "", false
	}
	name, ok := ev.StringVal()
	if !ok {
		if report {
			p.addf(field, "'element_type' must be a string, got %s", ev.Type())
		}
		return "", false
	}
	kind, ok := ParseKind(name)
	if !ok {
		if report {
			if hint, found := suggest.Closest(name, kindNames()); found {
				p.addf(field, "unsupported element_type %q (did you mean %q?)", name, hint)
			} else {
				p.addf(field, "unsupported element_type %q", name)
			}
		}
		return "", false
	}
	if kind == KindList {
		if report {
			p.addf(field, "element_type %q is not supported, lists do not nest", name)
		}
		return "", false
	}
	return kind, true
}

// elementRule builds the synthetic rule applied to each list element. The
// element kind's constraint keys are read from the list rule itself, so a
// list of strings may carry a regex that applies per element.
func (p *parser) elementRule(field string, m *document.Mapping) *Rule {
	kind, ok := p.elementKind(field, m, true)
	if !ok {
		return nil
	}

	elem := &Rule{Kind: kind}
	switch kind {
	case KindString:
		elem.Pattern, elem.Regex = p.regexKey(field, m)
	case KindInt, KindFloat:
		elem.Min = p.numKey(field, m, "min")
		elem.Max = p.numKey(field, m, "max")
		if elem.Min != nil && elem.Max != nil && *elem.Min > *elem.Max {
			p.addf(field, "min (%v) must not exceed max (%v)", *elem.Min, *elem.Max)
		}
	case KindFile:
		elem.Extensions = p.extensionsKey(field, m)
	case KindDirectory:
		elem.Absolute = p.boolKey(field, m, "absolute") || p.boolKey(field, m, "must_be_absolute")
	case KindEnum:
		elem.Allowed = p.allowedKey(field, m)
	}
	return elem
}

func (p *parser) boolKey(field string, m *document.Mapping, key string) bool {
	v, ok := m.Get(key)
	if !ok {
		return false
	}
	b, ok := v.BoolVal()
	if !ok {
		p.addf(field, "%q must be a boolean, got %s", key, v.Type())
		return false
	}
	return b
}

func (p *parser) intKey(field string, m *document.Mapping, key string) *int {
	v, ok := m.Get(key)
	if !ok {
		return nil
	}
	i, ok := v.IntVal()
	if !ok {
		p.addf(field, "%q must be an integer, got %s", key, v.Type())
		return nil
	}
	if i < 0 {
		p.addf(field, "%q must not be negative, got %d", key, i)
		return nil
	}
	n := int(i)
	return &n
}

func (p *parser) numKey(field string, m *document.Mapping, key string) *float64 {
	v, ok := m.Get(key)
	if !ok {
		return nil
	}
	f, ok := v.FloatVal()
	if !ok {
		p.addf(field, "%q must be a number, got %s", key, v.Type())
		return nil
	}
	return &f
}

func (p *parser) itemBound(field string, m *document.Mapping, key, alias string) *int {
	if m.Has(key) {
		return p.intKey(field, m, key)
	}
	// min_length/max_length on a list rule bound the sequence length.
	return p.intKey(field, m, alias)
}

func (p *parser) checkIntBounds(field, minKey, maxKey string, lo, hi *int) {
	if lo != nil && hi != nil && *lo > *hi {
		p.addf(field, "%s (%d) must not exceed %s (%d)", minKey, *lo, maxKey, *hi)
	}
}

func (p *parser) regexKey(field string, m *document.Mapping) (string, *regexp.Regexp) {
	v, ok := m.Get("regex")
	if !ok {
		return "", nil
	}
	pattern, ok := v.StringVal()
	if !ok {
		p.addf(field, "'regex' must be a string, got %s", v.Type())
		return "", nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		p.addf(field, "invalid regex %q: %v", pattern, err)
		return "", nil
	}
	return pattern, re
}

func (p *parser) extensionsKey(field string, m *document.Mapping) []string {
	v, ok := m.Get("extensions")
	if !ok {
		return nil
	}
	items, ok := v.Items()
	if !ok {
		p.addf(field, "'extensions' must be a sequence of suffix strings, got %s", v.Type())
		return nil
	}
	exts := make([]string, 0, len(items))
	for i, it := range items {
		s, ok := it.StringVal()
		if !ok {
			p.addf(field, "extensions[%d] must be a string, got %s", i, it.Type())
			continue
		}
		exts = append(exts, s)
	}
	return exts
}

// allowedKey parses the enum membership list: non-empty, scalar entries,
// homogeneous in comparison type (int and float count as one numeric
// group).
func (p *parser) allowedKey(field string, m *document.Mapping) []document.Value {
	v, ok := m.Get("allowed")
	if !ok {
		p.addf(field, "enum rule is missing the mandatory 'allowed' key")
		return nil
	}
	items, ok := v.Items()
	if !ok {
		p.addf(field, "'allowed' must be a sequence, got %s", v.Type())
		return nil
	}
	if len(items) == 0 {
		p.addf(field, "'allowed' must not be empty")
		return nil
	}

	group := ""
	for i, it := range items {
		g := comparisonGroup(it)
		if g == "" {
			p.addf(field, "allowed[%d] must be a scalar, got %s", i, it.Type())
			return nil
		}
		if group == "" {
			group = g
		} else if g != group {
			p.addf(field, "'allowed' entries must be homogeneous, mixes %s and %s", group, g)
			return nil
		}
	}
	return items
}

func comparisonGroup(v document.Value) string {
	switch v.Type() {
	case document.TypeString:
		return "string"
	case document.TypeInt, document.TypeFloat:
		return "number"
	case document.TypeBool:
		return "bool"
	}
	return ""
}

func kindNames() []string {
	names := make([]string, 0, len(kinds)+1)
	for _, k := range kinds {
		names = append(names, string(k))
	}
	return append(names, "dir")
}

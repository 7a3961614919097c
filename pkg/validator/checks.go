/*
Copyright © 2025 Schemaguard Authors
SPDX-License-Identifier: Apache-2.0
*/

package validator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/schemaguard/schemaguard/pkg/document"
	"github.com/schemaguard/schemaguard/pkg/schema"
)

// checkFunc validates one value against one rule, returning zero or more
// findings. Checkers are pure with respect to the validator: the only side
// effects are the filesystem probes of the file and directory kinds.
type checkFunc func(v *Validator, path string, rule schema.Rule, value document.Value, depth int) []Finding

// checks is the dispatch table from rule kind to checker. Adding a kind
// means adding one entry here plus its checker; the traversal in
// validator.go does not change. Populated in init because checkList
// recurses through checkField and back into the table.
var checks map[schema.Kind]checkFunc

func init() {
	checks = map[schema.Kind]checkFunc{
		schema.KindString:    checkString,
		schema.KindInt:       checkInt,
		schema.KindFloat:     checkFloat,
		schema.KindBool:      checkBool,
		schema.KindFile:      checkFile,
		schema.KindDirectory: checkDirectory,
		schema.KindEnum:      checkEnum,
		schema.KindList:      checkList,
	}
}

func mismatch(path string, want string, value document.Value) Finding {
	return Finding{
		Field:   path,
		Code:    CodeTypeMismatch,
		Message: fmt.Sprintf("expected %s, got %s", want, value.Type()),
	}
}

func violation(path, format string, args ...any) Finding {
	return Finding{Field: path, Code: CodeConstraintViolation, Message: fmt.Sprintf(format, args...)}
}

func fsError(path, format string, args ...any) Finding {
	return Finding{Field: path, Code: CodeFilesystemError, Message: fmt.Sprintf(format, args...)}
}

func checkString(_ *Validator, path string, rule schema.Rule, value document.Value, _ int) []Finding {
	s, ok := value.StringVal()
	if !ok {
		return []Finding{mismatch(path, "string", value)}
	}

	var findings []Finding
	// Length bounds count characters, not bytes.
	n := utf8.RuneCountInString(s)
	if rule.MinLength != nil && n < *rule.MinLength {
		findings = append(findings, violation(path, "string is shorter than minimum length %d (length %d)", *rule.MinLength, n))
	}
	if rule.MaxLength != nil && n > *rule.MaxLength {
		findings = append(findings, violation(path, "string is longer than maximum length %d (length %d)", *rule.MaxLength, n))
	}
	// Unanchored search: a match anywhere in the string satisfies the
	// pattern. Callers wanting a full match anchor with ^$ themselves.
	if rule.Regex != nil && !rule.Regex.MatchString(s) {
		findings = append(findings, violation(path, "value %q does not match pattern %q", s, rule.Pattern))
	}
	return findings
}

func checkInt(_ *Validator, path string, rule schema.Rule, value document.Value, _ int) []Finding {
	i, ok := value.IntVal()
	if !ok {
		// A float never satisfies an int rule, even with a zero fraction:
		// values are not truncated into compliance.
		return []Finding{mismatch(path, "int", value)}
	}
	return checkNumericBounds(path, rule, float64(i), value)
}

func checkFloat(_ *Validator, path string, rule schema.Rule, value document.Value, _ int) []Finding {
	f, ok := value.FloatVal()
	if !ok {
		return []Finding{mismatch(path, "float", value)}
	}
	return checkNumericBounds(path, rule, f, value)
}

// checkNumericBounds checks each inclusive bound explicitly so messages
// name the violated side.
func checkNumericBounds(path string, rule schema.Rule, f float64, value document.Value) []Finding {
	var findings []Finding
	if rule.Min != nil && f < *rule.Min {
		findings = append(findings, violation(path, "value %s is less than minimum %v", value, *rule.Min))
	}
	if rule.Max != nil && f > *rule.Max {
		findings = append(findings, violation(path, "value %s is greater than maximum %v", value, *rule.Max))
	}
	return findings
}

func checkBool(_ *Validator, path string, _ schema.Rule, value document.Value, _ int) []Finding {
	// Strict: the string "true" is a type mismatch, not a bool.
	if _, ok := value.BoolVal(); !ok {
		return []Finding{mismatch(path, "bool", value)}
	}
	return nil
}

func checkFile(_ *Validator, path string, rule schema.Rule, value document.Value, _ int) []Finding {
	target, ok := value.StringVal()
	if !ok {
		return []Finding{mismatch(path, "file path string", value)}
	}

	var findings []Finding
	if len(rule.Extensions) > 0 && !hasAllowedSuffix(target, rule.Extensions) {
		findings = append(findings, violation(path, "file extension of %q not in allowed set %v", target, rule.Extensions))
	}

	info, err := os.Stat(target)
	switch {
	case os.IsNotExist(err):
		return append(findings, fsError(path, "file does not exist: %s", target))
	case err != nil:
		// Transient filesystem errors count as validation failures; there
		// is no retry.
		return append(findings, fsError(path, "unable to stat file %s: %v", target, err))
	}

	if !info.Mode().IsRegular() {
		return append(findings, fsError(path, "not a regular file: %s", target))
	}
	if f, err := os.Open(target); err != nil {
		findings = append(findings, fsError(path, "file is not readable: %s", target))
	} else {
		_ = f.Close()
	}
	if info.Size() == 0 {
		findings = append(findings, fsError(path, "file is empty: %s", target))
	}
	return findings
}

// hasAllowedSuffix does a case-sensitive exact match on the suffix text.
func hasAllowedSuffix(target string, extensions []string) bool {
	for _, ext := range extensions {
		if strings.HasSuffix(target, ext) {
			return true
		}
	}
	return false
}

func checkDirectory(_ *Validator, path string, rule schema.Rule, value document.Value, _ int) []Finding {
	target, ok := value.StringVal()
	if !ok {
		return []Finding{mismatch(path, "directory path string", value)}
	}

	var findings []Finding
	if rule.Absolute && !filepath.IsAbs(target) {
		findings = append(findings, fsError(path, "directory path must be absolute: %s", target))
	}

	info, err := os.Stat(target)
	switch {
	case os.IsNotExist(err):
		return append(findings, fsError(path, "directory does not exist: %s", target))
	case err != nil:
		return append(findings, fsError(path, "unable to stat directory %s: %v", target, err))
	case !info.IsDir():
		return append(findings, fsError(path, "not a directory: %s", target))
	}
	return findings
}

func checkEnum(_ *Validator, path string, rule schema.Rule, value document.Value, _ int) []Finding {
	for _, allowed := range rule.Allowed {
		if value.Equal(allowed) {
			return nil
		}
	}
	return []Finding{violation(path, "value %s not in allowed set %s", value, document.Sequence(rule.Allowed...))}
}

func checkList(v *Validator, path string, rule schema.Rule, value document.Value, depth int) []Finding {
	items, ok := value.Items()
	if !ok {
		return []Finding{mismatch(path, "list", value)}
	}

	var findings []Finding
	if rule.MinItems != nil && len(items) < *rule.MinItems {
		findings = append(findings, violation(path, "list has fewer than minimum %d items (length %d)", *rule.MinItems, len(items)))
	}
	if rule.MaxItems != nil && len(items) > *rule.MaxItems {
		findings = append(findings, violation(path, "list has more than maximum %d items (length %d)", *rule.MaxItems, len(items)))
	}

	if rule.Element == nil {
		return findings
	}
	if depth >= v.MaxDepth {
		return append(findings, violation(path, "nesting exceeds maximum depth %d", v.MaxDepth))
	}

	// Elements are checked even when the length bound already failed; both
	// kinds of findings may coexist in one run.
	for i, item := range items {
		elemPath := fmt.Sprintf("%s[%d]", path, i)
		findings = append(findings, v.checkField(elemPath, *rule.Element, item, true, depth+1)...)
	}
	return findings
}

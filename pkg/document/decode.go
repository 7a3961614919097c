/*
Copyright © 2025 Schemaguard Authors
SPDX-License-Identifier: Apache-2.0
*/

package document

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/schemaguard/schemaguard/pkg/errors"
)

// Parse decodes YAML (or JSON, which YAML subsumes) into a Value tree. An
// empty document decodes to an empty mapping so callers can always
// traverse the result. The yaml.Node API is used instead of plain
// Unmarshal because it preserves mapping key order. Failures carry the
// DECODE_ERROR code.
func Parse(data []byte) (Value, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return Value{}, errors.Wrap(errors.ErrCodeDecode, "failed to decode document", err)
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return Map(), nil
	}
	return fromNode(root.Content[0])
}

// FromFile reads and decodes the document at path.
func FromFile(path string) (Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Value{}, errors.Wrap(errors.ErrCodeDecode, "failed to read "+path, err)
	}
	v, err := Parse(data)
	if err != nil {
		return Value{}, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

func fromNode(n *yaml.Node) (Value, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return fromNode(n.Alias)

	case yaml.ScalarNode:
		return fromScalar(n)

	case yaml.SequenceNode:
		items := make([]Value, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := fromNode(c)
			if err != nil {
				return Value{}, err
			}
			items = append(items, v)
		}
		return Sequence(items...), nil

	case yaml.MappingNode:
		entries := make([]Entry, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			keyNode := n.Content[i]
			if keyNode.Kind != yaml.ScalarNode {
				return Value{}, errors.Newf(errors.ErrCodeDecode, "line %d: mapping keys must be scalar strings", keyNode.Line)
			}
			var key string
			if err := keyNode.Decode(&key); err != nil {
				return Value{}, errors.Wrap(errors.ErrCodeDecode, fmt.Sprintf("line %d: failed to decode mapping key", keyNode.Line), err)
			}
			v, err := fromNode(n.Content[i+1])
			if err != nil {
				return Value{}, err
			}
			entries = append(entries, Entry{Key: key, Value: v})
		}
		return Map(entries...), nil
	}

	return Value{}, errors.Newf(errors.ErrCodeDecode, "line %d: unsupported node kind %d", n.Line, n.Kind)
}

func fromScalar(n *yaml.Node) (Value, error) {
	switch n.ShortTag() {
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return Value{}, errors.Wrap(errors.ErrCodeDecode, fmt.Sprintf("line %d: invalid bool scalar", n.Line), err)
		}
		return Bool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			return Value{}, errors.Wrap(errors.ErrCodeDecode, fmt.Sprintf("line %d: invalid int scalar", n.Line), err)
		}
		return Int(i), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return Value{}, errors.Wrap(errors.ErrCodeDecode, fmt.Sprintf("line %d: invalid float scalar", n.Line), err)
		}
		return Float(f), nil
	case "!!null":
		return Null(), nil
	default:
		// Timestamps, quoted scalars and anything custom-tagged decode as
		// plain strings.
		return String(n.Value), nil
	}
}

/*
Copyright © 2025 Schemaguard Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package serializer renders reports and other resources to files, stdout,
// or HTTP responses in YAML, JSON, or a flattened table form.
package serializer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// Format selects the output encoding.
type Format string

const (
	FormatYAML  Format = "yaml"
	FormatJSON  Format = "json"
	FormatTable Format = "table"
)

// IsUnknown reports whether the format is not one of the supported ones.
func (f Format) IsUnknown() bool {
	switch f {
	case FormatYAML, FormatJSON, FormatTable:
		return false
	}
	return true
}

// Writer serializes values to a destination in a fixed format. Unknown
// formats fall back to JSON.
type Writer struct {
	format Format
	out    io.Writer
	path   string
	file   *os.File
}

// NewWriter creates a Writer targeting out.
func NewWriter(format Format, out io.Writer) *Writer {
	if out == nil {
		out = os.Stdout
	}
	return &Writer{format: format, out: out}
}

// NewStdoutWriter creates a Writer targeting stdout.
func NewStdoutWriter(format Format) *Writer {
	return NewWriter(format, os.Stdout)
}

// NewFileWriterOrStdout creates a Writer targeting the given file path, or
// stdout when path is empty or "-". The file is created on first
// Serialize.
func NewFileWriterOrStdout(format Format, path string) *Writer {
	if path == "" || path == StdoutURI {
		return NewStdoutWriter(format)
	}
	return &Writer{format: format, path: path}
}

// Serialize encodes data to the destination.
func (w *Writer) Serialize(_ context.Context, data any) error {
	out := w.out
	if out == nil {
		f, err := os.Create(w.path)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		w.file = f
		out = f
	}

	switch w.format {
	case FormatYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(data); err != nil {
			return fmt.Errorf("failed to serialize to yaml: %w", err)
		}
		return enc.Close()
	case FormatTable:
		return writeTable(out, data)
	default:
		// JSON, including the fallback for unknown formats.
		j, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to serialize to json: %w", err)
		}
		_, err = fmt.Fprintln(out, string(j))
		return err
	}
}

// Close releases the underlying file, if any. Closing a stdout writer is a
// no-op.
func (w *Writer) Close() error {
	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	return err
}

// writeTable renders data as a two-column FIELD/VALUE table over the
// flattened structure, e.g. "findings[0].code". Flattening goes through a
// JSON round-trip so any serializable value works.
func writeTable(out io.Writer, data any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to flatten for table output: %w", err)
	}
	var tree any
	if err := json.Unmarshal(raw, &tree); err != nil {
		return fmt.Errorf("failed to flatten for table output: %w", err)
	}

	rows := flatten("", tree)
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FIELD\tVALUE")
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s\n", row[0], row[1])
	}
	return tw.Flush()
}

func flatten(prefix string, v any) [][2]string {
	switch t := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var rows [][2]string
		for _, k := range keys {
			p := k
			if prefix != "" {
				p = prefix + "." + k
			}
			rows = append(rows, flatten(p, t[k])...)
		}
		return rows
	case []any:
		var rows [][2]string
		for i, item := range t {
			rows = append(rows, flatten(fmt.Sprintf("%s[%d]", prefix, i), item)...)
		}
		return rows
	case nil:
		return [][2]string{{prefix, ""}}
	default:
		s := fmt.Sprintf("%v", t)
		s = strings.ReplaceAll(s, "\n", " ")
		return [][2]string{{prefix, s}}
	}
}

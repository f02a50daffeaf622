package fieldmap

import (
	"errors"
	"fmt"
	"strings"
)

// NotFound is returned by Lookup for labels missing from the header
const NotFound = -1

// ErrShortRow is returned by Check for rows not reaching every mapped column
var ErrShortRow = errors.New("row has fewer columns than the header")

// Field pairs a known label with its column position
type Field struct {
	Label string
	Index int
}

// FieldMap maps semantic column labels to column positions of one source file.
// It is built once from the header row and only read afterwards.
type FieldMap struct {
	fields []Field
	width  int
}

// New scans header from left to right and records every column whose
// text matches one of labels exactly. A label matching several columns
// is recorded for each of them, Lookup returns the first.
func New(header []string, labels []string) *FieldMap {
	known := make(map[string]struct{}, len(labels))
	for _, label := range labels {
		known[label] = struct{}{}
	}

	m := &FieldMap{}
	for i, column := range header {
		column = cleanHeader(column)
		if _, ok := known[column]; !ok {
			continue
		}
		m.fields = append(m.fields, Field{Label: column, Index: i})
		if i+1 > m.width {
			m.width = i + 1
		}
	}

	return m
}

// Lookup returns the column of label or NotFound
func (m *FieldMap) Lookup(label string) int {
	if m == nil {
		return NotFound
	}
	for _, field := range m.fields {
		if field.Label == label {
			return field.Index
		}
	}
	return NotFound
}

// Has reports whether label is present in the header
func (m *FieldMap) Has(label string) bool {
	return m.Lookup(label) != NotFound
}

// Value returns the cell of row for label.
// Missing labels and missing cells both give an empty string.
func (m *FieldMap) Value(row []string, label string) string {
	index := m.Lookup(label)
	if index == NotFound || index >= len(row) {
		return ""
	}
	return row[index]
}

// Check returns ErrShortRow if row ends before the last mapped column
func (m *FieldMap) Check(row []string) error {
	if m == nil || len(row) >= m.width {
		return nil
	}
	return fmt.Errorf("%w: got %d, need %d", ErrShortRow, len(row), m.width)
}

// Fields returns a copy of the recorded pairs in header order
func (m *FieldMap) Fields() []Field {
	if m == nil {
		return nil
	}
	fields := make([]Field, len(m.fields))
	copy(fields, m.fields)
	return fields
}

// Len returns the number of recorded pairs
func (m *FieldMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.fields)
}

// Missing returns the labels that have no column in the header
func (m *FieldMap) Missing(labels []string) []string {
	var missing []string
	for _, label := range labels {
		if !m.Has(label) {
			missing = append(missing, label)
		}
	}
	return missing
}

// cleanHeader trims whitespace and a UTF-8 byte order mark left on the first column
func cleanHeader(column string) string {
	return strings.TrimSpace(strings.TrimPrefix(column, "\ufeff"))
}

package payroll

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Table is a dict-of-records keyed by string ID. Keys keep insertion order,
// both in memory and when encoded to JSON.
type Table[T any] struct {
	ids  []string
	rows map[string]T
}

// NewTable returns an empty table.
func NewTable[T any]() *Table[T] {
	return &Table[T]{rows: make(map[string]T)}
}

// Put inserts or replaces the row stored under id.
func (t *Table[T]) Put(id string, row T) {
	if t.rows == nil {
		t.rows = make(map[string]T)
	}
	if _, exists := t.rows[id]; !exists {
		t.ids = append(t.ids, id)
	}
	t.rows[id] = row
}

// Get returns the row stored under id.
func (t *Table[T]) Get(id string) (T, bool) {
	row, ok := t.rows[id]
	return row, ok
}

// Has reports whether id is present.
func (t *Table[T]) Has(id string) bool {
	_, ok := t.rows[id]
	return ok
}

// Len returns the number of rows.
func (t *Table[T]) Len() int { return len(t.ids) }

// IDs returns a copy of the keys in insertion order.
func (t *Table[T]) IDs() []string {
	out := make([]string, len(t.ids))
	copy(out, t.ids)
	return out
}

// Rows returns the rows in insertion order.
func (t *Table[T]) Rows() []T {
	out := make([]T, 0, len(t.ids))
	for _, id := range t.ids {
		out = append(out, t.rows[id])
	}
	return out
}

// MaxNumericID returns the largest key that parses as an integer.
// ok is false when no key is numeric.
func (t *Table[T]) MaxNumericID() (maxID int, ok bool) {
	for _, id := range t.ids {
		n, err := strconv.Atoi(id)
		if err != nil {
			continue
		}
		if !ok || n > maxID {
			maxID, ok = n, true
		}
	}
	return maxID, ok
}

// MarshalJSON encodes the table as a JSON object in insertion order.
// HTML characters are left unescaped.
func (t *Table[T]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	buf.WriteByte('{')
	for i, id := range t.ids {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := enc.Encode(id); err != nil {
			return nil, err
		}
		buf.Truncate(buf.Len() - 1)
		buf.WriteByte(':')
		if err := enc.Encode(t.rows[id]); err != nil {
			return nil, fmt.Errorf("payroll: encode row %q: %w", id, err)
		}
		buf.Truncate(buf.Len() - 1)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, keeping the key order of the input.
func (t *Table[T]) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("payroll: decode table: %w", err)
	}
	t.ids = nil
	t.rows = make(map[string]T)
	if tok == nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("payroll: table must be a json object")
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("payroll: decode table key: %w", err)
		}
		id, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("payroll: unexpected table key %v", keyTok)
		}
		var row T
		if err := dec.Decode(&row); err != nil {
			return fmt.Errorf("payroll: decode row %q: %w", id, err)
		}
		t.Put(id, row)
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("payroll: decode table end: %w", err)
	}
	return nil
}

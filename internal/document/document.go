package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Value is one node of a decoded results document: a map, a list, or a
// scalar. Lookups on absent keys or mismatched shapes return the zero
// Value, so callers chain accessors and apply defaults at the leaves.
type Value struct {
	raw any
}

// Decode parses raw JSON bytes into a document tree.
func Decode(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return Value{}, fmt.Errorf("decode document: %w", err)
	}
	return Value{raw: raw}, nil
}

// Exists reports whether the node is present and non-null.
func (v Value) Exists() bool {
	return v.raw != nil
}

// Field returns the named child of a map node.
func (v Value) Field(key string) Value {
	m, ok := v.raw.(map[string]any)
	if !ok {
		return Value{}
	}
	return Value{raw: m[key]}
}

// List returns the elements of a list node.
func (v Value) List() []Value {
	items, ok := v.raw.([]any)
	if !ok {
		return nil
	}
	out := make([]Value, len(items))
	for i, item := range items {
		out[i] = Value{raw: item}
	}
	return out
}

// Str returns the node as a string, or def if it is not a string.
func (v Value) Str(def string) string {
	s, ok := v.raw.(string)
	if !ok {
		return def
	}
	return s
}

// Int returns the node as an int, or def if it is not numeric.
// Fractional values are truncated.
func (v Value) Int(def int) int {
	n, ok := v.raw.(json.Number)
	if !ok {
		return def
	}
	if i, err := n.Int64(); err == nil {
		return int(i)
	}
	if f, err := n.Float64(); err == nil {
		return int(f)
	}
	return def
}

// Time parses the node as an RFC 3339 timestamp.
func (v Value) Time() (time.Time, bool) {
	s, ok := v.raw.(string)
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

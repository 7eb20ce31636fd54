// Package attributes validates and coerces untyped key/value data.
//
// A Bag wraps a raw mapping, either caller supplied parameters or a decoded
// JSON object, and is never mutated after construction. Values are read
// through an Accessor obtained with one of two policies:
//
//	bag.MustHave("length").AsInteger()   // missing key fails
//	bag.MayHave("template").AsString()   // missing key yields ""
//
// Coercions return the typed value or a *MissingRequiredAttributeError /
// *InvalidAttributeValueError. Both match errors.Is against
// ErrMissingRequiredAttribute and ErrInvalidAttributeValue.
package attributes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Bag is an immutable set of named attributes.
type Bag struct {
	values map[string]any
	keys   []string
}

// New copies values into a Bag. Nested mappings and lists are copied too.
func New(values map[string]any) *Bag {
	b := &Bag{
		values: make(map[string]any, len(values)),
		keys:   make([]string, 0, len(values)),
	}
	for k, v := range values {
		b.values[k] = cloneValue(v)
		b.keys = append(b.keys, k)
	}
	sort.Strings(b.keys)
	return b
}

// Empty returns a Bag with no attributes.
func Empty() *Bag {
	return New(nil)
}

// Decode parses a JSON object into a Bag. Numbers are kept as json.Number.
func Decode(data []byte) (*Bag, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("attributes: decode: %w", err)
	}
	return New(raw), nil
}

// Len reports the number of keys, including keys holding null.
func (b *Bag) Len() int {
	if b == nil {
		return 0
	}
	return len(b.keys)
}

// Keys returns the keys in sorted order.
func (b *Bag) Keys() []string {
	if b == nil {
		return nil
	}
	out := make([]string, len(b.keys))
	copy(out, b.keys)
	return out
}

// Has reports whether key holds a non-null value.
func (b *Bag) Has(key string) bool {
	_, ok := b.get(key)
	return ok
}

// Raw returns a deep copy of the underlying mapping.
func (b *Bag) Raw() map[string]any {
	if b == nil {
		return map[string]any{}
	}
	out := make(map[string]any, len(b.values))
	for k, v := range b.values {
		out[k] = cloneValue(v)
	}
	return out
}

// MustHave returns an accessor whose coercions fail when key is missing.
func (b *Bag) MustHave(key string) Accessor {
	v, ok := b.get(key)
	return Accessor{key: key, value: v, present: ok, required: true}
}

// MayHave returns an accessor whose coercions yield the neutral default when
// key is missing.
func (b *Bag) MayHave(key string) Accessor {
	v, ok := b.get(key)
	return Accessor{key: key, value: v, present: ok}
}

func (b *Bag) get(key string) (any, bool) {
	if b == nil {
		return nil, false
	}
	v, ok := b.values[key]
	if !ok || v == nil {
		return nil, false
	}
	return cloneValue(v), true
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, inner := range t {
			out[k] = cloneValue(inner)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, inner := range t {
			out[i] = cloneValue(inner)
		}
		return out
	default:
		return v
	}
}

package attributes

import (
	"fmt"
	"time"
)

// Accessor is the result of looking up one key in a Bag under a MustHave or
// MayHave policy. It is a value type and holds its own copy of the value.
type Accessor struct {
	key      string
	value    any
	present  bool
	required bool
}

// resolve returns the value to coerce. ok is false when the neutral default
// applies. An empty string counts as missing for non-string targets under
// MayHave.
func (a Accessor) resolve(emptyIsMissing bool) (v any, ok bool, err error) {
	if !a.present {
		if a.required {
			return nil, false, missingErr(a.key)
		}
		return nil, false, nil
	}
	if emptyIsMissing && !a.required {
		if s, isString := a.value.(string); isString && s == "" {
			return nil, false, nil
		}
	}
	return a.value, true, nil
}

// AsInteger coerces numbers and numeric strings to int, truncating fractions.
func (a Accessor) AsInteger() (int, error) {
	v, ok, err := a.resolve(true)
	if err != nil || !ok {
		return 0, err
	}
	n, ok := toInteger(v)
	if !ok {
		return 0, invalidErr(a.key, TypeInteger, v)
	}
	return n, nil
}

// AsFloat coerces numbers and numeric strings to float64.
func (a Accessor) AsFloat() (float64, error) {
	v, ok, err := a.resolve(true)
	if err != nil || !ok {
		return 0, err
	}
	f, ok := toFloat(v)
	if !ok {
		return 0, invalidErr(a.key, TypeFloat, v)
	}
	return f, nil
}

// AsString returns the string form of the value. Every predicate must accept
// it. Predicates run on present values only.
func (a Accessor) AsString(predicates ...Predicate) (string, error) {
	v, ok, err := a.resolve(false)
	if err != nil || !ok {
		return "", err
	}
	s, ok := toString(v)
	if !ok {
		return "", invalidErr(a.key, TypeString, v)
	}
	for _, pred := range predicates {
		if pred != nil && !pred(s) {
			return "", invalidErr(a.key, TypeString, s)
		}
	}
	return s, nil
}

// AsBool coerces booleans, boolean strings and numbers.
func (a Accessor) AsBool() (bool, error) {
	v, ok, err := a.resolve(true)
	if err != nil || !ok {
		return false, err
	}
	b, ok := toBool(v)
	if !ok {
		return false, invalidErr(a.key, TypeBool, v)
	}
	return b, nil
}

// AsDateTime parses an ISO-8601 timestamp. A missing MayHave value yields the
// zero time.
func (a Accessor) AsDateTime() (time.Time, error) {
	v, ok, err := a.resolve(true)
	if err != nil || !ok {
		return time.Time{}, err
	}
	t, ok := toDateTime(v)
	if !ok {
		return time.Time{}, invalidErr(a.key, TypeDateTime, v)
	}
	return t, nil
}

// AsArray returns the value unchanged as an Array.
func (a Accessor) AsArray() (Array, error) {
	v, ok, err := a.resolve(true)
	if err != nil || !ok {
		return Array{}, err
	}
	arr, ok := toArray(v)
	if !ok {
		return Array{}, invalidErr(a.key, TypeArray, v)
	}
	return arr, nil
}

// Constructor builds a target shape from a nested mapping.
type Constructor func(*Bag) any

// AsInstanceOf builds a nested shape from a mapping value. A missing MayHave
// value builds the shape from an empty Bag.
func (a Accessor) AsInstanceOf(ctor Constructor) (any, error) {
	if ctor == nil {
		return nil, fmt.Errorf("%w: nil constructor for %q", ErrShapeNil, a.key)
	}
	v, ok, err := a.resolve(true)
	if err != nil {
		return nil, err
	}
	if !ok {
		return ctor(Empty()), nil
	}
	m, ok := toMapping(v)
	if !ok {
		return nil, invalidErr(a.key, TypeInstance, v)
	}
	return ctor(New(m)), nil
}

// InstanceOf is the typed form of Accessor.AsInstanceOf.
func InstanceOf[T any](a Accessor, ctor func(*Bag) T) (T, error) {
	var zero T
	if ctor == nil {
		return zero, fmt.Errorf("%w: nil constructor for %q", ErrShapeNil, a.key)
	}
	v, err := a.AsInstanceOf(func(b *Bag) any { return ctor(b) })
	if err != nil {
		return zero, err
	}
	return v.(T), nil
}

// ListOf builds one shape per element of a list value. Every element must be
// a mapping.
func ListOf[T any](a Accessor, ctor func(*Bag) T) ([]T, error) {
	arr, err := a.AsArray()
	if err != nil {
		return nil, err
	}
	if arr.IsMap() {
		return nil, invalidErr(a.key, TypeArray, a.value)
	}
	items := arr.List()
	out := make([]T, 0, len(items))
	for i, item := range items {
		m, ok := toMapping(item)
		if !ok {
			return nil, invalidErr(fmt.Sprintf("%s[%d]", a.key, i), TypeInstance, item)
		}
		out = append(out, ctor(New(m)))
	}
	return out, nil
}

package attributes

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Accepted date-time layouts, tried in order. RFC 3339 also accepts
// fractional seconds of any precision when parsing.
var dateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func toFloat(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int8:
		return float64(t), true
	case int16:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint8:
		return float64(t), true
	case uint16:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	case float32:
		f = float64(t)
	case float64:
		f = t
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func toInteger(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int8:
		return int(t), true
	case int16:
		return int(t), true
	case int32:
		return int(t), true
	case int64:
		return int(t), true
	case uint8:
		return int(t), true
	case uint16:
		return int(t), true
	case uint32:
		return int(t), true
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return int(n), true
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
			return n, true
		}
	}
	f, ok := toFloat(v)
	if !ok {
		return 0, false
	}
	f = math.Trunc(f)
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int(f), true
}

func toString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case bool:
		return strconv.FormatBool(t), true
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(t), true
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	default:
		return "", false
	}
}

func toBool(v any) (bool, bool) {
	switch t := v.(type) {
	case bool:
		return t, true
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(t))
		if err != nil {
			return false, false
		}
		return b, true
	default:
		f, ok := toFloat(v)
		if !ok {
			return false, false
		}
		return f != 0, true
	}
}

func toDateTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		s := strings.TrimSpace(t)
		for _, layout := range dateTimeLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed, true
			}
		}
	}
	return time.Time{}, false
}

func toMapping(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		return t, true
	case map[string]string:
		out := make(map[string]any, len(t))
		for k, s := range t {
			out[k] = s
		}
		return out, true
	default:
		return nil, false
	}
}

func toArray(v any) (Array, bool) {
	if m, ok := toMapping(v); ok {
		return Array{fields: m}, true
	}
	switch t := v.(type) {
	case []any:
		return Array{list: t}, true
	case []string:
		list := make([]any, len(t))
		for i, s := range t {
			list[i] = s
		}
		return Array{list: list}, true
	case []map[string]any:
		list := make([]any, len(t))
		for i, m := range t {
			list[i] = m
		}
		return Array{list: list}, true
	default:
		return Array{}, false
	}
}

// Array is an array-shaped attribute: an ordered list or a string-keyed
// mapping. The zero Array is an empty list.
type Array struct {
	list   []any
	fields map[string]any
}

// Len reports the number of elements or entries.
func (a Array) Len() int {
	if a.fields != nil {
		return len(a.fields)
	}
	return len(a.list)
}

// IsMap reports whether the array is a string-keyed mapping.
func (a Array) IsMap() bool {
	return a.fields != nil
}

// List returns the elements; a mapping yields its values ordered by key.
func (a Array) List() []any {
	if a.fields != nil {
		keys := make([]string, 0, len(a.fields))
		for k := range a.fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make([]any, 0, len(keys))
		for _, k := range keys {
			out = append(out, cloneValue(a.fields[k]))
		}
		return out
	}
	return cloneValue(append([]any{}, a.list...)).([]any)
}

// Map returns the entries of a mapping, or nil for a list.
func (a Array) Map() map[string]any {
	if a.fields == nil {
		return nil
	}
	return cloneValue(a.fields).(map[string]any)
}

// Value returns the array in its wire form: []any or map[string]any.
func (a Array) Value() any {
	if a.fields != nil {
		return a.Map()
	}
	return a.List()
}

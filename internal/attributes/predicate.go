package attributes

import (
	"strings"
	"unicode/utf8"
)

// Predicate validates the string form of an attribute.
type Predicate func(string) bool

// OneOf accepts exactly the listed values.
func OneOf(values ...string) Predicate {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return func(s string) bool {
		_, ok := set[s]
		return ok
	}
}

// MaxLength accepts strings of at most n characters. Characters are counted
// as runes, not bytes.
func MaxLength(n int) Predicate {
	return func(s string) bool {
		return utf8.RuneCountInString(s) <= n
	}
}

// ExactLength accepts strings of exactly n characters.
func ExactLength(n int) Predicate {
	return func(s string) bool {
		return utf8.RuneCountInString(s) == n
	}
}

// NotBlank rejects empty and whitespace-only strings.
func NotBlank(s string) bool {
	return strings.TrimSpace(s) != ""
}

// All accepts a string only when every predicate does.
func All(preds ...Predicate) Predicate {
	return func(s string) bool {
		for _, p := range preds {
			if p != nil && !p(s) {
				return false
			}
		}
		return true
	}
}

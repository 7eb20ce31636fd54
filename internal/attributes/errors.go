package attributes

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"
)

var (
	ErrMissingRequiredAttribute = errors.New("attributes: missing required attribute")
	ErrInvalidAttributeValue    = errors.New("attributes: invalid attribute value")
)

// Type names the semantic type a coercion targets.
type Type string

const (
	TypeInteger  Type = "integer"
	TypeFloat    Type = "float"
	TypeString   Type = "string"
	TypeBool     Type = "boolean"
	TypeDateTime Type = "datetime"
	TypeArray    Type = "array"
	TypeInstance Type = "instance"
)

// MissingRequiredAttributeError is returned when a MustHave lookup finds nothing.
type MissingRequiredAttributeError struct {
	Key string
}

func (e *MissingRequiredAttributeError) Error() string {
	return fmt.Sprintf("attributes: missing required attribute %q", e.Key)
}

func (e *MissingRequiredAttributeError) Is(target error) bool {
	return target == ErrMissingRequiredAttribute
}

// InvalidAttributeValueError is returned when a value cannot be coerced to
// the expected type or a predicate rejects it.
type InvalidAttributeValueError struct {
	Key      string
	Expected Type
	Got      any
}

func (e *InvalidAttributeValueError) Error() string {
	return fmt.Sprintf("attributes: invalid value for %q: expected %s, got %s", e.Key, e.Expected, describe(e.Got))
}

func (e *InvalidAttributeValueError) Is(target error) bool {
	return target == ErrInvalidAttributeValue
}

func missingErr(key string) error {
	log.Debug().Str("key", key).Msg("attribute_missing")
	return &MissingRequiredAttributeError{Key: key}
}

func invalidErr(key string, expected Type, got any) error {
	log.Debug().
		Str("key", key).
		Str("expected", string(expected)).
		Str("got", describe(got)).
		Msg("attribute_invalid")
	return &InvalidAttributeValueError{Key: key, Expected: expected, Got: got}
}

func describe(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(t)
	default:
		return fmt.Sprintf("%T(%v)", v, v)
	}
}

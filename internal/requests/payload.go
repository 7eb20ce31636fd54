// Package requests validates caller parameters for create calls.
//
// A builder wraps the caller's map in an attributes.Bag and exposes one
// getter per field the service accepts. ToArray runs every getter and
// returns only the non-empty values, which is the payload sent to the API.
// The first validation error aborts ToArray, so nothing invalid is sent.
package requests

import (
	"time"

	"github.com/danmuck/shippoctl/internal/attributes"
)

// Object purposes accepted by addresses and shipments.
const (
	PurposeQuote    = "QUOTE"
	PurposePurchase = "PURCHASE"
)

// MetadataMaxLength is the metadata limit, in characters.
const MetadataMaxLength = 100

// TimeLayout is how date-time fields are sent to the service.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

var (
	purposes = attributes.OneOf(PurposeQuote, PurposePurchase)
	metadata = attributes.MaxLength(MetadataMaxLength)
)

// Builder is implemented by every request builder.
type Builder interface {
	ToArray() (map[string]any, error)
}

type payload struct {
	out map[string]any
	err error
}

func newPayload() *payload {
	return &payload{out: make(map[string]any)}
}

// put stores the getter's value under key unless an earlier getter failed or
// the value is empty.
func put[T any](p *payload, key string, get func() (T, error)) {
	if p.err != nil {
		return
	}
	v, err := get()
	if err != nil {
		p.err = err
		return
	}
	if wire, ok := wireValue(v); ok {
		p.out[key] = wire
	}
}

func (p *payload) result() (map[string]any, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.out, nil
}

// wireValue converts v to its JSON form; ok is false for empty values. The
// string "0" counts as empty.
func wireValue(v any) (any, bool) {
	switch t := v.(type) {
	case nil:
		return nil, false
	case string:
		return t, t != "" && t != "0"
	case int:
		return t, t != 0
	case float64:
		return t, t != 0
	case bool:
		return t, t
	case time.Time:
		if t.IsZero() {
			return nil, false
		}
		return t.UTC().Format(TimeLayout), true
	case attributes.Array:
		if t.Len() == 0 {
			return nil, false
		}
		return t.Value(), true
	default:
		return v, true
	}
}

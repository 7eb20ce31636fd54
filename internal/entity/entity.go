// Package entity exposes typed, read-only views over decoded API responses.
//
// Every entity wraps an attributes.Bag and reads it with MayHave semantics:
// the service's response shape is trusted, but any field may be absent.
// Getters that fail coercion log the failure and return the neutral value,
// so callers reading a response never have to handle per-field errors.
// Use ToArray for the raw decoded fields.
package entity

import (
	"fmt"
	"time"

	"github.com/danmuck/shippoctl/internal/attributes"
	"github.com/rs/zerolog/log"
)

// Shape names registered in Shapes.
const (
	ShapeAddress        = "address"
	ShapeParcel         = "parcel"
	ShapeShipment       = "shipment"
	ShapeTrack          = "track"
	ShapeTrackingStatus = "tracking_status"
	ShapeLocation       = "location"
)

// Shapes resolves shape names to entity constructors.
var Shapes = attributes.NewRegistry()

func init() {
	Shapes.MustRegister(ShapeAddress, func(b *attributes.Bag) any { return NewAddress(b) })
	Shapes.MustRegister(ShapeParcel, func(b *attributes.Bag) any { return NewParcel(b) })
	Shapes.MustRegister(ShapeShipment, func(b *attributes.Bag) any { return NewShipment(b) })
	Shapes.MustRegister(ShapeTrack, func(b *attributes.Bag) any { return NewTrack(b) })
	Shapes.MustRegister(ShapeTrackingStatus, func(b *attributes.Bag) any { return NewTrackingStatus(b) })
	Shapes.MustRegister(ShapeLocation, func(b *attributes.Bag) any { return NewLocation(b) })
}

// Decode builds the named shape and asserts it to T.
func Decode[T any](shape string, b *attributes.Bag) (T, error) {
	var zero T
	v, err := Shapes.Build(shape, b)
	if err != nil {
		return zero, err
	}
	out, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("entity: shape %q built %T, want %T", shape, v, zero)
	}
	return out, nil
}

// Entity is the shared read side of all response entities.
type Entity struct {
	attributes *attributes.Bag
}

func newEntity(b *attributes.Bag) Entity {
	if b == nil {
		b = attributes.Empty()
	}
	return Entity{attributes: b}
}

// ToArray returns a copy of the decoded response fields.
func (e Entity) ToArray() map[string]any {
	return e.attributes.Raw()
}

// Attributes returns the underlying bag.
func (e Entity) Attributes() *attributes.Bag {
	return e.attributes
}

// ObjectID is the unique identifier of the object.
func (e Entity) ObjectID() string { return e.str("object_id") }

// ObjectCreated is the time of object creation.
func (e Entity) ObjectCreated() time.Time { return e.dateTime("object_created") }

// ObjectUpdated is the time of the last object update.
func (e Entity) ObjectUpdated() time.Time { return e.dateTime("object_updated") }

func (e Entity) str(key string) string {
	s, err := e.attributes.MayHave(key).AsString()
	if err != nil {
		logFieldError(key, err)
	}
	return s
}

func (e Entity) integer(key string) int {
	n, err := e.attributes.MayHave(key).AsInteger()
	if err != nil {
		logFieldError(key, err)
	}
	return n
}

func (e Entity) float(key string) float64 {
	f, err := e.attributes.MayHave(key).AsFloat()
	if err != nil {
		logFieldError(key, err)
	}
	return f
}

func (e Entity) boolean(key string) bool {
	b, err := e.attributes.MayHave(key).AsBool()
	if err != nil {
		logFieldError(key, err)
	}
	return b
}

func (e Entity) dateTime(key string) time.Time {
	t, err := e.attributes.MayHave(key).AsDateTime()
	if err != nil {
		logFieldError(key, err)
	}
	return t
}

func (e Entity) array(key string) attributes.Array {
	a, err := e.attributes.MayHave(key).AsArray()
	if err != nil {
		logFieldError(key, err)
	}
	return a
}

func (e Entity) stringList(key string) []string {
	items := e.array(key).List()
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func logFieldError(key string, err error) {
	log.Warn().Str("field", key).Err(err).Msg("entity_field_invalid")
}

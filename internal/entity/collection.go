package entity

import (
	"fmt"

	"github.com/danmuck/shippoctl/internal/attributes"
)

// Collection is one page of a list response.
type Collection[T any] struct {
	Entity
	results []T
}

// DecodeCollection builds a page whose results are of the named shape. A
// malformed results list is an error; missing results yield an empty page.
func DecodeCollection[T any](shape string, b *attributes.Bag) (*Collection[T], error) {
	ctor, ok := Shapes.Resolve(shape)
	if !ok {
		return nil, fmt.Errorf("%w: %q", attributes.ErrShapeNotFound, shape)
	}
	if b == nil {
		b = attributes.Empty()
	}
	built, err := attributes.ListOf(b.MayHave("results"), func(rb *attributes.Bag) any { return ctor(rb) })
	if err != nil {
		return nil, err
	}
	results := make([]T, 0, len(built))
	for i, v := range built {
		item, ok := v.(T)
		if !ok {
			return nil, fmt.Errorf("entity: results[%d]: shape %q built %T", i, shape, v)
		}
		results = append(results, item)
	}
	return &Collection[T]{Entity: newEntity(b), results: results}, nil
}

// Count is the total number of objects across all pages.
func (c *Collection[T]) Count() int { return c.integer("count") }

// Next is the URL of the next page, empty on the last page.
func (c *Collection[T]) Next() string { return c.str("next") }

// Previous is the URL of the previous page, empty on the first page.
func (c *Collection[T]) Previous() string { return c.str("previous") }

func (c *Collection[T]) Results() []T {
	out := make([]T, len(c.results))
	copy(out, c.results)
	return out
}

// ToArray returns the pagination fields and the typed results.
func (c *Collection[T]) ToArray() map[string]any {
	return map[string]any{
		"count":    c.Count(),
		"next":     c.Next(),
		"previous": c.Previous(),
		"results":  c.Results(),
	}
}

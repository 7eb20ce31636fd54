package attributes

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrShapeExists      = errors.New("attributes: shape already registered")
	ErrShapeNil         = errors.New("attributes: shape constructor is nil")
	ErrShapeNotFound    = errors.New("attributes: shape not found")
	ErrInvalidShapeName = errors.New("attributes: invalid shape name")
)

// Registry maps shape names to constructors so nested values can be built
// without reflection. It is populated at init time and read-only afterwards.
type Registry struct {
	items map[string]Constructor
}

// NewRegistry creates an empty shape registry.
func NewRegistry() *Registry {
	return &Registry{items: make(map[string]Constructor)}
}

// Register adds a constructor under name.
func (r *Registry) Register(name string, ctor Constructor) error {
	if ctor == nil {
		return ErrShapeNil
	}
	if !isValidName(name) {
		return fmt.Errorf("%w: %q", ErrInvalidShapeName, name)
	}
	if _, ok := r.items[name]; ok {
		return fmt.Errorf("%w: %q", ErrShapeExists, name)
	}
	r.items[name] = ctor
	return nil
}

// MustRegister is Register for package initialisation; it panics on error.
func (r *Registry) MustRegister(name string, ctor Constructor) {
	if err := r.Register(name, ctor); err != nil {
		panic(err)
	}
}

// Resolve returns the constructor registered under name.
func (r *Registry) Resolve(name string) (Constructor, bool) {
	ctor, ok := r.items[name]
	return ctor, ok
}

// Build constructs the named shape from b.
func (r *Registry) Build(name string, b *Bag) (any, error) {
	ctor, ok := r.Resolve(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrShapeNotFound, name)
	}
	if b == nil {
		b = Empty()
	}
	return ctor(b), nil
}

// Names returns registered shape names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.items))
	for name := range r.items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func isValidName(name string) bool {
	if name == "" || name != strings.TrimSpace(name) {
		return false
	}
	lastSep := false
	for i := 0; i < len(name); i++ {
		c := name[i]
		isLower := c >= 'a' && c <= 'z'
		isDigit := c >= '0' && c <= '9'
		isSep := c == '.' || c == '_'
		if !(isLower || isDigit || isSep) {
			return false
		}
		if (i == 0 || i == len(name)-1) && isSep {
			return false
		}
		if isSep && lastSep {
			return false
		}
		lastSep = isSep
	}
	return true
}

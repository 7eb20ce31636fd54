package shippo

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/danmuck/shippoctl/internal/attributes"
	"github.com/danmuck/shippoctl/internal/entity"
	"github.com/danmuck/shippoctl/internal/requests"
	"github.com/rs/zerolog/log"
)

// Resource is one object collection of the API, e.g. /addresses/.
type Resource[T any] struct {
	transport Transport
	name      string
	shape     string
	builder   func(map[string]any) requests.Builder
}

func newResource[T any](t Transport, name, shape string, builder func(map[string]any) requests.Builder) *Resource[T] {
	return &Resource[T]{transport: t, name: name, shape: shape, builder: builder}
}

// Name is the resource's path segment.
func (r *Resource[T]) Name() string {
	return r.name
}

// Create validates params and posts the resulting payload.
func (r *Resource[T]) Create(ctx context.Context, params map[string]any) (T, error) {
	var zero T
	payload, err := r.builder(params).ToArray()
	if err != nil {
		log.Debug().Str("resource", r.name).Err(err).Msg("create_rejected")
		return zero, err
	}
	return r.one(ctx, http.MethodPost, r.collectionPath(), payload)
}

func (r *Resource[T]) Retrieve(ctx context.Context, id string) (T, error) {
	path, err := r.objectPath(id)
	if err != nil {
		var zero T
		return zero, err
	}
	return r.one(ctx, http.MethodGet, path, nil)
}

// Validate asks the service to re-validate an existing object.
func (r *Resource[T]) Validate(ctx context.Context, id string) (T, error) {
	path, err := r.objectPath(id)
	if err != nil {
		var zero T
		return zero, err
	}
	return r.one(ctx, http.MethodGet, path+"validate/", nil)
}

func (r *Resource[T]) GetList(ctx context.Context, opts ListOptions) (*entity.Collection[T], error) {
	out, err := r.transport.Do(ctx, http.MethodGet, r.collectionPath(), nil, opts.values())
	if err != nil {
		return nil, err
	}
	return entity.DecodeCollection[T](r.shape, attributes.New(out))
}

func (r *Resource[T]) one(ctx context.Context, method, path string, payload map[string]any) (T, error) {
	out, err := r.transport.Do(ctx, method, path, payload, nil)
	if err != nil {
		var zero T
		return zero, err
	}
	return entity.Decode[T](r.shape, attributes.New(out))
}

func (r *Resource[T]) collectionPath() string {
	return "/" + r.name + "/"
}

func (r *Resource[T]) objectPath(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", ErrIDRequired
	}
	return r.collectionPath() + url.PathEscape(id) + "/", nil
}

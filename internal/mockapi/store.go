package mockapi

import (
	"sync"

	"github.com/danmuck/shippoctl/internal/attributes"
)

// Store keeps created objects per resource in creation order.
type Store struct {
	mu      sync.RWMutex
	objects map[string]map[string]map[string]any
	order   map[string][]string
}

func NewStore() *Store {
	return &Store{
		objects: make(map[string]map[string]map[string]any),
		order:   make(map[string][]string),
	}
}

// Put stores a copy of obj under its object_id, replacing any previous
// version without changing its list position.
func (s *Store) Put(resource string, obj map[string]any) {
	id, _ := obj["object_id"].(string)
	if id == "" {
		return
	}
	cp := attributes.New(obj).Raw()
	s.mu.Lock()
	defer s.mu.Unlock()
	byID, ok := s.objects[resource]
	if !ok {
		byID = make(map[string]map[string]any)
		s.objects[resource] = byID
	}
	if _, exists := byID[id]; !exists {
		s.order[resource] = append(s.order[resource], id)
	}
	byID[id] = cp
}

// Get returns a copy of the object.
func (s *Store) Get(resource, id string) (map[string]any, bool) {
	s.mu.RLock()
	obj, ok := s.objects[resource][id]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return attributes.New(obj).Raw(), true
}

// Has reports whether resource holds id.
func (s *Store) Has(resource, id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[resource][id]
	return ok
}

// Page returns copies of the objects on the 1-based page and the total
// count, newest first. Pages past the end are empty.
func (s *Store) Page(resource string, page, size int) ([]map[string]any, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.order[resource]
	total := len(ids)
	if page < 1 || size < 1 || page-1 > total/size {
		return []map[string]any{}, total
	}
	start := (page - 1) * size
	if start >= total {
		return []map[string]any{}, total
	}
	end := start + size
	if end > total {
		end = total
	}
	out := make([]map[string]any, 0, end-start)
	for i := start; i < end; i++ {
		id := ids[total-1-i]
		out = append(out, attributes.New(s.objects[resource][id]).Raw())
	}
	return out, total
}

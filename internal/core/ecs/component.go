package ecs

// Key identifies a component type. Keys double as the component's field
// name inside world snapshot documents.
type Key string

// Removable is implemented by all component stores so the World can
// bulk-remove an entity's data from every store on destroy, and answer
// all-of queries without knowing the concrete component type.
type Removable interface {
	ComponentKey() Key
	Has(id EntityID) bool
	Remove(id EntityID)
}

// Store is a generic typed map store for ECS components keyed by entity id.
type Store[T any] struct {
	key  Key
	data map[EntityID]*T
}

// NewStore creates a store and registers it with the world under key.
func NewStore[T any](w *World, key Key) *Store[T] {
	s := &Store[T]{
		key:  key,
		data: make(map[EntityID]*T, 64),
	}
	w.register(s)
	return s
}

func (s *Store[T]) ComponentKey() Key { return s.key }

func (s *Store[T]) Set(id EntityID, c *T) {
	s.data[id] = c
}

func (s *Store[T]) Get(id EntityID) (*T, bool) {
	c, ok := s.data[id]
	return c, ok
}

func (s *Store[T]) Remove(id EntityID) {
	delete(s.data, id)
}

func (s *Store[T]) Has(id EntityID) bool {
	_, ok := s.data[id]
	return ok
}

func (s *Store[T]) Len() int {
	return len(s.data)
}

func (s *Store[T]) Each(fn func(EntityID, *T)) {
	for id, c := range s.data {
		fn(id, c)
	}
}

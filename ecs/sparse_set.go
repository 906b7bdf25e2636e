package ecs

// store is the type-erased view of a sparseSet used by queries and entity
// destruction.
type store interface {
	has(e Entity) bool
	remove(e Entity) bool
	entities() []Entity
	len() int
}

// sparseSet keeps components densely packed, indexed by entity slot id.
type sparseSet[T any] struct {
	dense  []T
	owners []Entity
	sparse []int
}

func newSparseSet[T any]() *sparseSet[T] {
	return &sparseSet[T]{}
}

func (s *sparseSet[T]) index(e Entity) (int, bool) {
	id := int(e.id())
	if id <= 0 || id > len(s.sparse) {
		return 0, false
	}
	idx := s.sparse[id-1]
	if idx < 0 || idx >= len(s.owners) || s.owners[idx] != e {
		return 0, false
	}
	return idx, true
}

func (s *sparseSet[T]) has(e Entity) bool {
	_, ok := s.index(e)
	return ok
}

func (s *sparseSet[T]) get(e Entity) (*T, bool) {
	idx, ok := s.index(e)
	if !ok {
		return nil, false
	}
	return &s.dense[idx], true
}

func (s *sparseSet[T]) set(e Entity, v T) {
	if idx, ok := s.index(e); ok {
		s.dense[idx] = v
		return
	}
	id := int(e.id())
	for len(s.sparse) < id {
		s.sparse = append(s.sparse, -1)
	}
	s.dense = append(s.dense, v)
	s.owners = append(s.owners, e)
	s.sparse[id-1] = len(s.owners) - 1
}

func (s *sparseSet[T]) remove(e Entity) bool {
	idx, ok := s.index(e)
	if !ok {
		return false
	}
	last := len(s.owners) - 1
	moved := s.owners[last]

	s.dense[idx] = s.dense[last]
	s.owners[idx] = moved
	s.sparse[moved.id()-1] = idx

	var zero T
	s.dense[last] = zero
	s.dense = s.dense[:last]
	s.owners = s.owners[:last]
	s.sparse[e.id()-1] = -1
	return true
}

func (s *sparseSet[T]) entities() []Entity {
	return s.owners
}

func (s *sparseSet[T]) len() int {
	return len(s.owners)
}

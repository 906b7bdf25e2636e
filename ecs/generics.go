package ecs

import (
	"fmt"

	"github.com/milk9111/mazeball/ecs/component"
)

// Add sets the component value on e, replacing any existing value.
func Add[T any](w *World, e Entity, handle component.ComponentHandle[T], value T) error {
	if !handle.Kind().Valid() {
		return component.ErrInvalidComponentKind
	}
	if !w.IsAlive(e) {
		return fmt.Errorf("add %s to %s: %w", handle.Name(), e, component.ErrEntityNotAlive)
	}
	storeFor(w, handle.Kind(), true).set(e, value)
	return nil
}

func Remove[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	s := storeFor(w, handle.Kind(), false)
	if s == nil {
		return false
	}
	return s.remove(e)
}

func Has[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	s := storeFor(w, handle.Kind(), false)
	return s != nil && w.IsAlive(e) && s.has(e)
}

// Get returns a copy of the component on e.
func Get[T any](w *World, e Entity, handle component.ComponentHandle[T]) (T, bool) {
	var zero T
	s := storeFor(w, handle.Kind(), false)
	if s == nil || !w.IsAlive(e) {
		return zero, false
	}
	v, ok := s.get(e)
	if !ok {
		return zero, false
	}
	return *v, true
}

// ForEach calls fn with a pointer into storage for each live entity that has
// the component. fn must not add or remove components of the same type.
func ForEach[T any](w *World, handle component.ComponentHandle[T], fn func(e Entity, v *T)) {
	s := storeFor(w, handle.Kind(), false)
	if s == nil || fn == nil {
		return
	}
	for i := 0; i < len(s.owners); i++ {
		e := s.owners[i]
		if !w.entities.isAlive(e) {
			continue
		}
		fn(e, &s.dense[i])
	}
}

package ecs

import (
	"errors"
	"testing"

	"github.com/milk9111/mazeball/ecs/component"
)

func TestWorldEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, w.CreateEntity())
			}
			if len(w.Entities()) != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, len(w.Entities()))
			}
			if c.destroyIndex >= 0 {
				if !w.DestroyEntity(ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return true for alive entity")
				}
				if w.IsAlive(ents[c.destroyIndex]) {
					t.Fatalf("entity should not be alive after destruction")
				}
				if w.DestroyEntity(ents[c.destroyIndex]) {
					t.Fatalf("second DestroyEntity should return false")
				}
				if len(w.Entities()) != c.create-1 {
					t.Fatalf("expected %d entities after destroy, got %d", c.create-1, len(w.Entities()))
				}
			}
		})
	}
}

func TestRecycledEntityIsNewGeneration(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]("int")

	old := w.CreateEntity()
	if err := Add(w, old, h, 7); err != nil {
		t.Fatalf("add: %v", err)
	}
	w.DestroyEntity(old)

	fresh := w.CreateEntity()
	if fresh.id() != old.id() {
		t.Fatalf("expected slot reuse, got %v and %v", old, fresh)
	}
	if fresh == old {
		t.Fatalf("recycled entity must differ from the stale handle")
	}
	if Has(w, fresh, h) {
		t.Fatalf("recycled entity should not inherit components")
	}
	if _, ok := Get(w, old, h); ok {
		t.Fatalf("stale handle should not resolve")
	}
}

func TestComponentsAddGetRemove(t *testing.T) {
	w := NewWorld()
	ints := component.NewComponent[int]("int")
	strs := component.NewComponent[string]("string")

	e1 := w.CreateEntity()
	e2 := w.CreateEntity()

	tests := []struct {
		name     string
		setup    func() error
		check    func(t *testing.T)
		teardown func() bool
	}{
		{
			name:  "add_int_to_e1",
			setup: func() error { return Add(w, e1, ints, 10) },
			check: func(t *testing.T) {
				v, ok := Get(w, e1, ints)
				if !ok || v != 10 {
					t.Fatalf("expected 10, got %v ok=%v", v, ok)
				}
				if Has(w, e2, ints) {
					t.Fatalf("e2 should not have int")
				}
			},
			teardown: func() bool { return Remove(w, e1, ints) },
		},
		{
			name: "add_str_to_both",
			setup: func() error {
				if err := Add(w, e1, strs, "a"); err != nil {
					return err
				}
				return Add(w, e2, strs, "b")
			},
			check: func(t *testing.T) {
				if !Has(w, e1, strs) || !Has(w, e2, strs) {
					t.Fatalf("expected both entities to have string component")
				}
				if v, _ := Get(w, e2, strs); v != "b" {
					t.Fatalf("expected b, got %q", v)
				}
			},
			teardown: func() bool { return Remove(w, e1, strs) },
		},
		{
			name:  "replace_value",
			setup: func() error { return Add(w, e2, strs, "c") },
			check: func(t *testing.T) {
				if v, _ := Get(w, e2, strs); v != "c" {
					t.Fatalf("expected c, got %q", v)
				}
			},
			teardown: func() bool { return Remove(w, e2, strs) },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.setup(); err != nil {
				t.Fatalf("setup failed: %v", err)
			}
			tc.check(t)
			if !tc.teardown() {
				t.Fatalf("teardown failed for %s", tc.name)
			}
		})
	}
}

func TestAddToDeadEntity(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]("int")
	e := w.CreateEntity()
	w.DestroyEntity(e)
	if err := Add(w, e, h, 1); !errors.Is(err, component.ErrEntityNotAlive) {
		t.Fatalf("expected ErrEntityNotAlive, got %v", err)
	}
	var zero component.ComponentHandle[int]
	if err := Add(w, w.CreateEntity(), zero, 1); !errors.Is(err, component.ErrInvalidComponentKind) {
		t.Fatalf("expected ErrInvalidComponentKind, got %v", err)
	}
}

func TestQuery(t *testing.T) {
	tests := []struct {
		name string
		run  func(t *testing.T)
	}{
		{
			name: "intersection",
			run: func(t *testing.T) {
				w := NewWorld()
				ka := component.NewComponent[int]("a")
				kb := component.NewComponent[float64]("b")

				e1 := w.CreateEntity()
				e2 := w.CreateEntity()
				e3 := w.CreateEntity()
				_ = Add(w, e1, ka, 1)
				_ = Add(w, e2, ka, 2)
				_ = Add(w, e2, kb, 2.5)
				_ = Add(w, e3, kb, 3.5)

				res := w.Query(ka.Kind(), kb.Kind())
				if len(res) != 1 || res[0] != e2 {
					t.Fatalf("expected only e2, got %v", res)
				}
			},
		},
		{
			name: "ordered_by_id",
			run: func(t *testing.T) {
				w := NewWorld()
				ka := component.NewComponent[int]("a")
				ents := []Entity{w.CreateEntity(), w.CreateEntity(), w.CreateEntity()}
				for i := len(ents) - 1; i >= 0; i-- {
					_ = Add(w, ents[i], ka, i)
				}
				res := w.Query(ka.Kind())
				for i := range ents {
					if res[i] != ents[i] {
						t.Fatalf("expected %v, got %v", ents, res)
					}
				}
				first, ok := w.First(ka.Kind())
				if !ok || first != ents[0] {
					t.Fatalf("expected first %v, got %v", ents[0], first)
				}
			},
		},
		{
			name: "ignores_dead_entities",
			run: func(t *testing.T) {
				w := NewWorld()
				ka := component.NewComponent[int]("a")
				e := w.CreateEntity()
				_ = Add(w, e, ka, 1)
				w.DestroyEntity(e)
				if res := w.Query(ka.Kind()); len(res) != 0 {
					t.Fatalf("expected empty result after destroy, got %v", res)
				}
			},
		},
		{
			name: "missing_store_returns_nil",
			run: func(t *testing.T) {
				w := NewWorld()
				ka := component.NewComponent[int]("a")
				kb := component.NewComponent[int]("b")
				_ = Add(w, w.CreateEntity(), ka, 1)
				if res := w.Query(ka.Kind(), kb.Kind()); res != nil {
					t.Fatalf("expected nil when other store missing, got %v", res)
				}
				if _, ok := w.First(kb.Kind()); ok {
					t.Fatalf("expected no first entity")
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, tc.run)
	}
}

func TestForEachMutatesInPlace(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]("int")
	e1 := w.CreateEntity()
	e2 := w.CreateEntity()
	e3 := w.CreateEntity()
	_ = Add(w, e1, h, 1)
	_ = Add(w, e3, h, 3)

	seen := map[Entity]bool{}
	ForEach(w, h, func(e Entity, v *int) {
		seen[e] = true
		*v *= 10
	})
	if !seen[e1] || !seen[e3] || seen[e2] {
		t.Fatalf("unexpected visit set %v", seen)
	}
	if v, _ := Get(w, e3, h); v != 30 {
		t.Fatalf("expected 30, got %d", v)
	}
}

type countingSystem struct {
	calls int
}

func (s *countingSystem) Update(w *World) {
	s.calls++
	w.Events().Push(Event{Type: EventGoalReached})
}

func TestSchedulerFlushesEvents(t *testing.T) {
	w := NewWorld()
	sys := &countingSystem{}
	s := NewScheduler(sys, nil)
	if len(s.Systems()) != 1 {
		t.Fatalf("nil systems should be skipped")
	}
	s.Update(w)
	s.Update(w)
	if sys.calls != 2 {
		t.Fatalf("expected 2 calls, got %d", sys.calls)
	}
	if evts := w.Events().Drain(); evts != nil {
		t.Fatalf("expected events flushed after update, got %v", evts)
	}
}

func TestEventQueueTake(t *testing.T) {
	var q EventQueue
	q.Push(Event{Type: "a", Data: 1})
	q.Push(Event{Type: EventGoalReached})
	q.Push(Event{Type: "a", Data: 2})

	taken := q.Take(EventGoalReached)
	if len(taken) != 1 {
		t.Fatalf("expected one goal event, got %v", taken)
	}
	rest := q.Drain()
	if len(rest) != 2 || rest[0].Data != 1 || rest[1].Data != 2 {
		t.Fatalf("unexpected remaining events %v", rest)
	}
}

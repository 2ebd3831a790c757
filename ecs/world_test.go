package ecs

import (
	"errors"
	"testing"

	"github.com/milk9111/stealth/ecs/component"
)

func TestSparseWorldEntityLifecycle(t *testing.T) {
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
				ents = append(ents, CreateEntity(w))
			}
			if len(Entities(w)) != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, len(Entities(w)))
			}
			if c.destroyIndex >= 0 {
				if !DestroyEntity(w, ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return true for alive entity")
				}
				if IsAlive(w, ents[c.destroyIndex]) {
					t.Fatalf("entity should not be alive after destruction")
				}
				if DestroyEntity(w, ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return false the second time")
				}
				if len(Entities(w)) != c.create-1 {
					t.Fatalf("expected %d entities after destroy, got %d", c.create-1, len(Entities(w)))
				}
			}
		})
	}
}

func TestEntityReuseBumpsGeneration(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()

	old := CreateEntity(w)
	if err := Add(w, old, h.Kind(), intPtr(1)); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	DestroyEntity(w, old)

	fresh := CreateEntity(w)
	if fresh.id() != old.id() {
		t.Fatalf("expected slot reuse, got ids %d and %d", old.id(), fresh.id())
	}
	if fresh == old {
		t.Fatalf("reused entity should have a new generation")
	}
	if Has(w, fresh, h.Kind()) {
		t.Fatalf("components must not survive destroy")
	}
	if _, ok := Get(w, old, h.Kind()); ok {
		t.Fatalf("stale handle should not resolve")
	}
	if err := Add(w, old, h.Kind(), intPtr(2)); !errors.Is(err, component.ErrEntityNotAlive) {
		t.Fatalf("add on stale handle: got %v", err)
	}
}

func TestComponentCRUD(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[string]()
	e := CreateEntity(w)

	cases := []struct {
		name  string
		setup func() error
		check func(t *testing.T)
	}{
		{
			name:  "add_and_get",
			setup: func() error { return Add(w, e, h.Kind(), stringPtr("a")) },
			check: func(t *testing.T) {
				v, ok := Get(w, e, h.Kind())
				if !ok || *v != "a" {
					t.Fatalf("expected a, got %v %v", v, ok)
				}
			},
		},
		{
			name: "mutate_in_place",
			setup: func() error {
				v, _ := Get(w, e, h.Kind())
				*v = "b"
				return nil
			},
			check: func(t *testing.T) {
				v, _ := Get(w, e, h.Kind())
				if *v != "b" {
					t.Fatalf("expected in-place update, got %q", *v)
				}
			},
		},
		{
			name:  "replace",
			setup: func() error { return Add(w, e, h.Kind(), stringPtr("c")) },
			check: func(t *testing.T) {
				v, _ := Get(w, e, h.Kind())
				if *v != "c" {
					t.Fatalf("expected c, got %q", *v)
				}
			},
		},
		{
			name: "remove",
			setup: func() error {
				if !Remove(w, e, h.Kind()) {
					return errors.New("remove returned false")
				}
				return nil
			},
			check: func(t *testing.T) {
				if Has(w, e, h.Kind()) {
					t.Fatalf("component should be gone")
				}
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.setup(); err != nil {
				t.Fatalf("setup failed: %v", err)
			}
			tc.check(t)
		})
	}
}

func TestAddRejectsBadInput(t *testing.T) {
	w := NewWorld()
	e := CreateEntity(w)
	h := component.NewComponent[int]()

	if err := Add[int](w, e, h.Kind(), nil); !errors.Is(err, component.ErrNilComponent) {
		t.Fatalf("nil value: got %v", err)
	}
	var zero component.ComponentKind[int]
	if err := Add(w, e, zero, intPtr(1)); !errors.Is(err, component.ErrInvalidComponentKind) {
		t.Fatalf("zero kind: got %v", err)
	}
}

func TestForEach(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)
	e3 := CreateEntity(w)

	if err := Add(w, e1, h.Kind(), intPtr(1)); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := Add(w, e3, h.Kind(), intPtr(3)); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	var ents []Entity
	ForEach(w, h.Kind(), func(e Entity, _ *int) { ents = append(ents, e) })
	set := toSet(ents)

	if _, ok := set[e1]; !ok {
		t.Fatalf("expected e1 in ForEach result")
	}
	if _, ok := set[e3]; !ok {
		t.Fatalf("expected e3 in ForEach result")
	}
	if _, ok := set[e2]; ok {
		t.Fatalf("did not expect e2 in ForEach result")
	}
}

func TestForEach3(t *testing.T) {
	tests := []struct {
		name string
		run  func(t *testing.T)
	}{
		{
			name: "intersection",
			run: func(t *testing.T) {
				w := NewWorld()
				e1 := CreateEntity(w)
				e2 := CreateEntity(w)
				e3 := CreateEntity(w)

				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[int]()
				kc := component.NewComponentKind[int]()

				mustAdd(t, w, e1, ka, 1)
				mustAdd(t, w, e2, ka, 2)
				mustAdd(t, w, e2, kb, 3)
				mustAdd(t, w, e2, kc, 5)
				mustAdd(t, w, e3, kb, 4)

				var res []Entity
				ForEach3(w, ka, kb, kc, func(e Entity, _ *int, _ *int, _ *int) { res = append(res, e) })
				if len(res) != 1 || res[0] != e2 {
					t.Fatalf("expected only e2, got %v", res)
				}
			},
		},
		{
			name: "ignores_dead_entities",
			run: func(t *testing.T) {
				w := NewWorld()
				e := CreateEntity(w)

				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[int]()
				kc := component.NewComponentKind[int]()

				mustAdd(t, w, e, ka, 1)
				mustAdd(t, w, e, kb, 2)
				mustAdd(t, w, e, kc, 3)

				if !DestroyEntity(w, e) {
					t.Fatal("failed to destroy entity")
				}

				var res []Entity
				ForEach3(w, ka, kb, kc, func(e Entity, _ *int, _ *int, _ *int) { res = append(res, e) })
				if len(res) != 0 {
					t.Fatalf("expected empty result after destroy, got %v", res)
				}
			},
		},
		{
			name: "missing_store",
			run: func(t *testing.T) {
				w := NewWorld()
				e := CreateEntity(w)

				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[int]()
				kc := component.NewComponentKind[int]()

				mustAdd(t, w, e, ka, 1)

				var res []Entity
				ForEach3(w, ka, kb, kc, func(e Entity, _ *int, _ *int, _ *int) { res = append(res, e) })
				if len(res) != 0 {
					t.Fatalf("expected empty when other store missing, got %v", res)
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, tc.run)
	}
}

func TestRemoveKeepsOthersReachable(t *testing.T) {
	w := NewWorld()
	k := component.NewComponentKind[int]()
	var ents []Entity
	for i := 0; i < 5; i++ {
		e := CreateEntity(w)
		mustAdd(t, w, e, k, i)
		ents = append(ents, e)
	}
	Remove(w, ents[1], k)
	Remove(w, ents[4], k)

	for i, e := range ents {
		v, ok := Get(w, e, k)
		removed := i == 1 || i == 4
		if ok == removed {
			t.Fatalf("entity %d: present=%v", i, ok)
		}
		if ok && *v != i {
			t.Fatalf("entity %d: value %d", i, *v)
		}
	}
}

type recordSystem struct {
	ticks []int
	times []float64
	seen  int
}

func (r *recordSystem) Update(w *World) {
	r.ticks = append(r.ticks, w.Clock().Tick)
	r.times = append(r.times, w.Clock().Now)
	r.seen += w.Events().Len()
	w.Events().Push(Event{Kind: EventDoubleTap, Tick: w.Clock().Tick})
}

func TestSchedulerAdvancesClockAndFlushesEvents(t *testing.T) {
	w := NewWorld()
	rec := &recordSystem{}
	s := NewScheduler(rec, nil)
	if len(s.Systems()) != 1 {
		t.Fatalf("nil systems should be skipped")
	}

	for i := 0; i < 3; i++ {
		s.Update(w)
	}
	if rec.ticks[0] != 0 || rec.times[0] != 0 {
		t.Fatalf("first tick should run at time zero, got %d %v", rec.ticks[0], rec.times[0])
	}
	if rec.ticks[2] != 2 || rec.times[2] != 2*w.Clock().Step {
		t.Fatalf("third tick: %d %v", rec.ticks[2], rec.times[2])
	}
	if rec.seen != 0 {
		t.Fatalf("events leaked across ticks: %d", rec.seen)
	}

	w.Clock().Reset()
	if w.Clock().Tick != 0 || w.Clock().Now != 0 {
		t.Fatalf("Reset should rewind the clock")
	}
}

func TestEventQueueDrain(t *testing.T) {
	var q EventQueue
	q.Push(Event{Kind: EventChannelDown, Data: "Jump"})
	q.Push(Event{Kind: EventChannelUp, Data: "Jump"})
	got := q.Drain()
	if len(got) != 2 || got[0].Kind != EventChannelDown {
		t.Fatalf("unexpected drain %v", got)
	}
	if q.Drain() != nil {
		t.Fatalf("second drain should be empty")
	}
}

func mustAdd(t *testing.T, w *World, e Entity, k component.ComponentKind[int], v int) {
	t.Helper()
	if err := Add(w, e, k, intPtr(v)); err != nil {
		t.Fatal(err)
	}
}

func toSet(ents []Entity) map[Entity]struct{} {
	m := make(map[Entity]struct{}, len(ents))
	for _, e := range ents {
		m[e] = struct{}{}
	}
	return m
}

func intPtr(i int) *int {
	return &i
}

func stringPtr(s string) *string {
	return &s
}

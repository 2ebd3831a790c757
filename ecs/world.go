package ecs

import (
	"fmt"

	"github.com/milk9111/stealth/common"
	"github.com/milk9111/stealth/ecs/component"
)

// World owns entities, their components, the tick clock and the event queue.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*sparseSet
	events   EventQueue
	clock    Clock
}

// NewWorld creates an empty world stepping at the fixed game rate.
func NewWorld() *World {
	return &World{
		stores: make(map[component.ComponentID]*sparseSet),
		clock:  Clock{Step: 1.0 / common.TPS},
	}
}

func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity removes every component of e and retires its handle.
func (w *World) DestroyEntity(e Entity) bool {
	if !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.remove(e)
	}
	return w.entities.destroy(e)
}

func (w *World) IsAlive(e Entity) bool {
	return w != nil && w.entities.isAlive(e)
}

func (w *World) Entities() []Entity {
	return w.entities.entities()
}

func (w *World) AddComponent(e Entity, kind component.Kind, value any) error {
	if kind == nil || kind.ID() == 0 {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	if !w.entities.isAlive(e) {
		return fmt.Errorf("%w: %s", component.ErrEntityNotAlive, e)
	}
	s := w.stores[kind.ID()]
	if s == nil {
		s = newSparseSet()
		w.stores[kind.ID()] = s
	}
	s.set(e, value)
	return nil
}

func (w *World) GetComponent(e Entity, kind component.Kind) (any, bool) {
	if kind == nil || !w.entities.isAlive(e) {
		return nil, false
	}
	s := w.stores[kind.ID()]
	if s == nil {
		return nil, false
	}
	return s.get(e)
}

func (w *World) HasComponent(e Entity, kind component.Kind) bool {
	_, ok := w.GetComponent(e, kind)
	return ok
}

func (w *World) RemoveComponent(e Entity, kind component.Kind) bool {
	if kind == nil || !w.entities.isAlive(e) {
		return false
	}
	s := w.stores[kind.ID()]
	if s == nil {
		return false
	}
	return s.remove(e)
}

// Events returns the world event queue. It is cleared at the end of every
// scheduled tick.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// Clock returns the world tick clock.
func (w *World) Clock() *Clock {
	if w == nil {
		return nil
	}
	return &w.clock
}

func CreateEntity(w *World) Entity {
	return w.CreateEntity()
}

func DestroyEntity(w *World, e Entity) bool {
	return w.DestroyEntity(e)
}

func IsAlive(w *World, e Entity) bool {
	return w.IsAlive(e)
}

func Entities(w *World) []Entity {
	return w.Entities()
}

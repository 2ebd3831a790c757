package ecs

import "github.com/milk9111/stealth/ecs/component"

// Query returns the live entities that have every kind. The smallest store
// drives the iteration, and results follow its dense order.
func (w *World) Query(kinds ...component.Kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	sets := make([]*sparseSet, 0, len(kinds))
	for _, k := range kinds {
		s := w.stores[k.ID()]
		if s == nil || s.len() == 0 {
			return nil
		}
		sets = append(sets, s)
	}
	smallest := 0
	for i, s := range sets {
		if s.len() < sets[smallest].len() {
			smallest = i
		}
	}

	var out []Entity
outer:
	for _, e := range sets[smallest].dense {
		if !w.entities.isAlive(e) {
			continue
		}
		for i, s := range sets {
			if i != smallest && !s.has(e) {
				continue outer
			}
		}
		out = append(out, e)
	}
	return out
}

// First returns any one live entity that has every kind.
func (w *World) First(kinds ...component.Kind) (Entity, bool) {
	ents := w.Query(kinds...)
	if len(ents) == 0 {
		return 0, false
	}
	return ents[0], true
}

func First(w *World, kinds ...component.Kind) (Entity, bool) {
	return w.First(kinds...)
}

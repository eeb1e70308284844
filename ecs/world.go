package ecs

import "github.com/milk9111/raidercore/ecs/component"

// World owns entities, component stores, and the per-frame event queue.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]store
	events   EventQueue
	frame    uint64
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]store)}
}

// Update runs the scheduler once and clears events that nobody drained.
func (w *World) Update(s *Scheduler) {
	if w == nil {
		return
	}
	if s != nil {
		s.Update(w)
	}
	w.events.flush()
	w.frame++
}

// Frame is the number of completed updates.
func (w *World) Frame() uint64 {
	if w == nil {
		return 0
	}
	return w.frame
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

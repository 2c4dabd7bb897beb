package ecs

import (
	"github.com/gridforge/engine/internal/event"
)

// EntityAdded is published on the world bus when a buffered addition is
// flushed into the registry.
type EntityAdded struct {
	Entity *Entity
}

// EntityRemoved is published on the world bus when a buffered removal is
// flushed out of the registry.
type EntityRemoved struct {
	Entity *Entity
}

// World owns the authoritative entity registry and the priority-ordered
// system list. Entity additions and removals requested mid-tick are buffered
// and applied at the start of the next Update, so every system within one
// tick observes the same stable population. Component mutations are immediate
// and unguarded: later-priority systems see earlier systems' writes from the
// same tick, which is the intended data flow.
//
// Single-goroutine use only, like the rest of the engine core.
type World struct {
	entities map[EntityID]*Entity
	order    []*Entity // registry in insertion order, for deterministic iteration

	pendingAdd    []*Entity
	pendingRemove map[EntityID]struct{}

	systems []System
	bus     *event.Bus
}

func NewWorld() *World {
	return &World{
		entities:      make(map[EntityID]*Entity),
		pendingRemove: make(map[EntityID]struct{}),
		bus:           event.NewBus(),
	}
}

// Bus exposes the world's lifecycle event bus. EntityAdded and EntityRemoved
// are published here at flush time.
func (w *World) Bus() *event.Bus { return w.bus }

// AddEntity buffers e for insertion at the next Update and returns it.
func (w *World) AddEntity(e *Entity) *Entity {
	w.pendingAdd = append(w.pendingAdd, e)
	return e
}

// RemoveEntity buffers the removal of id. Unknown or not-yet-flushed ids are
// tolerated; requesting the same removal twice behaves like requesting it
// once.
func (w *World) RemoveEntity(id EntityID) {
	w.pendingRemove[id] = struct{}{}
}

// Entity looks up a flushed entity by id.
func (w *World) Entity(id EntityID) (*Entity, bool) {
	e, ok := w.entities[id]
	return e, ok
}

// Entities returns the flushed registry in insertion order.
func (w *World) Entities() []*Entity {
	out := make([]*Entity, len(w.order))
	copy(out, w.order)
	return out
}

// EntitiesByTag returns the flushed entities carrying tag, in insertion
// order.
func (w *World) EntitiesByTag(tag string) []*Entity {
	var out []*Entity
	for _, e := range w.order {
		if e.HasTag(tag) {
			out = append(out, e)
		}
	}
	return out
}

// AddSystem attaches s to the world, runs its Init hook, and inserts it
// before the first system with a strictly greater priority. Equal priorities
// keep insertion order, so a newcomer runs after existing peers.
func (w *World) AddSystem(s System) {
	s.attach(w)
	s.Init()
	idx := len(w.systems)
	for i, existing := range w.systems {
		if existing.Priority() > s.Priority() {
			idx = i
			break
		}
	}
	w.systems = append(w.systems, nil)
	copy(w.systems[idx+1:], w.systems[idx:])
	w.systems[idx] = s
}

// Systems returns the system list in execution order.
func (w *World) Systems() []System {
	out := make([]System, len(w.systems))
	copy(out, w.systems)
	return out
}

// GetSystem returns the first registered system of concrete type T.
func GetSystem[T System](w *World) (T, bool) {
	for _, s := range w.systems {
		if match, ok := s.(T); ok {
			return match, true
		}
	}
	var zero T
	return zero, false
}

// RemoveSystem removes the first registered system of concrete type T,
// running its Destroy hook and clearing its world reference. No-op when no
// system matches.
func RemoveSystem[T System](w *World) {
	for i, s := range w.systems {
		if _, ok := s.(T); !ok {
			continue
		}
		s.Destroy()
		s.attach(nil)
		w.systems = append(w.systems[:i], w.systems[i+1:]...)
		return
	}
}

// Update advances the world one tick: buffered additions flush first (in
// call order), then buffered removals, then every active system runs in
// priority order over its filtered entity slice.
func (w *World) Update(dt float64) {
	w.flushAdditions()
	w.flushRemovals()

	// Snapshot so a system removing itself (or a peer) mid-tick cannot shift
	// the list under the running iteration.
	systems := make([]System, len(w.systems))
	copy(systems, w.systems)
	for _, s := range systems {
		if !s.Active() {
			continue
		}
		if s.World() != w {
			continue // removed earlier this tick
		}
		var matched []*Entity
		for _, e := range w.order {
			if s.Filter(e) {
				matched = append(matched, e)
			}
		}
		s.Update(dt, matched)
	}
}

func (w *World) flushAdditions() {
	if len(w.pendingAdd) == 0 {
		return
	}
	adds := w.pendingAdd
	w.pendingAdd = nil
	for _, e := range adds {
		// Redundant additions are no-ops: an id already registered (or added
		// twice within one batch) must not grow the listing.
		if _, dup := w.entities[e.ID()]; dup {
			continue
		}
		w.entities[e.ID()] = e
		w.order = append(w.order, e)
		event.Publish(w.bus, EntityAdded{Entity: e})
	}
}

func (w *World) flushRemovals() {
	if len(w.pendingRemove) == 0 {
		return
	}
	// Snapshot so removals requested by EntityRemoved listeners buffer for
	// the next tick instead of flushing mid-iteration.
	removals := w.pendingRemove
	w.pendingRemove = make(map[EntityID]struct{})
	for id := range removals {
		e, ok := w.entities[id]
		if !ok {
			continue
		}
		delete(w.entities, id)
		for i, cur := range w.order {
			if cur == e {
				w.order = append(w.order[:i], w.order[i+1:]...)
				break
			}
		}
		event.Publish(w.bus, EntityRemoved{Entity: e})
	}
}

// Clear immediately evicts every entity, bypassing the buffers and the
// lifecycle events, and tears down every system via its Destroy hook.
func (w *World) Clear() {
	w.entities = make(map[EntityID]*Entity)
	w.order = nil
	w.pendingAdd = nil
	w.pendingRemove = make(map[EntityID]struct{})
	for _, s := range w.systems {
		s.Destroy()
		s.attach(nil)
	}
	w.systems = nil
}

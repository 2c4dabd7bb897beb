package ecs

import "sync/atomic"

// EntityID is a process-unique entity identifier. Ids are allocated from a
// monotonic counter and never reused, so a stale id can never resolve to a
// different entity.
type EntityID uint64

var entityCounter uint64

// Entity is an identity-only container: components keyed by kind (one per
// kind), a set of string tags, and an active flag. Entities are assembled by
// external factories and handed to World.AddEntity.
type Entity struct {
	id         EntityID
	components map[ComponentType]Component
	tags       map[string]struct{}
	active     bool
}

func NewEntity() *Entity {
	return &Entity{
		id:         EntityID(atomic.AddUint64(&entityCounter, 1)),
		components: make(map[ComponentType]Component, 4),
		tags:       make(map[string]struct{}),
		active:     true,
	}
}

func (e *Entity) ID() EntityID { return e.id }

// AddComponent attaches c, silently replacing any component already held
// under the same kind. The replaced component's owner reference is cleared;
// only the newcomer's Init hook runs.
func (e *Entity) AddComponent(c Component) {
	if old, ok := e.components[c.Type()]; ok {
		old.setOwner(nil)
	}
	e.components[c.Type()] = c
	c.setOwner(e)
	c.Init()
}

// RemoveComponent detaches the component held under t, running its Destroy
// hook. No-op when absent.
func (e *Entity) RemoveComponent(t ComponentType) {
	c, ok := e.components[t]
	if !ok {
		return
	}
	c.setOwner(nil)
	c.Destroy()
	delete(e.components, t)
}

func (e *Entity) Component(t ComponentType) (Component, bool) {
	c, ok := e.components[t]
	return c, ok
}

func (e *Entity) HasComponent(t ComponentType) bool {
	_, ok := e.components[t]
	return ok
}

// Components returns an unordered snapshot of the attached components.
func (e *Entity) Components() []Component {
	out := make([]Component, 0, len(e.components))
	for _, c := range e.components {
		out = append(out, c)
	}
	return out
}

func (e *Entity) AddTag(tag string) {
	e.tags[tag] = struct{}{}
}

func (e *Entity) RemoveTag(tag string) {
	delete(e.tags, tag)
}

func (e *Entity) HasTag(tag string) bool {
	_, ok := e.tags[tag]
	return ok
}

func (e *Entity) Tags() []string {
	out := make([]string, 0, len(e.tags))
	for t := range e.tags {
		out = append(out, t)
	}
	return out
}

func (e *Entity) SetActive(active bool) { e.active = active }
func (e *Entity) Active() bool          { return e.active }

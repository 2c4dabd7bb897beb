package component

import "github.com/gridforge/engine/internal/ecs"

// Health tracks current and maximum hit points.
type Health struct {
	ecs.BaseComponent
	Current, Max int
}

func NewHealth(max int) *Health {
	return &Health{Current: max, Max: max}
}

func (h *Health) Type() ecs.ComponentType { return ecs.TypeHealth }

func (h *Health) Clone() ecs.Component {
	c := *h
	c.BaseComponent = ecs.BaseComponent{}
	return &c
}

// Damage reduces current HP, clamped at zero, and reports whether the entity
// is still alive.
func (h *Health) Damage(amount int) bool {
	h.Current -= amount
	if h.Current < 0 {
		h.Current = 0
	}
	return h.Current > 0
}

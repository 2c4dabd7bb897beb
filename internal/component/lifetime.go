package component

import "github.com/gridforge/engine/internal/ecs"

// Lifetime marks an entity for removal once Remaining seconds elapse.
type Lifetime struct {
	ecs.BaseComponent
	Remaining float64
}

func NewLifetime(seconds float64) *Lifetime {
	return &Lifetime{Remaining: seconds}
}

func (l *Lifetime) Type() ecs.ComponentType { return ecs.TypeLifetime }

func (l *Lifetime) Clone() ecs.Component {
	c := *l
	c.BaseComponent = ecs.BaseComponent{}
	return &c
}

package component

import "github.com/gridforge/engine/internal/ecs"

// Velocity is a rate of position change in units per second.
type Velocity struct {
	ecs.BaseComponent
	DX, DY float64
}

func NewVelocity(dx, dy float64) *Velocity {
	return &Velocity{DX: dx, DY: dy}
}

func (v *Velocity) Type() ecs.ComponentType { return ecs.TypeVelocity }

func (v *Velocity) Clone() ecs.Component {
	c := *v
	c.BaseComponent = ecs.BaseComponent{}
	return &c
}

package system

import (
	"github.com/gridforge/engine/internal/component"
	"github.com/gridforge/engine/internal/ecs"
)

// MovementSystem integrates Transform by Velocity each tick. Runs after
// behavior scripts so it sees this tick's velocity writes.
type MovementSystem struct {
	ecs.BaseSystem
}

func NewMovementSystem(priority int) *MovementSystem {
	return &MovementSystem{BaseSystem: ecs.NewBaseSystem(priority)}
}

func (s *MovementSystem) Filter(e *ecs.Entity) bool {
	return e.Active() &&
		e.HasComponent(ecs.TypeTransform) &&
		e.HasComponent(ecs.TypeVelocity)
}

func (s *MovementSystem) Update(dt float64, entities []*ecs.Entity) {
	for _, e := range entities {
		tc, _ := e.Component(ecs.TypeTransform)
		vc, _ := e.Component(ecs.TypeVelocity)
		t := tc.(*component.Transform)
		v := vc.(*component.Velocity)
		t.Translate(v.DX*dt, v.DY*dt)
	}
}

package system

import (
	"go.uber.org/zap"

	"github.com/gridforge/engine/internal/component"
	"github.com/gridforge/engine/internal/ecs"
)

// LifetimeSystem ticks down Lifetime components and requests removal of
// expired entities. Removal is buffered by the world, so every other system
// this tick still sees the expiring entity.
type LifetimeSystem struct {
	ecs.BaseSystem
	log *zap.Logger
}

func NewLifetimeSystem(priority int, log *zap.Logger) *LifetimeSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &LifetimeSystem{BaseSystem: ecs.NewBaseSystem(priority), log: log}
}

func (s *LifetimeSystem) Filter(e *ecs.Entity) bool {
	return e.Active() && e.HasComponent(ecs.TypeLifetime)
}

func (s *LifetimeSystem) Update(dt float64, entities []*ecs.Entity) {
	for _, e := range entities {
		lc, _ := e.Component(ecs.TypeLifetime)
		life := lc.(*component.Lifetime)
		life.Remaining -= dt
		if life.Remaining > 0 {
			continue
		}
		s.log.Debug("lifetime expired", zap.Uint64("entity", uint64(e.ID())))
		s.World().RemoveEntity(e.ID())
	}
}

package system

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/gridforge/engine/internal/component"
	"github.com/gridforge/engine/internal/ecs"
	"github.com/gridforge/engine/internal/scripting"
)

// ScriptSystem runs each scripted entity's Lua behavior once per tick,
// feeding it the entity's spatial state and writing the returned velocity
// and props back. Behavior errors are logged, never fatal mid-tick.
type ScriptSystem struct {
	ecs.BaseSystem
	engine *scripting.Engine
	log    *zap.Logger
}

// NewScriptSystem loads the behavior scripts up front; a directory that
// cannot be loaded fails here rather than after the system has taken its
// place in the world's priority order.
func NewScriptSystem(priority int, scriptsDir string, log *zap.Logger) (*ScriptSystem, error) {
	engine, err := scripting.NewEngine(scriptsDir, log)
	if err != nil {
		return nil, fmt.Errorf("script system: %w", err)
	}
	return &ScriptSystem{
		BaseSystem: ecs.NewBaseSystem(priority),
		engine:     engine,
		log:        log,
	}, nil
}

func (s *ScriptSystem) Filter(e *ecs.Entity) bool {
	return e.Active() &&
		e.HasComponent(ecs.TypeScript) &&
		e.HasComponent(ecs.TypeTransform)
}

func (s *ScriptSystem) Update(dt float64, entities []*ecs.Entity) {
	for _, e := range entities {
		sc, _ := e.Component(ecs.TypeScript)
		tc, _ := e.Component(ecs.TypeTransform)
		script := sc.(*component.Script)
		transform := tc.(*component.Transform)

		ctx := scripting.BehaviorContext{
			ID:    uint64(e.ID()),
			DT:    dt,
			X:     transform.X,
			Y:     transform.Y,
			Props: script.Props,
		}
		var vel *component.Velocity
		if vc, ok := e.Component(ecs.TypeVelocity); ok {
			vel = vc.(*component.Velocity)
			ctx.DX, ctx.DY = vel.DX, vel.DY
		}

		result, err := s.engine.CallBehavior(script.Behavior, ctx)
		if err != nil {
			s.log.Warn("behavior failed",
				zap.Uint64("entity", uint64(e.ID())),
				zap.String("behavior", script.Behavior),
				zap.Error(err))
			continue
		}
		if vel != nil {
			vel.DX, vel.DY = result.DX, result.DY
		}
	}
}

// Destroy closes the Lua VM when the system leaves the world.
func (s *ScriptSystem) Destroy() {
	s.engine.Close()
}

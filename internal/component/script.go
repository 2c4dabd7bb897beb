package component

import "github.com/gridforge/engine/internal/ecs"

// Script binds an entity to a named Lua behavior function. Props are free
// parameters the behavior reads and writes across ticks.
type Script struct {
	ecs.BaseComponent
	Behavior string
	Props    map[string]float64
}

func NewScript(behavior string) *Script {
	return &Script{Behavior: behavior, Props: make(map[string]float64)}
}

func (s *Script) Type() ecs.ComponentType { return ecs.TypeScript }

// Clone deep-copies Props; a spawned entity's behavior state must not alias
// the template's.
func (s *Script) Clone() ecs.Component {
	c := &Script{Behavior: s.Behavior, Props: make(map[string]float64, len(s.Props))}
	for k, v := range s.Props {
		c.Props[k] = v
	}
	return c
}

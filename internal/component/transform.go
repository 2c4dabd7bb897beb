package component

import "github.com/gridforge/engine/internal/ecs"

// Transform is an entity's spatial state. Rotation and scale affect rendering
// only; collision geometry stays axis-aligned and unscaled.
type Transform struct {
	ecs.BaseComponent
	X, Y           float64
	Rotation       float64 // radians
	ScaleX, ScaleY float64
}

func NewTransform(x, y float64) *Transform {
	return &Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1}
}

func (t *Transform) Type() ecs.ComponentType { return ecs.TypeTransform }

func (t *Transform) Clone() ecs.Component {
	c := *t
	c.BaseComponent = ecs.BaseComponent{}
	return &c
}

// Translate moves the transform by (dx, dy).
func (t *Transform) Translate(dx, dy float64) {
	t.X += dx
	t.Y += dy
}

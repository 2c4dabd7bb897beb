package component

import (
	"math"

	"github.com/gridforge/engine/internal/ecs"
)

// ShapeKind selects the collider's narrow-phase geometry.
type ShapeKind uint8

const (
	ShapeCircle ShapeKind = iota
	ShapeRect
)

func (s ShapeKind) String() string {
	switch s {
	case ShapeCircle:
		return "circle"
	case ShapeRect:
		return "rect"
	}
	return "unknown"
}

// Collider attaches collision geometry to an entity. Layer is the bitmask of
// categories this collider belongs to; Mask is the bitmask of categories it
// collides with. A pair is only shape-tested when each collider's mask
// intersects the other's layer. Zero values mean layer 1 and mask all-bits,
// so a default collider collides with everything.
type Collider struct {
	ecs.BaseComponent
	Shape  ShapeKind
	Radius float64 // circle
	Width  float64 // rect
	Height float64 // rect

	// Local offset from the owning transform's position.
	OffsetX, OffsetY float64

	Layer uint32
	Mask  uint32
}

func NewCircleCollider(radius float64) *Collider {
	return &Collider{Shape: ShapeCircle, Radius: radius, Layer: 1, Mask: math.MaxUint32}
}

func NewRectCollider(width, height float64) *Collider {
	return &Collider{Shape: ShapeRect, Width: width, Height: height, Layer: 1, Mask: math.MaxUint32}
}

func (c *Collider) Type() ecs.ComponentType { return ecs.TypeCollider }

func (c *Collider) Clone() ecs.Component {
	cp := *c
	cp.BaseComponent = ecs.BaseComponent{}
	return &cp
}

// EffectiveLayer resolves the zero-value default of layer 1.
func (c *Collider) EffectiveLayer() uint32 {
	if c.Layer == 0 {
		return 1
	}
	return c.Layer
}

// EffectiveMask resolves the zero-value default of all bits set.
func (c *Collider) EffectiveMask() uint32 {
	if c.Mask == 0 {
		return math.MaxUint32
	}
	return c.Mask
}

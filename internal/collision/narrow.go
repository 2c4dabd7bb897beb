package collision

import "github.com/gridforge/engine/internal/component"

// Narrow-phase shape tests. All comparisons are strict: shapes that merely
// touch are not colliding. Bounds come from transform position plus collider
// offset; rotation and scale are never applied, collision geometry is always
// axis-aligned.

// maskGate is the symmetric layer/mask filter: a pair is shape-tested only
// when each collider's mask intersects the other's layer.
func maskGate(a, b *component.Collider) bool {
	return a.EffectiveMask()&b.EffectiveLayer() != 0 &&
		b.EffectiveMask()&a.EffectiveLayer() != 0
}

// overlap dispatches on the pair's shape kinds.
func overlap(a, b proxy) bool {
	switch {
	case a.collider.Shape == component.ShapeCircle && b.collider.Shape == component.ShapeCircle:
		return circleCircle(a, b)
	case a.collider.Shape == component.ShapeRect && b.collider.Shape == component.ShapeRect:
		return rectRect(a, b)
	case a.collider.Shape == component.ShapeCircle:
		return circleRect(a, b)
	default:
		return circleRect(b, a)
	}
}

func circleCircle(a, b proxy) bool {
	ax := a.transform.X + a.collider.OffsetX
	ay := a.transform.Y + a.collider.OffsetY
	bx := b.transform.X + b.collider.OffsetX
	by := b.transform.Y + b.collider.OffsetY
	dx, dy := bx-ax, by-ay
	sum := a.collider.Radius + b.collider.Radius
	return dx*dx+dy*dy < sum*sum
}

func rectRect(a, b proxy) bool {
	return a.minX < b.maxX && b.minX < a.maxX &&
		a.minY < b.maxY && b.minY < a.maxY
}

// circleRect clamps the circle center onto the rect bounds and compares the
// clamped distance against the radius.
func circleRect(circle, rect proxy) bool {
	cx := circle.transform.X + circle.collider.OffsetX
	cy := circle.transform.Y + circle.collider.OffsetY
	nx := clamp(cx, rect.minX, rect.maxX)
	ny := clamp(cy, rect.minY, rect.maxY)
	dx, dy := cx-nx, cy-ny
	return dx*dx+dy*dy < circle.collider.Radius*circle.collider.Radius
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

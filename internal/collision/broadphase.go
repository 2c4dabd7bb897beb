package collision

import (
	"math"

	"github.com/gridforge/engine/internal/component"
	"github.com/gridforge/engine/internal/ecs"
)

// proxy is one tick's snapshot of a collidable entity: its components plus
// the world-space AABB used by the broad phase. Circle bounds are the
// enclosing box; rect bounds are anchored at transform position + offset.
type proxy struct {
	entity    *ecs.Entity
	transform *component.Transform
	collider  *component.Collider

	minX, minY, maxX, maxY float64
}

func makeProxy(e *ecs.Entity, t *component.Transform, c *component.Collider) proxy {
	p := proxy{entity: e, transform: t, collider: c}
	x := t.X + c.OffsetX
	y := t.Y + c.OffsetY
	switch c.Shape {
	case component.ShapeCircle:
		p.minX, p.minY = x-c.Radius, y-c.Radius
		p.maxX, p.maxY = x+c.Radius, y+c.Radius
	case component.ShapeRect:
		p.minX, p.minY = x, y
		p.maxX, p.maxY = x+c.Width, y+c.Height
	}
	return p
}

// Broadphase narrows the candidate pair set ahead of the exact shape tests.
// Candidates are always a superset of the true overlaps, so the choice of broad
// phase never changes which events fire.
type Broadphase interface {
	// pairs invokes fn once per candidate index pair, i < j.
	pairs(ps []proxy, fn func(i, j int))
}

// AllPairs is the exhaustive O(n²) broad phase and the default.
type AllPairs struct{}

func (AllPairs) pairs(ps []proxy, fn func(i, j int)) {
	for i := 0; i < len(ps); i++ {
		for j := i + 1; j < len(ps); j++ {
			fn(i, j)
		}
	}
}

// Grid is a uniform spatial hash: each proxy is binned into every cell its
// AABB touches and only proxies sharing a cell become candidates.
type Grid struct {
	CellSize float64
}

func NewGrid(cellSize float64) *Grid {
	if cellSize <= 0 {
		cellSize = 64
	}
	return &Grid{CellSize: cellSize}
}

type cellKey struct{ cx, cy int }

func (g *Grid) pairs(ps []proxy, fn func(i, j int)) {
	cells := make(map[cellKey][]int)
	for i, p := range ps {
		minCX := int(math.Floor(p.minX / g.CellSize))
		maxCX := int(math.Floor(p.maxX / g.CellSize))
		minCY := int(math.Floor(p.minY / g.CellSize))
		maxCY := int(math.Floor(p.maxY / g.CellSize))
		for cx := minCX; cx <= maxCX; cx++ {
			for cy := minCY; cy <= maxCY; cy++ {
				k := cellKey{cx, cy}
				cells[k] = append(cells[k], i)
			}
		}
	}

	seen := make(map[[2]int]struct{})
	for _, bucket := range cells {
		for a := 0; a < len(bucket); a++ {
			for b := a + 1; b < len(bucket); b++ {
				i, j := bucket[a], bucket[b]
				if j < i {
					i, j = j, i
				}
				key := [2]int{i, j}
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
				fn(i, j)
			}
		}
	}
}

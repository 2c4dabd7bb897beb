package ecs

// System is a per-tick behavior unit. The World pre-filters its entity
// population with Filter each tick and hands Update only the matches, in
// stable registry order, so implementations never need to re-apply their own
// predicate.
type System interface {
	// Priority orders execution within a tick; lower runs earlier. Fixed at
	// construction.
	Priority() int

	Active() bool
	SetActive(bool)

	// Filter is a pure predicate over one entity describing what the system
	// operates on.
	Filter(*Entity) bool

	// Update runs once per tick with the elapsed seconds and the entities
	// matching Filter.
	Update(dt float64, entities []*Entity)

	// Init fires once when the system is added to a World, Destroy once when
	// it is removed. BaseSystem provides no-op defaults.
	Init()
	Destroy()

	attach(*World)
	// World returns the owning world, nil while detached.
	World() *World
}

// BaseSystem supplies priority, active flag, and the world back-reference.
// Concrete systems embed it and implement Filter and Update.
type BaseSystem struct {
	priority int
	active   bool
	world    *World
}

func NewBaseSystem(priority int) BaseSystem {
	return BaseSystem{priority: priority, active: true}
}

func (b *BaseSystem) Priority() int         { return b.priority }
func (b *BaseSystem) Active() bool          { return b.active }
func (b *BaseSystem) SetActive(active bool) { b.active = active }
func (b *BaseSystem) World() *World         { return b.world }
func (b *BaseSystem) Init()                 {}
func (b *BaseSystem) Destroy()              {}
func (b *BaseSystem) attach(w *World)       { b.world = w }

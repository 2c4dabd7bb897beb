package ecs

// ComponentType enumerates the closed set of component kinds. Keying the
// entity's component map on an enum instead of strings makes shape dispatch
// exhaustive and rules out identifier collisions between kinds.
type ComponentType uint8

const (
	TypeTransform ComponentType = iota
	TypeVelocity
	TypeCollider
	TypeHealth
	TypeScript
	TypeLifetime
)

func (t ComponentType) String() string {
	switch t {
	case TypeTransform:
		return "transform"
	case TypeVelocity:
		return "velocity"
	case TypeCollider:
		return "collider"
	case TypeHealth:
		return "health"
	case TypeScript:
		return "script"
	case TypeLifetime:
		return "lifetime"
	}
	return "unknown"
}

// Component is the contract every component kind implements. The owner
// back-reference is a plain non-owning pointer: a component never outlives
// or keeps alive the entity holding it, and it is nil while detached.
type Component interface {
	Type() ComponentType
	Owner() *Entity
	setOwner(*Entity)

	// Init and Destroy are lifecycle hooks fired by Entity.AddComponent and
	// Entity.RemoveComponent. BaseComponent provides no-op defaults.
	Init()
	Destroy()

	// Clone returns a fully independent, detached deep copy. Systems stamp
	// new instances from template components and must not alias the
	// template's mutable state.
	Clone() Component
}

// BaseComponent carries the owner back-reference and default lifecycle
// hooks. Concrete kinds embed it and implement Type and Clone themselves.
type BaseComponent struct {
	owner *Entity
}

func (b *BaseComponent) Owner() *Entity     { return b.owner }
func (b *BaseComponent) setOwner(e *Entity) { b.owner = e }
func (b *BaseComponent) Init()              {}
func (b *BaseComponent) Destroy()           {}

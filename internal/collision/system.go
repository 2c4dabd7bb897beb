package collision

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/gridforge/engine/internal/component"
	"github.com/gridforge/engine/internal/ecs"
	"github.com/gridforge/engine/internal/event"
)

// Kind is the collision transition observed between two consecutive ticks.
type Kind uint8

const (
	Enter Kind = iota // pair collides now, did not last tick
	Stay              // pair collides now and last tick
	Exit              // pair collided last tick, not now
)

func (k Kind) String() string {
	switch k {
	case Enter:
		return "enter"
	case Stay:
		return "stay"
	case Exit:
		return "exit"
	}
	return "unknown"
}

// Event describes one pair transition. For Exit events the entities are the
// last-known pointers and may already have been removed from the world.
type Event struct {
	Kind Kind
	A, B *ecs.Entity
}

// pairKey canonically identifies an unordered entity pair, smaller id first,
// so pair identity is independent of iteration order.
type pairKey struct {
	a, b ecs.EntityID
}

func makePairKey(a, b ecs.EntityID) pairKey {
	if b < a {
		a, b = b, a
	}
	return pairKey{a: a, b: b}
}

func (k pairKey) String() string {
	return fmt.Sprintf("%d:%d", k.a, k.b)
}

type pairState struct {
	a, b *ecs.Entity
}

// System detects pairwise overlaps between active entities carrying both a
// Transform and a Collider, and emits Enter/Stay/Exit events by diffing each
// tick's colliding pair set against the previous tick's. Events are delivered
// synchronously within the detecting tick; cross-pair order is unspecified.
type System struct {
	ecs.BaseSystem
	broad Broadphase
	prev  map[pairKey]pairState
	bus   *event.Bus
	log   *zap.Logger
}

// NewSystem builds a collision system. A nil broad phase falls back to
// AllPairs; a nil logger is replaced by a no-op one.
func NewSystem(priority int, broad Broadphase, log *zap.Logger) *System {
	if broad == nil {
		broad = AllPairs{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &System{
		BaseSystem: ecs.NewBaseSystem(priority),
		broad:      broad,
		prev:       make(map[pairKey]pairState),
		bus:        event.NewBus(),
		log:        log,
	}
}

func (s *System) Filter(e *ecs.Entity) bool {
	return e.Active() &&
		e.HasComponent(ecs.TypeTransform) &&
		e.HasComponent(ecs.TypeCollider)
}

// AddListener subscribes fn to collision events. Delivery is synchronous,
// one pair at a time, in the same tick the transition is detected.
func (s *System) AddListener(fn func(Event)) event.Subscription {
	return event.Subscribe(s.bus, fn)
}

// RemoveListener drops a subscription. Unknown handles are a no-op.
func (s *System) RemoveListener(id event.Subscription) {
	s.bus.Unsubscribe(id)
}

func (s *System) Update(_ float64, entities []*ecs.Entity) {
	proxies := make([]proxy, 0, len(entities))
	for _, e := range entities {
		tc, _ := e.Component(ecs.TypeTransform)
		cc, _ := e.Component(ecs.TypeCollider)
		t, ok := tc.(*component.Transform)
		if !ok {
			continue
		}
		c, ok := cc.(*component.Collider)
		if !ok {
			continue
		}
		proxies = append(proxies, makeProxy(e, t, c))
	}

	current := make(map[pairKey]pairState, len(s.prev))
	s.broad.pairs(proxies, func(i, j int) {
		a, b := proxies[i], proxies[j]
		if !maskGate(a.collider, b.collider) {
			return
		}
		if !overlap(a, b) {
			return
		}
		k := makePairKey(a.entity.ID(), b.entity.ID())
		current[k] = pairState{a: a.entity, b: b.entity}
	})

	for k, p := range current {
		if _, was := s.prev[k]; was {
			s.emit(Event{Kind: Stay, A: p.a, B: p.b})
		} else {
			s.log.Debug("collision enter", zap.Stringer("pair", k))
			s.emit(Event{Kind: Enter, A: p.a, B: p.b})
		}
	}
	// Pairs that vanished emit Exit even when an entity was removed from the
	// world since last tick; the recorded pointers carry the last-known pair.
	for k, p := range s.prev {
		if _, still := current[k]; !still {
			s.log.Debug("collision exit", zap.Stringer("pair", k))
			s.emit(Event{Kind: Exit, A: p.a, B: p.b})
		}
	}

	s.prev = current
}

func (s *System) emit(ev Event) {
	event.Publish(s.bus, ev)
}

// Destroy drops cross-tick pair state so a re-added system starts clean.
func (s *System) Destroy() {
	s.prev = make(map[pairKey]pairState)
}

package event

import (
	"reflect"
	"sync/atomic"
)

// Bus is a synchronous publish/subscribe channel keyed by event type.
// Handlers run in subscription order on the publisher's goroutine, so
// subscribers observe events in the same tick they are emitted.
//
// Re-entrancy rule: Publish iterates the handler list as it was when
// dispatch started. Subscribe/Unsubscribe calls made from inside a handler
// take effect from the next Publish, never mid-dispatch.
type Bus struct {
	handlers map[reflect.Type][]subscriber
	nextID   uint64
}

// Subscription identifies one registered handler for later removal.
type Subscription uint64

type subscriber struct {
	id   Subscription
	call func(any)
}

func NewBus() *Bus {
	return &Bus{
		handlers: make(map[reflect.Type][]subscriber),
	}
}

// Subscribe registers a typed handler and returns its subscription handle.
func Subscribe[T any](b *Bus, fn func(T)) Subscription {
	t := reflect.TypeOf((*T)(nil)).Elem()
	id := Subscription(atomic.AddUint64(&b.nextID, 1))
	// Copy-on-write so an in-flight Publish keeps iterating its snapshot.
	existing := b.handlers[t]
	next := make([]subscriber, len(existing), len(existing)+1)
	copy(next, existing)
	next = append(next, subscriber{
		id:   id,
		call: func(ev any) { fn(ev.(T)) },
	})
	b.handlers[t] = next
	return id
}

// Unsubscribe removes the handler registered under id. Unknown handles are
// a no-op.
func (b *Bus) Unsubscribe(id Subscription) {
	for t, subs := range b.handlers {
		for i, s := range subs {
			if s.id != id {
				continue
			}
			next := make([]subscriber, 0, len(subs)-1)
			next = append(next, subs[:i]...)
			next = append(next, subs[i+1:]...)
			b.handlers[t] = next
			return
		}
	}
}

// Publish delivers ev synchronously to every handler subscribed to T.
func Publish[T any](b *Bus, ev T) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	for _, s := range b.handlers[t] {
		s.call(ev)
	}
}

package event_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gridforge/engine/internal/event"
)

type ping struct{ n int }
type pong struct{ n int }

func TestPublishReachesSubscribersInOrder(t *testing.T) {
	bus := event.NewBus()
	var got []int
	event.Subscribe(bus, func(p ping) { got = append(got, p.n) })
	event.Subscribe(bus, func(p ping) { got = append(got, p.n*10) })

	event.Publish(bus, ping{n: 3})

	assert.Equal(t, []int{3, 30}, got)
}

func TestPublishIsTypeKeyed(t *testing.T) {
	bus := event.NewBus()
	var pings, pongs int
	event.Subscribe(bus, func(ping) { pings++ })
	event.Subscribe(bus, func(pong) { pongs++ })

	event.Publish(bus, ping{})
	event.Publish(bus, ping{})
	event.Publish(bus, pong{})

	assert.Equal(t, 2, pings)
	assert.Equal(t, 1, pongs)
}

func TestUnsubscribe(t *testing.T) {
	bus := event.NewBus()
	var calls int
	id := event.Subscribe(bus, func(ping) { calls++ })

	event.Publish(bus, ping{})
	bus.Unsubscribe(id)
	event.Publish(bus, ping{})

	assert.Equal(t, 1, calls)

	// Unknown handles are a no-op.
	bus.Unsubscribe(event.Subscription(12345))
}

func TestSubscribeDuringDispatchTakesEffectNextPublish(t *testing.T) {
	bus := event.NewBus()
	var late int
	event.Subscribe(bus, func(ping) {
		event.Subscribe(bus, func(ping) { late++ })
	})

	event.Publish(bus, ping{})
	assert.Equal(t, 0, late, "handler added mid-dispatch must not see the current event")

	event.Publish(bus, ping{})
	assert.Equal(t, 1, late)
}

func TestUnsubscribeDuringDispatchTakesEffectNextPublish(t *testing.T) {
	bus := event.NewBus()
	var second int
	var secondID event.Subscription
	event.Subscribe(bus, func(ping) {
		bus.Unsubscribe(secondID)
	})
	secondID = event.Subscribe(bus, func(ping) { second++ })

	event.Publish(bus, ping{})
	assert.Equal(t, 1, second, "current dispatch iterates its snapshot")

	event.Publish(bus, ping{})
	assert.Equal(t, 1, second)
}

package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus(t *testing.T) {
	bus := NewEventBus()

	var received *Event
	var callCount int

	bus.Subscribe(EventCollectionRefreshed, func(event *Event) error {
		received = event
		callCount++
		return nil
	})

	err := bus.PublishJSON(EventCollectionRefreshed, CollectionPayload{Collection: "buses", Count: 3})
	require.NoError(t, err)

	require.Equal(t, 1, callCount)
	assert.Equal(t, EventCollectionRefreshed, received.Type)
	assert.False(t, received.CreatedAt.IsZero())

	var decoded CollectionPayload
	require.NoError(t, received.Decode(&decoded))
	assert.Equal(t, "buses", decoded.Collection)
	assert.Equal(t, 3, decoded.Count)
}

func TestEventBusMultipleSubscribers(t *testing.T) {
	bus := NewEventBus()
	var count1, count2 int

	bus.Subscribe("event", func(_ *Event) error { count1++; return nil })
	bus.Subscribe("event", func(_ *Event) error { count2++; return nil })

	bus.Publish(&Event{Type: "event"})

	assert.Equal(t, 1, count1)
	assert.Equal(t, 1, count2)
}

func TestEventBusUnsubscribe(t *testing.T) {
	bus := NewEventBus()
	var first, second int

	unsubscribe := bus.Subscribe("event", func(_ *Event) error { first++; return nil })
	bus.Subscribe("event", func(_ *Event) error { second++; return nil })

	bus.Publish(&Event{Type: "event"})
	unsubscribe()
	unsubscribe()
	bus.Publish(&Event{Type: "event"})

	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
}

func TestEventBusNoSubscribers(t *testing.T) {
	bus := NewEventBus()
	assert.NotPanics(t, func() { bus.Publish(&Event{Type: "unknown"}) })
	assert.NoError(t, bus.PublishJSON("unknown", nil))

	var nilBus *EventBus
	assert.NoError(t, nilBus.PublishJSON("unknown", EntityPayload{Entity: "bus"}))
	assert.NotPanics(t, func() { nilBus.Publish(&Event{Type: "unknown"}) })
}

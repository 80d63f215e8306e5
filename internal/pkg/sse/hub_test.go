package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHub_PublishAndBroadcast(t *testing.T) {
	h := NewHub()
	a, cleanupA := h.Subscribe("emp-a")
	b, cleanupB := h.Subscribe("emp-b")
	defer cleanupB()

	assert.Equal(t, 2, h.TotalSubscribers())

	h.Publish("emp-a", Event{Event: "only-a"})
	h.Broadcast(Event{Event: "everyone"})

	assert.Equal(t, "only-a", (<-a).Event)
	assert.Equal(t, "everyone", (<-a).Event)
	assert.Equal(t, "everyone", (<-b).Event)

	cleanupA()
	cleanupA()
	assert.Equal(t, 1, h.TotalSubscribers())

	_, open := <-a
	assert.False(t, open)
}

func TestHub_FullChannelDoesNotBlock(t *testing.T) {
	h := NewHub()
	ch, cleanup := h.Subscribe("emp")
	defer cleanup()

	for i := 0; i < cap(ch)+5; i++ {
		h.Broadcast(Event{Event: "tick"})
	}
	assert.Len(t, ch, cap(ch))
}

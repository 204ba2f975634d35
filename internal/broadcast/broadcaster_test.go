package broadcast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBroadcaster_PublishDeliversFrame(t *testing.T) {
	b := NewBroadcaster(zap.NewNop())
	_, ch := b.Subscribe()

	b.Publish("photo_created", map[string]string{"id": "P-001"})

	select {
	case frame := <-ch:
		assert.Equal(t, "event: photo_created\ndata: {\"id\":\"P-001\"}\n\n", string(frame))
	default:
		t.Fatal("expected a frame to be delivered")
	}
}

func TestBroadcaster_PublishReachesAllSubscribers(t *testing.T) {
	b := NewBroadcaster(zap.NewNop())
	_, ch1 := b.Subscribe()
	_, ch2 := b.Subscribe()

	b.Publish("photo_updated", map[string]string{"id": "P-002"})

	require.Len(t, ch1, 1)
	require.Len(t, ch2, 1)
	assert.Equal(t, <-ch1, <-ch2)
}

func TestBroadcaster_UnsubscribeStopsDelivery(t *testing.T) {
	b := NewBroadcaster(zap.NewNop())
	id, ch := b.Subscribe()

	b.Unsubscribe(id)
	b.Publish("photo_updated", map[string]string{"id": "P-001"})

	_, open := <-ch
	assert.False(t, open)
	assert.Equal(t, 0, b.SubscriberCount())
}

func TestBroadcaster_UnsubscribeUnknownID(t *testing.T) {
	b := NewBroadcaster(zap.NewNop())
	id, _ := b.Subscribe()

	b.Unsubscribe(id)
	// second call must be a no-op, not a double close
	b.Unsubscribe(id)

	assert.Equal(t, 0, b.SubscriberCount())
}

func TestBroadcaster_SlowSubscriberDoesNotBlock(t *testing.T) {
	b := NewBroadcaster(zap.NewNop())
	_, slow := b.Subscribe()
	_, fast := b.Subscribe()

	// fill the slow subscriber's buffer
	for i := 0; i < subscriberBuffer+5; i++ {
		b.Publish("photo_updated", map[string]int{"n": i})
	}

	assert.Len(t, slow, subscriberBuffer)
	assert.Len(t, fast, subscriberBuffer)

	// drain fast and confirm further publishes still arrive
	for len(fast) > 0 {
		<-fast
	}
	b.Publish("photo_updated", map[string]string{"id": "P-009"})
	assert.Len(t, fast, 1)
}

func TestBroadcaster_PublishWithNoSubscribers(t *testing.T) {
	b := NewBroadcaster(zap.NewNop())

	assert.NotPanics(t, func() {
		b.Publish("photo_created", map[string]string{"id": "P-001"})
	})
}

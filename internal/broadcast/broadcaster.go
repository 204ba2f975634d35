package broadcast

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const subscriberBuffer = 16

// Broadcaster fans out server-sent event frames to every connected
// subscriber. There is no buffering or replay: a subscriber that
// connects after an event was published never receives it.
type Broadcaster struct {
	mu          sync.RWMutex
	subscribers map[uuid.UUID]chan []byte
	logger      *zap.Logger
}

func NewBroadcaster(logger *zap.Logger) *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[uuid.UUID]chan []byte),
		logger:      logger,
	}
}

// Subscribe registers a new subscriber and returns its id and the
// channel frames will be delivered on.
func (b *Broadcaster) Subscribe() (uuid.UUID, <-chan []byte) {
	id := uuid.New()
	ch := make(chan []byte, subscriberBuffer)

	b.mu.Lock()
	b.subscribers[id] = ch
	b.mu.Unlock()

	b.logger.Debug("subscriber connected", zap.String("subscriberId", id.String()))
	return id, ch
}

func (b *Broadcaster) Unsubscribe(id uuid.UUID) {
	b.mu.Lock()
	ch, ok := b.subscribers[id]
	if ok {
		delete(b.subscribers, id)
		close(ch)
	}
	b.mu.Unlock()

	if ok {
		b.logger.Debug("subscriber disconnected", zap.String("subscriberId", id.String()))
	}
}

// Publish serializes payload and delivers one framed message to every
// subscriber. A subscriber whose buffer is full is skipped; a slow or
// dead connection never aborts the fan-out to the others.
func (b *Broadcaster) Publish(event string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		b.logger.Error("failed to encode event payload", zap.String("event", event), zap.Error(err))
		return
	}
	frame := []byte(fmt.Sprintf("event: %s\ndata: %s\n\n", event, data))

	b.mu.RLock()
	defer b.mu.RUnlock()
	for id, ch := range b.subscribers {
		select {
		case ch <- frame:
		default:
			b.logger.Warn("dropping event for slow subscriber",
				zap.String("subscriberId", id.String()), zap.String("event", event))
		}
	}
}

// SubscriberCount reports how many subscribers are currently connected.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

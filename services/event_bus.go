package services

import (
	"sync"
	"time"

	"github.com/xoxo-studio/xoxo-workshop-api/models"
)

// OrderEvent is published after every successful order status write.
type OrderEvent struct {
	OrderCode string
	Status    models.OrderStatus
	ChangedBy string
	At        time.Time
}

// EventBus is an in-process observer seam replacing store-level push
// subscriptions: interested components subscribe with a channel instead
// of watching database paths.
type EventBus struct {
	mu   sync.Mutex
	subs map[int]chan OrderEvent
	next int
}

// NewEventBus creates an empty bus.
func NewEventBus() *EventBus {
	return &EventBus{subs: make(map[int]chan OrderEvent)}
}

// Subscribe returns a channel of future order events and a function that
// cancels the subscription. The channel is buffered; a subscriber that
// falls behind misses events rather than blocking publishers.
func (b *EventBus) Subscribe() (<-chan OrderEvent, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++
	ch := make(chan OrderEvent, 16)
	b.subs[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if c, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(c)
		}
	}
	return ch, cancel
}

// Publish delivers the event to all current subscribers without blocking.
func (b *EventBus) Publish(ev OrderEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
			// Slow subscriber; drop rather than stall the write path.
		}
	}
}

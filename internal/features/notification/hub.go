package notification

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

const replayDepth = 10

// OrderEvent is the wire payload pushed to order stream subscribers.
type OrderEvent struct {
	Type string                 `json:"type"`
	Data map[string]interface{} `json:"data"`
}

// NewOrderEvent builds the "new-order" payload the back office listens for.
func NewOrderEvent(id, customerName string, amount float64, status string) OrderEvent {
	return OrderEvent{
		Type: "new-order",
		Data: map[string]interface{}{
			"id":           id,
			"customerName": customerName,
			"amount":       amount,
			"status":       status,
			"timestamp":    time.Now().UTC().Format(time.RFC3339),
		},
	}
}

// Subscription is a live feed handle. Events arrives on C; Close releases the
// slot. The channel is buffered, and a subscriber that falls too far behind
// loses events rather than blocking publishers.
type Subscription struct {
	C      chan OrderEvent
	cancel func()
	once   sync.Once
}

func (s *Subscription) Close() {
	s.once.Do(s.cancel)
}

// Hub fans order events out to connected back-office clients and replays the
// most recent events to newcomers, newest first, so a reconnect misses
// nothing that still matters.
type Hub struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan OrderEvent
	recent []OrderEvent
	logger *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		subs:   make(map[int]chan OrderEvent),
		logger: logger,
	}
}

// Subscribe registers a listener and immediately queues the replay buffer,
// newest first.
func (h *Hub) Subscribe() *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++

	ch := make(chan OrderEvent, replayDepth+16)
	h.subs[id] = ch

	for i := len(h.recent) - 1; i >= 0; i-- {
		ch <- h.recent[i]
	}

	return &Subscription{
		C: ch,
		cancel: func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if existing, ok := h.subs[id]; ok {
				delete(h.subs, id)
				close(existing)
			}
		},
	}
}

// Publish delivers the event to every subscriber and records it for replay.
func (h *Hub) Publish(event OrderEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.recent = append(h.recent, event)
	if len(h.recent) > replayDepth {
		h.recent = h.recent[len(h.recent)-replayDepth:]
	}

	for id, ch := range h.subs {
		select {
		case ch <- event:
		default:
			h.logger.Warn("order stream subscriber too slow, dropping event",
				zap.Int("subscriber", id),
				zap.String("type", event.Type))
		}
	}
}

// Recent returns the replay buffer, newest first.
func (h *Hub) Recent() []OrderEvent {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]OrderEvent, 0, len(h.recent))
	for i := len(h.recent) - 1; i >= 0; i-- {
		out = append(out, h.recent[i])
	}
	return out
}

// SubscriberCount reports the number of live subscriptions.
func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

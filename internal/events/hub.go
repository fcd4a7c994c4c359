// Package events broadcasts entity-change notifications to connected
// dashboards so session status updates appear without polling.
package events

import (
	"sync"
	"time"
)

// Event actions.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// Entity kinds carried in events.
const (
	EntitySession = "session"
	EntityAgent   = "agent"
	EntityCatalog = "catalog_item"
)

// Event describes a single entity change.
type Event struct {
	Action  string    `json:"action"`
	Entity  string    `json:"entity"`
	ID      string    `json:"id"`
	Payload any       `json:"payload,omitempty"`
	At      time.Time `json:"at"`
}

const subscriberBuffer = 64

// Hub fans events out to subscribers. Publishing never blocks; slow
// subscribers drop events once their buffer fills.
type Hub struct {
	mu   sync.Mutex
	subs map[chan Event]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[chan Event]struct{})}
}

// Publish delivers the event to every current subscriber.
func (h *Hub) Publish(evt Event) {
	if evt.At.IsZero() {
		evt.At = time.Now()
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range h.subs {
		select {
		case ch <- evt:
		default:
			// Subscriber is not keeping up; drop rather than block
			// the publishing store operation.
		}
	}
}

// Subscribe registers a new subscriber. The returned cancel function must
// be called to release it.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		delete(h.subs, ch)
		h.mu.Unlock()
	}
	return ch, cancel
}

// SubscriberCount returns the number of active subscribers.
func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Package events implements fire-and-forget fan-out of post mutation
// events to live subscribers. There is no delivery guarantee, no buffering
// for disconnected subscribers and no replay; a subscriber that cannot keep
// up simply misses events.
package events

import "sync"

// Action identifies the kind of mutation an event describes.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Event is a single mutation notification. Post carries a snapshot of the
// mutated post for create/update and the post ID for delete. Ephemeral,
// never persisted.
type Event struct {
	Action Action      `json:"action"`
	Post   interface{} `json:"post"`
}

// subscriberBuffer bounds how far a subscriber may lag before events are
// dropped for it.
const subscriberBuffer = 16

// Broadcaster fans events out to every currently connected subscriber.
// Safe for concurrent use: subscriptions are added and removed while
// publishes are in flight.
type Broadcaster struct {
	mu          sync.Mutex
	subscribers map[chan Event]struct{}
}

// NewBroadcaster creates an empty broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subscribers: make(map[chan Event]struct{})}
}

// Subscribe registers a new subscriber and returns its event channel.
// The channel is closed by Unsubscribe.
func (b *Broadcaster) Subscribe() chan Event {
	ch := make(chan Event, subscriberBuffer)
	b.mu.Lock()
	b.subscribers[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes a subscriber and closes its channel. Unsubscribing a
// channel twice is a no-op.
func (b *Broadcaster) Unsubscribe(ch chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subscribers[ch]; !ok {
		return
	}
	delete(b.subscribers, ch)
	close(ch)
}

// Publish delivers the event to every current subscriber without blocking.
// A subscriber with a full buffer misses the event. Publishing with zero
// subscribers is a no-op.
func (b *Broadcaster) Publish(event Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
}

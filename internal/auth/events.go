package auth

import "sync"

// EventType identifies an authentication state transition.
type EventType string

const (
	EventRegistered EventType = "registered"
	EventLoggedIn   EventType = "logged_in"
	EventLoggedOut  EventType = "logged_out"
)

// Event describes a single authentication state transition.
type Event struct {
	Type     EventType
	Username string
}

// Broadcaster fans authentication events out to subscribers. Subscribers are
// invoked synchronously in subscription order.
type Broadcaster struct {
	mu   sync.RWMutex
	subs []func(Event)
}

// NewBroadcaster creates an empty broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{}
}

// Subscribe registers a callback for future events.
func (b *Broadcaster) Subscribe(fn func(Event)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = append(b.subs, fn)
}

// Publish delivers the event to all subscribers.
func (b *Broadcaster) Publish(e Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, fn := range b.subs {
		fn(e)
	}
}

package session

import "sync"

// EventKind tells subscribers what happened to a session
type EventKind string

const (
	EventLoggedIn  EventKind = "logged_in"
	EventLoggedOut EventKind = "logged_out"
)

// Event is delivered to subscribers on every login and logout
type Event struct {
	Kind    EventKind
	Session *Session
}

const subscriberBuffer = 32

type broker struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan Event
}

func newBroker() *broker {
	return &broker{subs: make(map[int]chan Event)}
}

func (b *broker) subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	ch := make(chan Event, subscriberBuffer)
	b.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subs, id)
			close(ch)
		})
	}
}

// publish never blocks; a full subscriber misses the event
func (b *broker) publish(ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

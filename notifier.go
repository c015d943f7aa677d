package tmt

import (
	"sync"
	"time"
)

// defaultSubscriberBuffer is the per-subscriber event buffer size. A
// subscriber whose buffer is full misses events rather than blocking the
// publisher.
const defaultSubscriberBuffer = 16

// Notifier is a process-wide, in-memory fan-out channel for change events.
// Subscribers receive every event published after they subscribe; there is no
// replay of history and delivery is at-most-once. It is not a persistence
// mechanism and does not survive process restarts.
type Notifier struct {
	mu     sync.RWMutex
	subs   map[*Subscriber]struct{}
	buffer int
	closed bool
}

// Subscriber is one registered event consumer.
type Subscriber struct {
	ch chan Event
}

// Events returns the subscriber's event channel. It is closed on unsubscribe
// or when the notifier shuts down.
func (s *Subscriber) Events() <-chan Event {
	return s.ch
}

// NewNotifier creates a Notifier with the default per-subscriber buffer.
func NewNotifier() *Notifier {
	return NewNotifierWithBuffer(defaultSubscriberBuffer)
}

// NewNotifierWithBuffer creates a Notifier with the given per-subscriber
// buffer size.
func NewNotifierWithBuffer(buffer int) *Notifier {
	if buffer < 1 {
		buffer = 1
	}
	return &Notifier{
		subs:   make(map[*Subscriber]struct{}),
		buffer: buffer,
	}
}

// Subscribe registers a new subscriber. Returns nil after Close.
func (n *Notifier) Subscribe() *Subscriber {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return nil
	}

	s := &Subscriber{ch: make(chan Event, n.buffer)}
	n.subs[s] = struct{}{}
	return s
}

// Unsubscribe removes a subscriber and closes its channel. Safe to call with
// an already-removed subscriber.
func (n *Notifier) Unsubscribe(s *Subscriber) {
	if s == nil {
		return
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if _, ok := n.subs[s]; !ok {
		return
	}
	delete(n.subs, s)
	close(s.ch)
}

// Publish delivers ev to every current subscriber. A subscriber whose buffer
// is full is skipped; publishing never blocks. The event timestamp is stamped
// here if unset.
func (n *Notifier) Publish(ev Event) {
	if ev.TS == 0 {
		ev.TS = time.Now().Unix()
	}

	n.mu.RLock()
	defer n.mu.RUnlock()

	if n.closed {
		return
	}

	for s := range n.subs {
		select {
		case s.ch <- ev:
		default:
			// Subscriber is not keeping up; drop for this one.
		}
	}
}

// SubscriberCount returns the number of active subscribers.
func (n *Notifier) SubscriberCount() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.subs)
}

// Close shuts down the notifier and closes every subscriber channel.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return
	}
	n.closed = true

	for s := range n.subs {
		close(s.ch)
	}
	n.subs = make(map[*Subscriber]struct{})
}

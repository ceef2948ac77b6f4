package session

import (
	"sync"
	"sync/atomic"

	"github.com/nixlim/threadscope/internal/threads"
)

// DefaultBrokerBuffer is the per-subscriber channel capacity.
const DefaultBrokerBuffer = 64

// Broker fans notifications out to subscribers. Publish never blocks: a
// subscriber whose buffer is full misses the notification and the drop is
// counted. Missing one is harmless because every data notification leads to
// the same full refresh.
// All methods are safe for concurrent use.
type Broker struct {
	mu     sync.Mutex
	subs   map[int]chan threads.Notification
	next   int
	buffer int
	closed bool

	dropped atomic.Uint64
}

// NewBroker creates a Broker whose subscriber channels hold buffer entries.
func NewBroker(buffer int) *Broker {
	if buffer < 1 {
		buffer = 1
	}
	return &Broker{
		subs:   make(map[int]chan threads.Notification),
		buffer: buffer,
	}
}

// Subscribe registers a new subscriber. The returned cancel func unregisters
// it and closes the channel; calling it more than once is fine.
func (b *Broker) Subscribe() (<-chan threads.Notification, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan threads.Notification, b.buffer)
	if b.closed {
		close(ch)
		return ch, func() {}
	}

	id := b.next
	b.next++
	b.subs[id] = ch

	return ch, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if c, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(c)
		}
	}
}

// Publish delivers n to every subscriber without blocking.
func (b *Broker) Publish(n threads.Notification) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	for _, ch := range b.subs {
		select {
		case ch <- n:
		default:
			b.dropped.Add(1)
		}
	}
}

// Dropped returns how many deliveries were skipped because a subscriber was
// full.
func (b *Broker) Dropped() uint64 {
	return b.dropped.Load()
}

// Subscribers returns the number of live subscriptions.
func (b *Broker) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Close closes every subscriber channel. Later publishes are ignored.
func (b *Broker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}

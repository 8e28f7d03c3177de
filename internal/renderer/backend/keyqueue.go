package backend

import (
	"context"
	"sync"

	"github.com/dshills/vgacon/internal/input/key"
)

// KeyQueue is a KeySource fed by Post. It serves headless backends that
// have no keyboard of their own.
type KeyQueue struct {
	events chan key.Event
	done   chan struct{}
	once   sync.Once
}

// NewKeyQueue creates a queue holding up to size pending events.
func NewKeyQueue(size int) *KeyQueue {
	return &KeyQueue{
		events: make(chan key.Event, size),
		done:   make(chan struct{}),
	}
}

// Post queues ev. It reports false, dropping the event, when the queue
// is full or closed.
func (q *KeyQueue) Post(ev key.Event) bool {
	select {
	case <-q.done:
		return false
	default:
	}

	select {
	case q.events <- ev:
		return true
	default:
		return false
	}
}

// PollKey returns queued events in order. After Close it drains nothing
// more and returns ErrClosed.
func (q *KeyQueue) PollKey(ctx context.Context) (key.Event, error) {
	select {
	case <-q.done:
		return key.Event{}, ErrClosed
	default:
	}

	select {
	case ev := <-q.events:
		return ev, nil
	case <-q.done:
		return key.Event{}, ErrClosed
	case <-ctx.Done():
		return key.Event{}, ctx.Err()
	}
}

// Len returns the number of pending events.
func (q *KeyQueue) Len() int {
	return len(q.events)
}

// Close wakes every PollKey with ErrClosed.
func (q *KeyQueue) Close() {
	q.once.Do(func() { close(q.done) })
}

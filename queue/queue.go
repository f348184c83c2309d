// Package queue provides an unbounded FIFO with split producer and consumer endpoints.
//
// A Sender never blocks. A Receiver blocks until an item is available or
// the Sender has been closed and every queued item has been received.
// Both endpoints are safe for concurrent use; receivers contend on the
// queue mutex only for the duration of a dequeue.
package queue

import (
	"errors"
	"sync"
)

var (
	// ErrClosed is returned by Send after the Sender has been closed.
	ErrClosed = errors.New("queue: send on closed queue")

	// ErrDisconnected is returned by Recv once the Sender is closed and the queue is drained.
	ErrDisconnected = errors.New("queue: receive on closed and drained queue")
)

// compactAt is the minimum number of consumed slots before the backing slice is compacted.
const compactAt = 1024

type queue[T any] struct {
	mu     sync.Mutex
	ready  sync.Cond
	items  []T
	head   int
	closed bool
}

// Sender is the producing endpoint of a queue.
type Sender[T any] struct {
	q *queue[T]
}

// Receiver is the consuming endpoint of a queue.
type Receiver[T any] struct {
	q *queue[T]
}

// New creates an empty queue and returns its two endpoints.
func New[T any]() (*Sender[T], *Receiver[T]) {
	q := &queue[T]{}
	q.ready.L = &q.mu
	return &Sender[T]{q: q}, &Receiver[T]{q: q}
}

// Send appends v to the tail of the queue.
func (s *Sender[T]) Send(v T) error {
	q := s.q
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ErrClosed
	}
	q.items = append(q.items, v)
	q.mu.Unlock()
	q.ready.Signal()
	return nil
}

// Close stops accepting items and wakes every blocked receiver.
// Items already queued remain receivable. Close is idempotent.
func (s *Sender[T]) Close() {
	q := s.q
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.ready.Broadcast()
}

// Len returns the number of queued items.
func (s *Sender[T]) Len() int { return s.q.len() }

// Recv removes and returns the head of the queue, blocking while it is empty.
func (r *Receiver[T]) Recv() (T, error) {
	q := r.q
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.head == len(q.items) {
		if q.closed {
			var zero T
			return zero, ErrDisconnected
		}
		q.ready.Wait()
	}

	return q.pop(), nil
}

// Len returns the number of queued items.
func (r *Receiver[T]) Len() int { return r.q.len() }

func (q *queue[T]) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items) - q.head
}

// pop must be called with mu held and at least one item queued.
func (q *queue[T]) pop() T {
	var zero T
	v := q.items[q.head]
	q.items[q.head] = zero
	q.head++

	switch {
	case q.head == len(q.items):
		q.items = q.items[:0]
		q.head = 0
	case q.head >= compactAt && q.head*2 >= len(q.items):
		n := copy(q.items, q.items[q.head:])
		clear(q.items[n:])
		q.items = q.items[:n]
		q.head = 0
	}

	return v
}

// Package queue provides an unbounded FIFO that never blocks producers.
package queue

import (
	"context"
	"sync"
)

// Queue is safe for any number of producers and consumers. Each item is
// handed to exactly one consumer.
type Queue[T any] struct {
	mu    sync.Mutex
	items []T
	head  int
	ready chan struct{}
}

func New[T any]() *Queue[T] {
	return &Queue[T]{ready: make(chan struct{}, 1)}
}

// Push appends v and returns the backlog length after the push.
func (q *Queue[T]) Push(v T) int {
	q.mu.Lock()
	q.items = append(q.items, v)
	n := len(q.items) - q.head
	q.mu.Unlock()
	q.signal()
	return n
}

// TryPop removes the oldest item without blocking.
func (q *Queue[T]) TryPop() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	var zero T
	if q.head == len(q.items) {
		return zero, false
	}
	v := q.items[q.head]
	q.items[q.head] = zero
	q.head++
	switch {
	case q.head == len(q.items):
		q.items = q.items[:0]
		q.head = 0
	case q.head > len(q.items)/2:
		n := copy(q.items, q.items[q.head:])
		clear(q.items[n:])
		q.items = q.items[:n]
		q.head = 0
	}
	if q.head < len(q.items) {
		// Pass the wakeup on so a second waiter sees the remaining items.
		q.signal()
	}
	return v, true
}

// Pop blocks until an item is available or ctx is done.
func (q *Queue[T]) Pop(ctx context.Context) (T, error) {
	for {
		if v, ok := q.TryPop(); ok {
			return v, nil
		}
		select {
		case <-q.ready:
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		}
	}
}

// Ready returns a channel that receives a value after pushes. A receive is
// only a hint; follow it with TryPop.
func (q *Queue[T]) Ready() <-chan struct{} { return q.ready }

func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items) - q.head
}

func (q *Queue[T]) signal() {
	select {
	case q.ready <- struct{}{}:
	default:
	}
}

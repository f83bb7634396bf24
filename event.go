package globalhotkey

import (
	"context"
	"sync"
	"sync/atomic"

	"globalhotkey/internal/queue"
	"globalhotkey/log"
)

type State uint8

const (
	Pressed State = iota
	Released
)

func (s State) String() string {
	if s == Released {
		return "Released"
	}
	return "Pressed"
}

// Event reports a state change of the registration with ID.
type Event struct {
	ID    uint32
	State State
}

// highWatermark is the backlog at which a warning is logged.
const highWatermark = 4096

// EventReceiver is the consuming end of the process-wide event channel.
// Publishing never blocks and never drops; the backlog grows until the
// application drains it. Each event goes to exactly one receive call.
type EventReceiver struct {
	q    *queue.Queue[Event]
	over atomic.Bool

	mu      sync.RWMutex
	handler func(Event)
}

var (
	busOnce sync.Once
	bus     *EventReceiver
)

// Receiver returns the process-wide event receiver, creating it on first
// use. Every Manager publishes to it.
func Receiver() *EventReceiver {
	busOnce.Do(func() {
		bus = &EventReceiver{q: queue.New[Event]()}
	})
	return bus
}

// SetEventHandler delivers events to h instead of the channel. h runs on
// the goroutine calling Pump or Run. A nil h restores channel delivery.
func SetEventHandler(h func(Event)) {
	r := Receiver()
	r.mu.Lock()
	r.handler = h
	r.mu.Unlock()
}

func (r *EventReceiver) publish(ev Event) {
	r.mu.RLock()
	h := r.handler
	r.mu.RUnlock()
	if h != nil {
		h(ev)
		return
	}

	if n := r.q.Push(ev); n >= highWatermark && r.over.CompareAndSwap(false, true) {
		log.Warnf("event backlog reached %d; drain Receiver() more often", n)
	}
}

func (r *EventReceiver) popped() {
	if r.over.Load() && r.q.Len() < highWatermark/2 {
		r.over.Store(false)
	}
}

// TryRecv returns the oldest pending event without blocking.
func (r *EventReceiver) TryRecv() (Event, bool) {
	ev, ok := r.q.TryPop()
	if ok {
		r.popped()
	}
	return ev, ok
}

// Recv blocks until an event is available.
func (r *EventReceiver) Recv() Event {
	ev, _ := r.RecvContext(context.Background())
	return ev
}

// RecvContext blocks until an event is available or ctx is done.
func (r *EventReceiver) RecvContext(ctx context.Context) (Event, error) {
	ev, err := r.q.Pop(ctx)
	if err != nil {
		return Event{}, err
	}
	r.popped()
	return ev, nil
}

// Len returns the number of pending events.
func (r *EventReceiver) Len() int { return r.q.Len() }

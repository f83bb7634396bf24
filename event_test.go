package globalhotkey

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"globalhotkey/hotkey"
	"globalhotkey/log"
	"globalhotkey/platform"
)

func TestReceiver_Singleton(t *testing.T) {
	if Receiver() != Receiver() {
		t.Fatal("Receiver() returned different instances")
	}
	m, _ := newTestManager(t, platform.SignalCombo)
	if m.Receiver() != Receiver() {
		t.Fatal("Manager.Receiver() is not the process-wide receiver")
	}
}

func TestReceiver_FIFO(t *testing.T) {
	drainBus(t)
	r := Receiver()
	for i := range 10 {
		r.publish(Event{ID: uint32(i), State: State(i % 2)})
	}
	if r.Len() != 10 {
		t.Fatalf("Len() = %d, want 10", r.Len())
	}
	for i := range 10 {
		ev := r.Recv()
		if ev.ID != uint32(i) {
			t.Fatalf("event %d has id %d", i, ev.ID)
		}
	}
}

func TestReceiver_RecvContextCancel(t *testing.T) {
	drainBus(t)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := Receiver().RecvContext(ctx); err == nil {
		t.Fatal("expected deadline error on empty receiver")
	}
}

func TestReceiver_ConcurrentConsumers(t *testing.T) {
	drainBus(t)
	r := Receiver()
	const n = 1000

	var mu sync.Mutex
	seen := make(map[uint32]int)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var wg sync.WaitGroup
	var got sync.WaitGroup
	got.Add(n)
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				ev, err := r.RecvContext(ctx)
				if err != nil {
					return
				}
				mu.Lock()
				seen[ev.ID]++
				mu.Unlock()
				got.Done()
			}
		}()
	}
	for i := range n {
		r.publish(Event{ID: uint32(i)})
	}
	got.Wait()
	cancel()
	wg.Wait()

	if len(seen) != n {
		t.Fatalf("saw %d distinct events, want %d", len(seen), n)
	}
	for id, c := range seen {
		if c != 1 {
			t.Fatalf("event %d delivered %d times", id, c)
		}
	}
}

func TestReceiver_HighWatermarkWarnsOnce(t *testing.T) {
	drainBus(t)
	var buf bytes.Buffer
	log.SetOutput(&buf, zerolog.WarnLevel)
	defer log.Close()

	r := Receiver()
	for i := range highWatermark + 10 {
		r.publish(Event{ID: uint32(i)})
	}
	if got := strings.Count(buf.String(), "event backlog"); got != 1 {
		t.Errorf("warnings = %d, want 1", got)
	}
	drainBus(t)

	for i := range highWatermark {
		r.publish(Event{ID: uint32(i)})
	}
	if got := strings.Count(buf.String(), "event backlog"); got != 2 {
		t.Errorf("warnings after second crossing = %d, want 2", got)
	}
	drainBus(t)
}

func TestSetEventHandler(t *testing.T) {
	m, fake := newTestManager(t, platform.SignalCombo)
	hk := hotkey.MustParse("Alt+F12")
	id, err := m.Register(hk)
	if err != nil {
		t.Fatal(err)
	}

	var got []Event
	SetEventHandler(func(ev Event) { got = append(got, ev) })
	defer SetEventHandler(nil)

	fake.SimPress(hk)
	fake.SimRelease(hk)
	m.Pump()

	if len(got) != 2 || got[0] != (Event{id, Pressed}) || got[1] != (Event{id, Released}) {
		t.Errorf("handler got %+v", got)
	}
	if Receiver().Len() != 0 {
		t.Error("events reached the channel while a handler was set")
	}

	SetEventHandler(nil)
	fake.SimPress(hk)
	m.Pump()
	if ev := mustRecv(t); ev != (Event{id, Pressed}) {
		t.Errorf("got %+v after clearing handler", ev)
	}
}

func TestStateString(t *testing.T) {
	if Pressed.String() != "Pressed" || Released.String() != "Released" {
		t.Errorf("got %q, %q", Pressed, Released)
	}
}

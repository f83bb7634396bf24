package platform

import (
	"context"
	"fmt"
	"sync"

	"globalhotkey/hotkey"
	"globalhotkey/internal/queue"
)

// FakeBinder is an in-memory Binder for tests. In SignalKeys mode natives
// use the folded hotkey modifiers and the hotkey.Code ordinal as key, so
// tests can inject key events with FakeKey and FakeModifierKey.
type FakeBinder struct {
	signals SignalKind

	mu          sync.Mutex
	next        Handle
	bound       map[Handle]Native
	refuse      map[Native]bool
	unsupported bool
	bindCalls   int
	unbindCalls int
	closed      bool

	raw *queue.Queue[RawEvent]
}

func NewFake(signals SignalKind) *FakeBinder {
	return &FakeBinder{
		signals: signals,
		bound:   make(map[Handle]Native),
		refuse:  make(map[Native]bool),
		raw:     queue.New[RawEvent](),
	}
}

func (f *FakeBinder) Name() string        { return "fake-" + f.signals.String() }
func (f *FakeBinder) Signals() SignalKind { return f.signals }

func (f *FakeBinder) Probe() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.unsupported {
		return ErrUnsupported
	}
	return nil
}

func (f *FakeBinder) Resolve(hk hotkey.HotKey) (Native, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.unsupported {
		return Native{}, ErrUnsupported
	}
	return Native{Mods: uint32(hk.Modifiers().Native()), Key: FakeKey(hk.Code())}, nil
}

func (f *FakeBinder) Bind(natives []Native) ([]Handle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bindCalls++
	for _, n := range natives {
		if f.refuse[n] {
			return nil, fmt.Errorf("%w: combination claimed by another application", ErrRegistrationFailed)
		}
	}
	handles := make([]Handle, len(natives))
	for i, n := range natives {
		f.next++
		f.bound[f.next] = n
		handles[i] = f.next
	}
	return handles, nil
}

func (f *FakeBinder) Unbind(handles []Handle) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unbindCalls++
	for _, h := range handles {
		if _, ok := f.bound[h]; !ok {
			return fmt.Errorf("unknown handle %d", h)
		}
		delete(f.bound, h)
	}
	return nil
}

func (f *FakeBinder) Drain(buf []RawEvent) []RawEvent {
	for {
		ev, ok := f.raw.TryPop()
		if !ok {
			return buf
		}
		buf = append(buf, ev)
	}
}

func (f *FakeBinder) Wait(ctx context.Context) error {
	if f.raw.Len() > 0 {
		return nil
	}
	select {
	case <-f.raw.Ready():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *FakeBinder) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// Refuse makes Bind fail for hk, as if another application owned it.
func (f *FakeBinder) Refuse(hk hotkey.HotKey) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refuse[Native{Mods: uint32(hk.Modifiers().Native()), Key: FakeKey(hk.Code())}] = true
}

// SetUnsupported makes Resolve fail with ErrUnsupported.
func (f *FakeBinder) SetUnsupported(v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unsupported = v
}

// Handle returns the live handle bound for hk.
func (f *FakeBinder) Handle(hk hotkey.HotKey) (Handle, bool) {
	want := Native{Mods: uint32(hk.Modifiers().Native()), Key: FakeKey(hk.Code())}
	f.mu.Lock()
	defer f.mu.Unlock()
	for h, n := range f.bound {
		if n == want {
			return h, true
		}
	}
	return 0, false
}

func (f *FakeBinder) Bound() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.bound)
}

func (f *FakeBinder) BindCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bindCalls
}

func (f *FakeBinder) UnbindCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.unbindCalls
}

func (f *FakeBinder) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

// Inject queues raw events as if the OS had delivered them.
func (f *FakeBinder) Inject(events ...RawEvent) {
	for _, ev := range events {
		f.raw.Push(ev)
	}
}

// SimPress and SimRelease inject combo events for hk (SignalCombo mode).
func (f *FakeBinder) SimPress(hk hotkey.HotKey) {
	if h, ok := f.Handle(hk); ok {
		f.Inject(RawEvent{Kind: RawComboDown, Handle: h})
	}
}

func (f *FakeBinder) SimRelease(hk hotkey.HotKey) {
	if h, ok := f.Handle(hk); ok {
		f.Inject(RawEvent{Kind: RawComboUp, Handle: h})
	}
}

// FakeKey is the native key the fake uses for code.
func FakeKey(code hotkey.Code) uint32 { return uint32(code) }

// FakeModifierKey is the native key the fake uses for a modifier; right is
// the right-hand key of the pair.
func FakeModifierKey(mod hotkey.Modifiers, right bool) uint32 {
	k := 0x1000 + uint32(mod)
	if right {
		k += 0x100
	}
	return k
}

// KeyDown, KeyUp and ModDown, ModUp build SignalKeys raw events.
func KeyDown(code hotkey.Code) RawEvent {
	return RawEvent{Kind: RawKeyDown, Key: FakeKey(code)}
}

func KeyUp(code hotkey.Code) RawEvent {
	return RawEvent{Kind: RawKeyUp, Key: FakeKey(code)}
}

func KeyRepeat(code hotkey.Code) RawEvent {
	return RawEvent{Kind: RawKeyRepeat, Key: FakeKey(code)}
}

func ModDown(mod hotkey.Modifiers) RawEvent {
	return RawEvent{Kind: RawKeyDown, Key: FakeModifierKey(mod, false), Modifier: mod}
}

func ModUp(mod hotkey.Modifiers) RawEvent {
	return RawEvent{Kind: RawKeyUp, Key: FakeModifierKey(mod, false), Modifier: mod}
}

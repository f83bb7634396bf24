//go:build darwin || windows

package platform

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	xhk "golang.design/x/hotkey"

	"globalhotkey/hotkey"
	"globalhotkey/internal/queue"
	"globalhotkey/log"
)

type binding struct {
	native Native
	hk     *xhk.Hotkey
	stop   chan struct{}
	done   chan struct{}
}

// nativeBinder registers each combination with the OS through
// golang.design/x/hotkey and forwards its keydown/keyup channels into one
// queue. On macOS the hotkey package needs the main thread loop, see
// globalhotkey.RunOnMainThread.
type nativeBinder struct {
	mu     sync.Mutex
	next   Handle
	bound  map[Handle]*binding
	closed bool

	raw *queue.Queue[RawEvent]
}

func NewBinder() Binder {
	return &nativeBinder{
		bound: make(map[Handle]*binding),
		raw:   queue.New[RawEvent](),
	}
}

func (b *nativeBinder) Name() string        { return "x/hotkey" }
func (b *nativeBinder) Signals() SignalKind { return SignalCombo }

func (b *nativeBinder) Resolve(hk hotkey.HotKey) (Native, error) {
	key, ok := nativeKeys[hk.Code()]
	if !ok {
		return Native{}, fmt.Errorf("%w: %v has no %s key code", ErrRegistrationFailed, hk.Code(), runtime.GOOS)
	}
	return Native{Mods: uint32(hk.Modifiers().Native()), Key: key}, nil
}

func xModifiers(mods uint32) []xhk.Modifier {
	var out []xhk.Modifier
	for _, m := range nativeModifiers {
		if hotkey.Modifiers(mods)&m.mod != 0 {
			out = append(out, m.x)
		}
	}
	return out
}

func (b *nativeBinder) Bind(natives []Native) ([]Handle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, fmt.Errorf("%w: binder closed", ErrRegistrationFailed)
	}

	bindings := make([]*binding, 0, len(natives))
	for _, n := range natives {
		hk := xhk.New(xModifiers(n.Mods), xhk.Key(n.Key))
		if err := hk.Register(); err != nil {
			for _, prev := range bindings {
				if uerr := prev.hk.Unregister(); uerr != nil {
					log.Warnf("x/hotkey: rollback unregister %v: %v", prev.hk, uerr)
				}
			}
			return nil, fmt.Errorf("%w: %v: %w", ErrRegistrationFailed, hk, err)
		}
		bindings = append(bindings, &binding{native: n, hk: hk})
	}

	handles := make([]Handle, len(bindings))
	for i, bd := range bindings {
		b.next++
		handles[i] = b.next
		bd.stop = make(chan struct{})
		bd.done = make(chan struct{})
		b.bound[b.next] = bd
		go b.forward(b.next, bd)
	}
	return handles, nil
}

// forward copies one registration's notifications into the raw queue until
// stopped or the hotkey closes its channels.
func (b *nativeBinder) forward(h Handle, bd *binding) {
	defer close(bd.done)
	for {
		select {
		case <-bd.stop:
			return
		case _, ok := <-bd.hk.Keydown():
			if !ok {
				return
			}
			b.raw.Push(RawEvent{Kind: RawComboDown, Handle: h})
		case _, ok := <-bd.hk.Keyup():
			if !ok {
				return
			}
			b.raw.Push(RawEvent{Kind: RawComboUp, Handle: h})
		}
	}
}

func (b *nativeBinder) Unbind(handles []Handle) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	var errs []error
	for _, h := range handles {
		bd, ok := b.bound[h]
		if !ok {
			errs = append(errs, fmt.Errorf("x/hotkey: unknown handle %d", h))
			continue
		}
		delete(b.bound, h)
		// Keep forwarding while unregistering: the hotkey goroutine may
		// still be sending.
		if err := bd.hk.Unregister(); err != nil {
			errs = append(errs, fmt.Errorf("unregister %v: %w", bd.hk, err))
		}
		close(bd.stop)
		<-bd.done
	}
	return errors.Join(errs...)
}

func (b *nativeBinder) Drain(out []RawEvent) []RawEvent {
	for {
		ev, ok := b.raw.TryPop()
		if !ok {
			return out
		}
		out = append(out, ev)
	}
}

func (b *nativeBinder) Wait(ctx context.Context) error {
	if b.raw.Len() > 0 {
		return nil
	}
	select {
	case <-b.raw.Ready():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *nativeBinder) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	handles := make([]Handle, 0, len(b.bound))
	for h := range b.bound {
		handles = append(handles, h)
	}
	b.mu.Unlock()
	return b.Unbind(handles)
}

func Diagnose() (string, error) {
	return fmt.Sprintf("x/hotkey backend on %s, %d key codes mapped", runtime.GOOS, len(nativeKeys)), nil
}

// Package globalhotkey registers system-wide keyboard shortcuts and reports
// their presses and releases, whether or not the application has focus.
//
// A Manager binds hotkeys through the platform backend; the host loop calls
// Manager.Pump (or blocks in Manager.Run) and the resulting events arrive on
// the process-wide Receiver:
//
//	m, _ := globalhotkey.NewManager()
//	id, _ := m.Register(hotkey.MustParse("CmdOrCtrl+Shift+P"))
//	go m.Run(ctx)
//	for {
//		ev := globalhotkey.Receiver().Recv()
//		if ev.ID == id && ev.State == globalhotkey.Pressed {
//			openPalette()
//		}
//	}
//
// On macOS the main goroutine must be handed to RunOnMainThread.
package globalhotkey

import (
	"context"
	"errors"
	"sync"

	"globalhotkey/hotkey"
	"globalhotkey/log"
	"globalhotkey/platform"
)

var (
	ErrAlreadyRegistered  = platform.ErrAlreadyRegistered
	ErrNotFound           = platform.ErrNotFound
	ErrRegistrationFailed = platform.ErrRegistrationFailed
	ErrUnsupported        = platform.ErrUnsupported
)

type options struct {
	binder platform.Binder
}

type Option func(*options)

// WithBinder replaces the platform backend, mainly for tests
// (platform.NewFake).
func WithBinder(b platform.Binder) Option {
	return func(o *options) { o.binder = b }
}

// Manager owns a set of registrations. All methods are safe for concurrent
// use.
type Manager struct {
	reg *platform.Registry
	bus *EventReceiver

	closeOnce sync.Once
	closeErr  error
}

func NewManager(opts ...Option) (*Manager, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.binder == nil {
		o.binder = platform.NewBinder()
	}

	m := &Manager{bus: Receiver()}
	m.reg = platform.NewRegistry(o.binder, m.publish)

	m.warnUnsupported(platform.Probe(o.binder))
	log.ManagerStart(o.binder.Name())
	return m, nil
}

// warnUnsupported reports a degraded environment once per backend. It is
// retried from Register so the warning still appears when logging starts
// after the Manager.
func (m *Manager) warnUnsupported(err error) {
	if errors.Is(err, ErrUnsupported) {
		log.WarnOnce("unsupported:"+m.Backend(), err.Error())
	}
}

func (m *Manager) publish(t platform.Transition) {
	ev := Event{ID: t.ID, State: Released}
	if t.Pressed {
		ev.State = Pressed
	}
	if hk, ok := m.reg.Lookup(t.ID); ok {
		log.Event(t.ID, hk.String(), ev.State.String())
	}
	m.bus.publish(ev)
}

// Backend names the platform binder in use.
func (m *Manager) Backend() string { return m.reg.Binder().Name() }

// Register binds hk and returns its id, hk.ID(). Registering an equal
// HotKey again returns the same id without a second binding.
// ErrAlreadyRegistered means a different HotKey already holds the same OS
// combination (Meta and Super are one OS modifier).
func (m *Manager) Register(hk hotkey.HotKey) (uint32, error) {
	id, err := m.reg.Register(hk)
	m.warnUnsupported(err)
	return id, err
}

// Unregister releases id. An active registration goes away without a
// Released event. The id is forgotten even if the OS refuses to unbind;
// the returned ErrRegistrationFailed then means the native binding may
// have leaked.
func (m *Manager) Unregister(id uint32) error {
	return m.reg.Unregister(id)
}

// RegisterAll registers hks in one pass and returns their ids in input
// order. On error none of them are registered.
func (m *Manager) RegisterAll(hks []hotkey.HotKey) ([]uint32, error) {
	ids, err := m.reg.RegisterAll(hks)
	m.warnUnsupported(err)
	return ids, err
}

// UnregisterAll releases ids in one pass. If any id is unknown nothing is
// released and the error wraps ErrNotFound.
func (m *Manager) UnregisterAll(ids []uint32) error {
	return m.reg.UnregisterAll(ids)
}

func (m *Manager) Lookup(id uint32) (hotkey.HotKey, bool) { return m.reg.Lookup(id) }

// IDs returns the registered ids in ascending order.
func (m *Manager) IDs() []uint32 { return m.reg.IDs() }

// Receiver returns the process-wide event receiver.
func (m *Manager) Receiver() *EventReceiver { return m.bus }

// Pump dispatches every pending native notification on the calling
// goroutine and returns the number of events published. It never blocks.
func (m *Manager) Pump() int { return m.reg.Pump() }

// Run pumps until ctx is done and returns ctx.Err(), or a backend error.
func (m *Manager) Run(ctx context.Context) error {
	err := m.reg.Run(ctx)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if err != nil {
		log.Errorf("hotkey loop stopped: %v", err)
	}
	return err
}

// Close unregisters everything and releases the backend. Later calls
// return the first result.
func (m *Manager) Close() error {
	m.closeOnce.Do(func() {
		remaining := m.reg.Len()
		m.closeErr = m.reg.Close()
		log.ManagerStop(remaining)
	})
	return m.closeErr
}

// Diagnose reports whether this machine can deliver global hotkeys, with a
// one-line status.
func Diagnose() (string, error) { return platform.Diagnose() }

// Package platform binds hotkeys to the operating system and turns raw
// native notifications into press/release transitions.
//
// A Binder is the native capability of one platform, selected at build
// time:
//
//   - linux: evdev reader (binder_linux.go). Delivers physical key
//     down/up for every key, SignalKeys.
//   - darwin, windows: golang.design/x/hotkey (binder_native.go). Delivers
//     combo-level down/up per registration, SignalCombo.
//   - anything else: every registration fails with ErrUnsupported.
//
// The Registry owns the id table and runs normalization; binders only
// enqueue raw events.
package platform

import (
	"context"
	"errors"
	"time"

	"globalhotkey/hotkey"
)

var (
	ErrAlreadyRegistered  = errors.New("hotkey already registered")
	ErrNotFound           = errors.New("hotkey not registered")
	ErrRegistrationFailed = errors.New("hotkey registration failed")
	ErrUnsupported        = errors.New("global hotkeys unsupported in this environment")
)

// SignalKind names what a binder's raw events describe.
type SignalKind int

const (
	// SignalCombo: one down and one up per registered combination.
	SignalCombo SignalKind = iota
	// SignalKeys: down/up/repeat of individual physical keys, modifiers
	// included.
	SignalKeys
)

func (s SignalKind) String() string {
	if s == SignalKeys {
		return "keys"
	}
	return "combo"
}

// Native is a combination translated into the backend's own modifier mask
// and key code.
type Native struct {
	Mods uint32
	Key  uint32
}

// Handle identifies one native binding. Binders never reuse handles.
type Handle uint64

type RawKind uint8

const (
	RawComboDown RawKind = iota
	RawComboUp
	RawKeyDown
	RawKeyUp
	RawKeyRepeat
	// RawReset: the binder lost track of key state. Every held modifier is
	// forgotten and every active registration released; key downs that
	// follow describe what is still physically held.
	RawReset
)

// RawEvent is one native notification. Combo events carry Handle; key
// events carry the native Key and, for modifier keys, the modifier it
// drives.
type RawEvent struct {
	Kind     RawKind
	Handle   Handle
	Key      uint32
	Modifier hotkey.Modifiers
}

// Binder is the native hotkey capability.
type Binder interface {
	Name() string
	Signals() SignalKind

	// Resolve translates hk. It fails with ErrRegistrationFailed when the
	// key has no native code and with ErrUnsupported when the backend is
	// unavailable.
	Resolve(hk hotkey.HotKey) (Native, error)

	// Bind claims every native in one pass and returns their handles in
	// order. It is all-or-nothing: on error nothing stays bound.
	Bind(natives []Native) ([]Handle, error)

	// Unbind releases the handles. It attempts every handle and joins the
	// errors.
	Unbind(handles []Handle) error

	// Drain appends every pending raw event to buf without blocking.
	Drain(buf []RawEvent) []RawEvent

	// Wait blocks until raw events may be pending or ctx is done.
	Wait(ctx context.Context) error

	Close() error
}

// Prober is implemented by binders that can tell up front that the
// environment cannot deliver hotkeys. Probe returns an error wrapping
// ErrUnsupported in that case.
type Prober interface {
	Probe() error
}

// Probe reports whether b is usable. Binders without a Prober are assumed
// to be.
func Probe(b Binder) error {
	if p, ok := b.(Prober); ok {
		return p.Probe()
	}
	return nil
}

// pollInterval bounds how long polling binders block in Wait.
const pollInterval = 250 * time.Millisecond

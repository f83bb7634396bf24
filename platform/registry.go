package platform

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"globalhotkey/hotkey"
	"globalhotkey/log"
)

type record struct {
	id     uint32
	hk     hotkey.HotKey
	native Native
	handle Handle
	active bool
}

// Registry maps hotkey ids to native bindings and normalizes raw events
// into Transitions. Registering an equal HotKey twice is idempotent: the
// existing id comes back and no second binding is made.
//
// All methods are safe for concurrent use. One mutex guards the table and
// the normalizer, so an in-flight raw event for an id that is being
// unregistered is either delivered before the removal or dropped.
type Registry struct {
	binder Binder
	emit   func(Transition)

	mu       sync.Mutex
	records  map[uint32]*record
	byHandle map[Handle]uint32
	byNative map[Native]uint32
	byKey    map[uint32][]uint32
	norm     normalizer
	raw      []RawEvent
	closed   bool
}

// NewRegistry returns a registry over b. emit receives every transition,
// outside the registry lock, on the goroutine that called Pump, Run or
// Dispatch.
func NewRegistry(b Binder, emit func(Transition)) *Registry {
	if emit == nil {
		emit = func(Transition) {}
	}
	return &Registry{
		binder:   b,
		emit:     emit,
		records:  make(map[uint32]*record),
		byHandle: make(map[Handle]uint32),
		byNative: make(map[Native]uint32),
		byKey:    make(map[uint32][]uint32),
		norm:     newNormalizer(),
	}
}

func (r *Registry) Binder() Binder { return r.binder }

// Register binds hk and returns its id.
func (r *Registry) Register(hk hotkey.HotKey) (uint32, error) {
	ids, err := r.RegisterAll([]hotkey.HotKey{hk})
	if err != nil {
		return 0, err
	}
	return ids[0], nil
}

// RegisterAll binds every hotkey in one grouped pass and returns their ids
// in input order. It is all-or-nothing: on error the table is unchanged.
// HotKeys already registered, or repeated within hks, are bound once.
func (r *Registry) RegisterAll(hks []hotkey.HotKey) ([]uint32, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, fmt.Errorf("%w: registry closed", ErrRegistrationFailed)
	}

	ids := make([]uint32, len(hks))
	var pending []*record
	batch := make(map[uint32]bool)
	batchNative := make(map[Native]uint32)

	for i, hk := range hks {
		id := hk.ID()
		ids[i] = id
		if _, ok := r.records[id]; ok || batch[id] {
			continue
		}
		if !hk.Code().Valid() {
			return nil, fmt.Errorf("%w: %v has no key", ErrRegistrationFailed, hk)
		}
		native, err := r.binder.Resolve(hk)
		if err != nil {
			return nil, fmt.Errorf("register %v: %w", hk, err)
		}
		if other, ok := r.byNative[native]; ok {
			return nil, fmt.Errorf("%w: %v binds the same keys as %v", ErrAlreadyRegistered, hk, r.records[other].hk)
		}
		if other, ok := batchNative[native]; ok {
			return nil, fmt.Errorf("%w: %v binds the same keys as %v", ErrAlreadyRegistered, hk, hotkeyOf(pending, other))
		}
		batch[id] = true
		batchNative[native] = id
		pending = append(pending, &record{id: id, hk: hk, native: native})
	}
	if len(pending) == 0 {
		return ids, nil
	}

	// Group by key code so backends that grab per key make one pass per key.
	slices.SortStableFunc(pending, func(a, b *record) int {
		switch {
		case a.native.Key < b.native.Key:
			return -1
		case a.native.Key > b.native.Key:
			return 1
		}
		return 0
	})
	natives := make([]Native, len(pending))
	for i, rec := range pending {
		natives[i] = rec.native
	}

	handles, err := r.binder.Bind(natives)
	if err != nil {
		return nil, bindError(err)
	}
	if len(handles) != len(pending) {
		// A binder that breaks its contract still must not leak bindings.
		_ = r.binder.Unbind(handles)
		return nil, fmt.Errorf("%w: backend returned %d handles for %d hotkeys", ErrRegistrationFailed, len(handles), len(pending))
	}

	for i, rec := range pending {
		rec.handle = handles[i]
		r.records[rec.id] = rec
		r.byHandle[rec.handle] = rec.id
		r.byNative[rec.native] = rec.id
		r.byKey[rec.native.Key] = append(r.byKey[rec.native.Key], rec.id)
		log.Registered(rec.id, rec.hk.String(), uint64(rec.handle))
	}
	return ids, nil
}

// Unregister releases the binding for id. The id is removed even when the
// backend fails to unbind; the ErrRegistrationFailed error then reports a
// native binding that may have leaked, and a retry returns ErrNotFound.
func (r *Registry) Unregister(id uint32) error {
	return r.UnregisterAll([]uint32{id})
}

// UnregisterAll releases every id in one pass. If any id is unknown nothing
// is removed. Otherwise every id is removed, whatever Unbind returns.
func (r *Registry) UnregisterAll(ids []uint32) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[uint32]bool, len(ids))
	for _, id := range ids {
		if _, ok := r.records[id]; !ok {
			return fmt.Errorf("%w: id %#08x", ErrNotFound, id)
		}
		seen[id] = true
	}
	if len(seen) == 0 {
		return nil
	}

	unique := make([]uint32, 0, len(seen))
	for id := range seen {
		unique = append(unique, id)
	}
	slices.Sort(unique)
	return r.unbindLocked(unique)
}

func (r *Registry) unbindLocked(ids []uint32) error {
	handles := make([]Handle, 0, len(ids))
	for _, id := range ids {
		rec := r.records[id]
		handles = append(handles, rec.handle)
		r.removeLocked(rec)
		log.Unregistered(id, rec.hk.String())
	}
	if err := r.binder.Unbind(handles); err != nil {
		return fmt.Errorf("%w: unbind: %w", ErrRegistrationFailed, err)
	}
	return nil
}

func (r *Registry) removeLocked(rec *record) {
	delete(r.records, rec.id)
	delete(r.byHandle, rec.handle)
	delete(r.byNative, rec.native)
	ids := slices.DeleteFunc(r.byKey[rec.native.Key], func(id uint32) bool { return id == rec.id })
	if len(ids) == 0 {
		delete(r.byKey, rec.native.Key)
	} else {
		r.byKey[rec.native.Key] = ids
	}
}

// Dispatch normalizes raw events and emits the resulting transitions. It
// returns the number emitted. Events for unknown handles or keys are
// dropped.
func (r *Registry) Dispatch(raws []RawEvent) int {
	r.mu.Lock()
	var out []Transition
	keys := r.binder.Signals() == SignalKeys
	for _, ev := range raws {
		if ev.Kind == RawReset {
			out = r.resetLocked(out)
			continue
		}
		if keys {
			out = r.keys(ev, out)
		} else {
			out = r.combo(ev, out)
		}
	}
	r.mu.Unlock()

	for _, t := range out {
		r.emit(t)
	}
	return len(out)
}

// Pump drains the binder and dispatches whatever it returned. It never
// blocks.
func (r *Registry) Pump() int {
	r.mu.Lock()
	r.raw = r.binder.Drain(r.raw[:0])
	raws := slices.Clone(r.raw)
	r.mu.Unlock()

	if len(raws) == 0 {
		return 0
	}
	return r.Dispatch(raws)
}

// Run pumps on the calling goroutine until ctx is done.
func (r *Registry) Run(ctx context.Context) error {
	for {
		r.Pump()
		if err := r.binder.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
	}
}

func (r *Registry) Lookup(id uint32) (hotkey.HotKey, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok {
		return hotkey.HotKey{}, false
	}
	return rec.hk, true
}

// IDs returns the registered ids in ascending order.
func (r *Registry) IDs() []uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]uint32, 0, len(r.records))
	for id := range r.records {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

// Close unbinds every remaining registration and closes the binder. It is
// safe to call more than once.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true

	ids := make([]uint32, 0, len(r.records))
	for id := range r.records {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	var errs []error
	if len(ids) > 0 {
		errs = append(errs, r.unbindLocked(ids))
	}
	r.norm.reset()
	errs = append(errs, r.binder.Close())
	return errors.Join(errs...)
}

func bindError(err error) error {
	if errors.Is(err, ErrUnsupported) || errors.Is(err, ErrAlreadyRegistered) || errors.Is(err, ErrRegistrationFailed) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrRegistrationFailed, err)
}

func hotkeyOf(recs []*record, id uint32) hotkey.HotKey {
	for _, rec := range recs {
		if rec.id == id {
			return rec.hk
		}
	}
	return hotkey.HotKey{}
}

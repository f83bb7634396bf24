package platform

import (
	"slices"

	"globalhotkey/hotkey"
)

// Transition is a normalized state change of one registration.
type Transition struct {
	ID      uint32
	Pressed bool
}

// normalizer holds the press state shared by both signal kinds. It is
// guarded by the registry mutex.
type normalizer struct {
	// native key code -> modifier it drives, for modifier keys currently
	// held (SignalKeys only)
	heldMods map[uint32]hotkey.Modifiers
}

func newNormalizer() normalizer {
	return normalizer{heldMods: make(map[uint32]hotkey.Modifiers)}
}

func (n *normalizer) held() hotkey.Modifiers {
	var m hotkey.Modifiers
	for _, mod := range n.heldMods {
		m |= mod
	}
	return m
}

func (n *normalizer) reset() {
	clear(n.heldMods)
}

// combo handles SignalCombo events: down on an idle record presses it, up
// on an active record releases it. Repeated downs are swallowed.
func (r *Registry) combo(ev RawEvent, out []Transition) []Transition {
	id, ok := r.byHandle[ev.Handle]
	if !ok {
		return out
	}
	rec := r.records[id]
	switch ev.Kind {
	case RawComboDown:
		if !rec.active {
			rec.active = true
			out = append(out, Transition{ID: id, Pressed: true})
		}
	case RawComboUp:
		if rec.active {
			rec.active = false
			out = append(out, Transition{ID: id, Pressed: false})
		}
	}
	return out
}

// keys handles SignalKeys events. A record goes Idle -> Active when its
// main key goes down while exactly its modifiers are held, and Active ->
// Idle when the main key or any required modifier goes up, whichever comes
// first.
func (r *Registry) keys(ev RawEvent, out []Transition) []Transition {
	n := &r.norm
	if ev.Modifier != 0 {
		switch ev.Kind {
		case RawKeyDown:
			n.heldMods[ev.Key] = ev.Modifier
		case RawKeyUp:
			delete(n.heldMods, ev.Key)
			held := n.held()
			for _, id := range r.activeIDs() {
				rec := r.records[id]
				required := hotkey.Modifiers(rec.native.Mods)
				if required&ev.Modifier != 0 && held&ev.Modifier == 0 {
					rec.active = false
					out = append(out, Transition{ID: id, Pressed: false})
				}
			}
		}
		return out
	}

	switch ev.Kind {
	case RawKeyDown:
		held := n.held()
		for _, id := range r.byKey[ev.Key] {
			rec := r.records[id]
			if !rec.active && hotkey.Modifiers(rec.native.Mods) == held {
				rec.active = true
				out = append(out, Transition{ID: id, Pressed: true})
			}
		}
	case RawKeyUp:
		for _, id := range r.byKey[ev.Key] {
			rec := r.records[id]
			if rec.active {
				rec.active = false
				out = append(out, Transition{ID: id, Pressed: false})
			}
		}
	}
	// RawKeyRepeat never changes state.
	return out
}

// resetLocked drops the held modifiers and releases every active record.
func (r *Registry) resetLocked(out []Transition) []Transition {
	r.norm.reset()
	for _, id := range r.activeIDs() {
		r.records[id].active = false
		out = append(out, Transition{ID: id, Pressed: false})
	}
	return out
}

func (r *Registry) activeIDs() []uint32 {
	var ids []uint32
	for id, rec := range r.records {
		if rec.active {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

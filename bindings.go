package globalhotkey

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"globalhotkey/hotkey"
	"globalhotkey/log"
)

// Bindings keeps a named keymap registered on a Manager. Several names may
// share one HotKey; it is bound once.
type Bindings struct {
	m *Manager

	mu     sync.Mutex
	byName map[string]hotkey.HotKey
	// HotKeys this Bindings registered itself
	owned map[hotkey.HotKey]bool
}

// NewBindings returns an empty keymap on m. A HotKey that was already
// registered on m when a keymap first used it stays registered when the
// keymap drops it; the caller that registered it still owns it. A HotKey
// the keymap registered is unregistered when dropped, even if the caller
// has since registered it too.
func NewBindings(m *Manager) *Bindings {
	return &Bindings{
		m:      m,
		byName: make(map[string]hotkey.HotKey),
		owned:  make(map[hotkey.HotKey]bool),
	}
}

// Apply makes the registered set match keymap. HotKeys no longer used are
// unregistered first, then new ones are registered in one batch. If that
// fails the previous keymap is restored and the error returned.
func (b *Bindings) Apply(keymap map[string]hotkey.HotKey) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	current := hotkeySet(b.byName)
	wanted := hotkeySet(keymap)

	// Only owned HotKeys are unregistered; ones registered elsewhere on
	// the Manager are adopted without ownership.
	var removed []hotkey.HotKey
	for hk := range current {
		if !wanted[hk] && b.owned[hk] {
			removed = append(removed, hk)
		}
	}
	var added []hotkey.HotKey
	for hk := range wanted {
		if current[hk] {
			continue
		}
		if _, ok := b.m.Lookup(hk.ID()); ok {
			continue
		}
		added = append(added, hk)
	}
	sortHotKeys(removed)
	sortHotKeys(added)

	if err := b.m.UnregisterAll(ids(removed)); err != nil {
		return fmt.Errorf("apply keymap: %w", err)
	}
	if _, err := b.m.RegisterAll(added); err != nil {
		if _, rerr := b.m.RegisterAll(removed); rerr != nil {
			log.Errorf("restoring keymap: %v", rerr)
			err = errors.Join(err, rerr)
			// The old set is partly gone; forget it.
			for name, hk := range b.byName {
				if slices.Contains(removed, hk) {
					delete(b.byName, name)
				}
			}
			for _, hk := range removed {
				delete(b.owned, hk)
			}
		}
		return fmt.Errorf("apply keymap: %w", err)
	}

	for _, hk := range removed {
		delete(b.owned, hk)
	}
	for _, hk := range added {
		b.owned[hk] = true
	}
	clear(b.byName)
	for name, hk := range keymap {
		b.byName[name] = hk
	}
	log.Info(fmt.Sprintf("keymap applied: %d bindings, +%d -%d hotkeys", len(keymap), len(added), len(removed)))
	return nil
}

// Names returns the binding names using id, sorted.
func (b *Bindings) Names(id uint32) []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	var names []string
	for name, hk := range b.byName {
		if hk.ID() == id {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// ID returns the id bound to name.
func (b *Bindings) ID(name string) (uint32, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	hk, ok := b.byName[name]
	if !ok {
		return 0, false
	}
	return hk.ID(), true
}

// Clear unregisters every binding.
func (b *Bindings) Clear() error {
	return b.Apply(nil)
}

func hotkeySet(m map[string]hotkey.HotKey) map[hotkey.HotKey]bool {
	set := make(map[hotkey.HotKey]bool, len(m))
	for _, hk := range m {
		set[hk] = true
	}
	return set
}

func sortHotKeys(hks []hotkey.HotKey) {
	slices.SortFunc(hks, func(a, b hotkey.HotKey) int {
		switch ia, ib := a.ID(), b.ID(); {
		case ia < ib:
			return -1
		case ia > ib:
			return 1
		}
		return 0
	})
}

func ids(hks []hotkey.HotKey) []uint32 {
	out := make([]uint32, len(hks))
	for i, hk := range hks {
		out[i] = hk.ID()
	}
	return out
}

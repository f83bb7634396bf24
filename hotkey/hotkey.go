// Package hotkey defines the canonical keyboard shortcut value: a set of
// modifiers plus one physical key.
//
// HotKeys are built directly with New or parsed from accelerator strings
// such as "CmdOrCtrl+Shift+P". All modifiers come before the key:
// "Shift+Alt+KeyQ" is legal, "Shift+KeyQ+Alt" is not.
package hotkey

import (
	"fmt"
	"strings"
)

// Modifiers is a set of modifier keys.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModControl
	ModAlt
	ModMeta
	ModSuper

	modMask = ModShift | ModControl | ModAlt | ModMeta | ModSuper
)

// canonical formatting order
var modifierOrder = []struct {
	mod  Modifiers
	name string
}{
	{ModControl, "Control"},
	{ModAlt, "Alt"},
	{ModShift, "Shift"},
	{ModMeta, "Meta"},
	{ModSuper, "Super"},
}

// Has reports whether every modifier in o is in m.
func (m Modifiers) Has(o Modifiers) bool { return m&o == o }

// Native folds Super into Meta. Every backend drives the same OS modifier
// (Win, Cmd, Super) for both.
func (m Modifiers) Native() Modifiers {
	if m&ModSuper != 0 {
		m = m&^ModSuper | ModMeta
	}
	return m & modMask
}

func (m Modifiers) String() string {
	var parts []string
	for _, o := range modifierOrder {
		if m&o.mod != 0 {
			parts = append(parts, o.name)
		}
	}
	return strings.Join(parts, "+")
}

// HotKey is a keyboard shortcut. It is comparable; two HotKeys are equal
// when their modifiers and code are equal.
type HotKey struct {
	mods Modifiers
	code Code
}

// New builds a HotKey. Bits outside the known modifiers are dropped.
func New(mods Modifiers, code Code) HotKey {
	return HotKey{mods: mods & modMask, code: code}
}

func (h HotKey) Modifiers() Modifiers { return h.mods }
func (h HotKey) Code() Code           { return h.code }

// Matches reports whether the modifier state and code trigger h. Modifier
// bits outside the known set are ignored.
func (h HotKey) Matches(mods Modifiers, code Code) bool {
	return h.mods == mods&modMask && h.code == code
}

// String formats h as an accelerator in canonical order, e.g.
// "Control+Shift+KeyP". Parse(h.String()) == h.
func (h HotKey) String() string {
	if h.mods == 0 {
		return h.code.String()
	}
	return h.mods.String() + "+" + h.code.String()
}

// MarshalText fails for a HotKey without a valid key, since Parse would
// reject the result.
func (h HotKey) MarshalText() ([]byte, error) {
	if !h.code.Valid() {
		return nil, fmt.Errorf("marshal hotkey: %w", ErrUnrecognizedKeyCode)
	}
	return []byte(h.String()), nil
}

func (h *HotKey) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

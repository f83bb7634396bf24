package globalhotkey

import (
	"errors"
	"slices"
	"testing"

	"globalhotkey/hotkey"
	"globalhotkey/platform"
)

func TestBindings_Apply(t *testing.T) {
	m, fake := newTestManager(t, platform.SignalCombo)
	b := NewBindings(m)

	palette := hotkey.MustParse("Control+Shift+KeyP")
	shot := hotkey.MustParse("Control+Alt+Digit4")
	if err := b.Apply(map[string]hotkey.HotKey{
		"palette":    palette,
		"screenshot": shot,
		"commands":   palette,
	}); err != nil {
		t.Fatal(err)
	}
	if fake.Bound() != 2 {
		t.Fatalf("bound = %d, want 2 (shared hotkey bound once)", fake.Bound())
	}
	if got := b.Names(palette.ID()); !slices.Equal(got, []string{"commands", "palette"}) {
		t.Errorf("Names = %v", got)
	}

	// Drop screenshot, move palette, keep commands.
	moved := hotkey.MustParse("F1")
	if err := b.Apply(map[string]hotkey.HotKey{
		"palette":  moved,
		"commands": palette,
	}); err != nil {
		t.Fatal(err)
	}
	ids := m.IDs()
	want := []uint32{palette.ID(), moved.ID()}
	slices.Sort(want)
	if !slices.Equal(ids, want) {
		t.Errorf("registered %v, want %v", ids, want)
	}
	if id, ok := b.ID("palette"); !ok || id != moved.ID() {
		t.Errorf("ID(palette) = %#08x, %v", id, ok)
	}
	if _, ok := b.ID("screenshot"); ok {
		t.Error("screenshot still bound")
	}

	if err := b.Clear(); err != nil {
		t.Fatal(err)
	}
	if len(m.IDs()) != 0 || fake.Bound() != 0 {
		t.Errorf("after Clear: ids = %v, bound = %d", m.IDs(), fake.Bound())
	}
}

func TestBindings_ApplyFailureRestores(t *testing.T) {
	m, fake := newTestManager(t, platform.SignalCombo)
	b := NewBindings(m)

	old := hotkey.MustParse("Control+KeyK")
	if err := b.Apply(map[string]hotkey.HotKey{"search": old}); err != nil {
		t.Fatal(err)
	}

	refused := hotkey.MustParse("Control+KeyJ")
	fake.Refuse(refused)
	err := b.Apply(map[string]hotkey.HotKey{"search": refused})
	if !errors.Is(err, ErrRegistrationFailed) {
		t.Fatalf("got %v, want ErrRegistrationFailed", err)
	}

	if id, ok := b.ID("search"); !ok || id != old.ID() {
		t.Errorf("ID(search) = %#08x, %v; want previous binding", id, ok)
	}
	if ids := m.IDs(); !slices.Equal(ids, []uint32{old.ID()}) {
		t.Errorf("registered %v, want previous hotkey restored", ids)
	}
}

func TestBindings_KeepsDirectRegistration(t *testing.T) {
	m, fake := newTestManager(t, platform.SignalCombo)
	b := NewBindings(m)

	direct := hotkey.MustParse("Alt+Space")
	if _, err := m.Register(direct); err != nil {
		t.Fatal(err)
	}
	if err := b.Apply(map[string]hotkey.HotKey{
		"launcher": direct,
		"notes":    hotkey.MustParse("Alt+KeyN"),
	}); err != nil {
		t.Fatal(err)
	}
	if fake.Bound() != 2 {
		t.Fatalf("bound = %d, want 2", fake.Bound())
	}

	if err := b.Clear(); err != nil {
		t.Fatal(err)
	}
	if ids := m.IDs(); !slices.Equal(ids, []uint32{direct.ID()}) {
		t.Errorf("registered %v, want only the direct registration", ids)
	}
	if _, ok := b.ID("launcher"); ok {
		t.Error("launcher still bound")
	}
}

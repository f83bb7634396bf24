package globalhotkey

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"globalhotkey/hotkey"
	"globalhotkey/log"
	"globalhotkey/platform"
)

func drainBus(t *testing.T) {
	t.Helper()
	for {
		if _, ok := Receiver().TryRecv(); !ok {
			return
		}
	}
}

func newTestManager(t *testing.T, signals platform.SignalKind) (*Manager, *platform.FakeBinder) {
	t.Helper()
	drainBus(t)
	fake := platform.NewFake(signals)
	m, err := NewManager(WithBinder(fake))
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	t.Cleanup(func() {
		m.Close()
		drainBus(t)
	})
	return m, fake
}

func mustRecv(t *testing.T) Event {
	t.Helper()
	ev, ok := Receiver().TryRecv()
	if !ok {
		t.Fatal("expected an event")
	}
	return ev
}

func TestShiftD_EndToEnd(t *testing.T) {
	m, fake := newTestManager(t, platform.SignalKeys)

	hk, err := hotkey.Parse("Shift+KeyD")
	if err != nil {
		t.Fatal(err)
	}
	id, err := m.Register(hk)
	if err != nil {
		t.Fatal(err)
	}
	if id != hk.ID() {
		t.Errorf("id = %#08x, want %#08x", id, hk.ID())
	}

	fake.Inject(platform.ModDown(hotkey.ModShift), platform.KeyDown(hotkey.KeyD))
	if n := m.Pump(); n != 1 {
		t.Fatalf("Pump() = %d, want 1", n)
	}
	if ev := mustRecv(t); ev != (Event{ID: id, State: Pressed}) {
		t.Errorf("got %+v, want Pressed", ev)
	}

	fake.Inject(platform.KeyUp(hotkey.KeyD), platform.ModUp(hotkey.ModShift))
	m.Pump()
	if ev := mustRecv(t); ev != (Event{ID: id, State: Released}) {
		t.Errorf("got %+v, want Released", ev)
	}
	if _, ok := Receiver().TryRecv(); ok {
		t.Error("unexpected extra event")
	}
}

func TestMainDownModUpMainUp(t *testing.T) {
	m, fake := newTestManager(t, platform.SignalKeys)
	id, err := m.Register(hotkey.MustParse("Shift+KeyD"))
	if err != nil {
		t.Fatal(err)
	}

	fake.Inject(platform.ModDown(hotkey.ModShift), platform.KeyDown(hotkey.KeyD))
	m.Pump()
	fake.Inject(platform.ModUp(hotkey.ModShift))
	if n := m.Pump(); n != 1 {
		t.Fatalf("modifier up published %d events, want 1", n)
	}
	fake.Inject(platform.KeyUp(hotkey.KeyD))
	if n := m.Pump(); n != 0 {
		t.Fatalf("main key up published %d events, want 0", n)
	}

	want := []Event{{id, Pressed}, {id, Released}}
	for i, w := range want {
		if ev := mustRecv(t); ev != w {
			t.Errorf("event %d = %+v, want %+v", i, ev, w)
		}
	}
}

func TestRegister_Idempotent(t *testing.T) {
	m, fake := newTestManager(t, platform.SignalCombo)
	hk := hotkey.MustParse("Control+Space")

	a, err := m.Register(hk)
	if err != nil {
		t.Fatal(err)
	}
	b, err := m.Register(hk)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("ids differ: %#08x vs %#08x", a, b)
	}
	if got := fake.Bound(); got != 1 {
		t.Errorf("bound = %d, want 1", got)
	}
}

func TestRegister_Errors(t *testing.T) {
	m, fake := newTestManager(t, platform.SignalCombo)

	if _, err := m.Register(hotkey.New(hotkey.ModMeta, hotkey.KeyA)); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Register(hotkey.New(hotkey.ModSuper, hotkey.KeyA)); !errors.Is(err, ErrAlreadyRegistered) {
		t.Errorf("Super+KeyA: got %v, want ErrAlreadyRegistered", err)
	}
	if err := m.Unregister(1234); !errors.Is(err, ErrNotFound) {
		t.Errorf("Unregister unknown: got %v, want ErrNotFound", err)
	}

	refused := hotkey.MustParse("Alt+F4")
	fake.Refuse(refused)
	if _, err := m.Register(refused); !errors.Is(err, ErrRegistrationFailed) {
		t.Errorf("refused: got %v, want ErrRegistrationFailed", err)
	}
}

func TestUnsupportedEnvironment(t *testing.T) {
	drainBus(t)
	fake := platform.NewFake(platform.SignalCombo)
	fake.SetUnsupported(true)
	m, err := NewManager(WithBinder(fake))
	if err != nil {
		t.Fatalf("NewManager should not fail in a degraded environment: %v", err)
	}
	defer m.Close()

	if _, err := m.Register(hotkey.MustParse("KeyA")); !errors.Is(err, ErrUnsupported) {
		t.Errorf("got %v, want ErrUnsupported", err)
	}
}

func TestUnsupportedWarningAfterLateLogInit(t *testing.T) {
	drainBus(t)
	log.Close()
	fake := platform.NewFake(platform.SignalCombo)
	fake.SetUnsupported(true)
	m, err := NewManager(WithBinder(fake))
	if err != nil {
		t.Fatal(err)
	}
	defer m.Close()

	var buf bytes.Buffer
	log.SetOutput(&buf, zerolog.WarnLevel)
	defer log.Close()

	for range 2 {
		if _, err := m.Register(hotkey.MustParse("KeyA")); !errors.Is(err, ErrUnsupported) {
			t.Fatalf("got %v, want ErrUnsupported", err)
		}
	}
	if got := strings.Count(buf.String(), "unsupported"); got != 1 {
		t.Errorf("degraded warning logged %d times, want 1:\n%s", got, buf.String())
	}
}

func TestRegisterAll_UnregisterAll(t *testing.T) {
	m, fake := newTestManager(t, platform.SignalCombo)
	hks := []hotkey.HotKey{
		hotkey.MustParse("F1"),
		hotkey.MustParse("Control+F1"),
		hotkey.MustParse("Shift+Alt+KeyQ"),
	}

	ids, err := m.RegisterAll(hks)
	if err != nil {
		t.Fatal(err)
	}
	for i, hk := range hks {
		if ids[i] != hk.ID() {
			t.Errorf("ids[%d] = %#08x, want %#08x", i, ids[i], hk.ID())
		}
	}
	if len(m.IDs()) != 3 || fake.BindCalls() != 1 {
		t.Fatalf("ids = %d, bind calls = %d", len(m.IDs()), fake.BindCalls())
	}

	if err := m.UnregisterAll(ids); err != nil {
		t.Fatal(err)
	}
	if len(m.IDs()) != 0 || fake.Bound() != 0 || fake.UnbindCalls() != 1 {
		t.Errorf("after UnregisterAll: ids = %d, bound = %d, unbind calls = %d",
			len(m.IDs()), fake.Bound(), fake.UnbindCalls())
	}
}

func TestUnregisterActive_NoRelease(t *testing.T) {
	m, fake := newTestManager(t, platform.SignalCombo)
	hk := hotkey.MustParse("Control+Shift+KeyP")
	id, err := m.Register(hk)
	if err != nil {
		t.Fatal(err)
	}

	fake.SimPress(hk)
	m.Pump()
	mustRecv(t)

	if err := m.Unregister(id); err != nil {
		t.Fatal(err)
	}
	m.Pump()
	if ev, ok := Receiver().TryRecv(); ok {
		t.Errorf("unexpected event after unregister: %+v", ev)
	}
}

func TestRun(t *testing.T) {
	m, fake := newTestManager(t, platform.SignalCombo)
	hk := hotkey.MustParse("Meta+Digit5")
	id, err := m.Register(hk)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()

	fake.SimPress(hk)
	fake.SimRelease(hk)

	rctx, rcancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer rcancel()
	for _, want := range []State{Pressed, Released} {
		ev, err := Receiver().RecvContext(rctx)
		if err != nil {
			t.Fatalf("waiting for %v: %v", want, err)
		}
		if ev.ID != id || ev.State != want {
			t.Errorf("got %+v, want %v", ev, want)
		}
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop")
	}
}

func TestClose_Idempotent(t *testing.T) {
	m, fake := newTestManager(t, platform.SignalCombo)
	if _, err := m.Register(hotkey.MustParse("KeyZ")); err != nil {
		t.Fatal(err)
	}
	if err := m.Close(); err != nil {
		t.Fatal(err)
	}
	if err := m.Close(); err != nil {
		t.Fatal(err)
	}
	if !fake.Closed() || fake.Bound() != 0 {
		t.Errorf("closed = %v, bound = %d", fake.Closed(), fake.Bound())
	}
}

func TestBackend(t *testing.T) {
	m, _ := newTestManager(t, platform.SignalKeys)
	if got := m.Backend(); got != "fake-keys" {
		t.Errorf("Backend() = %q", got)
	}
}

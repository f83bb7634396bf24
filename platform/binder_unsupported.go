//go:build !linux && !darwin && !windows

package platform

import (
	"context"
	"fmt"
	"runtime"

	"globalhotkey/hotkey"
)

type unsupportedBinder struct{}

func NewBinder() Binder { return unsupportedBinder{} }

func (unsupportedBinder) Name() string        { return "unsupported" }
func (unsupportedBinder) Signals() SignalKind { return SignalCombo }

func (unsupportedBinder) Probe() error {
	return fmt.Errorf("%w: no hotkey backend for %s", ErrUnsupported, runtime.GOOS)
}

func (b unsupportedBinder) Resolve(hotkey.HotKey) (Native, error) { return Native{}, b.Probe() }
func (b unsupportedBinder) Bind([]Native) ([]Handle, error)       { return nil, b.Probe() }
func (unsupportedBinder) Unbind([]Handle) error                   { return nil }
func (unsupportedBinder) Drain(buf []RawEvent) []RawEvent         { return buf }

func (unsupportedBinder) Wait(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

func (unsupportedBinder) Close() error { return nil }

func Diagnose() (string, error) {
	return "", fmt.Errorf("global hotkeys are not supported on %s", runtime.GOOS)
}

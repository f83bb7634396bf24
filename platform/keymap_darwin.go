//go:build darwin

package platform

import (
	xhk "golang.design/x/hotkey"

	"globalhotkey/hotkey"
)

var nativeModifiers = []struct {
	mod hotkey.Modifiers
	x   xhk.Modifier
}{
	{hotkey.ModControl, xhk.ModCtrl},
	{hotkey.ModShift, xhk.ModShift},
	{hotkey.ModAlt, xhk.ModOption},
	{hotkey.ModMeta, xhk.ModCmd},
}

// Carbon kVK codes (HIToolbox/Events.h). Keys without a Carbon code (F21+,
// PrintScreen, ScrollLock, Pause, media keys) are left out.
var nativeKeys = map[hotkey.Code]uint32{
	hotkey.KeyA: 0x00, hotkey.KeyS: 0x01, hotkey.KeyD: 0x02, hotkey.KeyF: 0x03,
	hotkey.KeyH: 0x04, hotkey.KeyG: 0x05, hotkey.KeyZ: 0x06, hotkey.KeyX: 0x07,
	hotkey.KeyC: 0x08, hotkey.KeyV: 0x09, hotkey.KeyB: 0x0B, hotkey.KeyQ: 0x0C,
	hotkey.KeyW: 0x0D, hotkey.KeyE: 0x0E, hotkey.KeyR: 0x0F, hotkey.KeyY: 0x10,
	hotkey.KeyT: 0x11, hotkey.KeyO: 0x1F, hotkey.KeyU: 0x20, hotkey.KeyI: 0x22,
	hotkey.KeyP: 0x23, hotkey.KeyL: 0x25, hotkey.KeyJ: 0x26, hotkey.KeyK: 0x28,
	hotkey.KeyN: 0x2D, hotkey.KeyM: 0x2E,

	hotkey.Digit1: 0x12, hotkey.Digit2: 0x13, hotkey.Digit3: 0x14, hotkey.Digit4: 0x15,
	hotkey.Digit6: 0x16, hotkey.Digit5: 0x17, hotkey.Digit9: 0x19, hotkey.Digit7: 0x1A,
	hotkey.Digit8: 0x1C, hotkey.Digit0: 0x1D,

	hotkey.F1: 0x7A, hotkey.F2: 0x78, hotkey.F3: 0x63, hotkey.F4: 0x76,
	hotkey.F5: 0x60, hotkey.F6: 0x61, hotkey.F7: 0x62, hotkey.F8: 0x64,
	hotkey.F9: 0x65, hotkey.F10: 0x6D, hotkey.F11: 0x67, hotkey.F12: 0x6F,
	hotkey.F13: 0x69, hotkey.F14: 0x6B, hotkey.F15: 0x71, hotkey.F16: 0x6A,
	hotkey.F17: 0x40, hotkey.F18: 0x4F, hotkey.F19: 0x50, hotkey.F20: 0x5A,

	hotkey.Backquote:    0x32,
	hotkey.Backslash:    0x2A,
	hotkey.BracketLeft:  0x21,
	hotkey.BracketRight: 0x1E,
	hotkey.Comma:        0x2B,
	hotkey.Equal:        0x18,
	hotkey.Minus:        0x1B,
	hotkey.Period:       0x2F,
	hotkey.Quote:        0x27,
	hotkey.Semicolon:    0x29,
	hotkey.Slash:        0x2C,

	hotkey.Backspace: 0x33, // kVK_Delete
	hotkey.CapsLock:  0x39,
	hotkey.Enter:     0x24,
	hotkey.Space:     0x31,
	hotkey.Tab:       0x30,
	hotkey.Delete:    0x75, // kVK_ForwardDelete
	hotkey.End:       0x77,
	hotkey.Home:      0x73,
	hotkey.Insert:    0x72, // kVK_Help
	hotkey.PageDown:  0x79,
	hotkey.PageUp:    0x74,
	hotkey.Escape:    0x35,

	hotkey.ArrowDown:  0x7D,
	hotkey.ArrowLeft:  0x7B,
	hotkey.ArrowRight: 0x7C,
	hotkey.ArrowUp:    0x7E,

	hotkey.NumLock: 0x47, // kVK_ANSI_KeypadClear
	hotkey.Numpad0: 0x52, hotkey.Numpad1: 0x53, hotkey.Numpad2: 0x54, hotkey.Numpad3: 0x55,
	hotkey.Numpad4: 0x56, hotkey.Numpad5: 0x57, hotkey.Numpad6: 0x58, hotkey.Numpad7: 0x59,
	hotkey.Numpad8: 0x5B, hotkey.Numpad9: 0x5C,
	hotkey.NumpadAdd:      0x45,
	hotkey.NumpadDecimal:  0x41,
	hotkey.NumpadDivide:   0x4B,
	hotkey.NumpadEnter:    0x4C,
	hotkey.NumpadEqual:    0x51,
	hotkey.NumpadMultiply: 0x43,
	hotkey.NumpadSubtract: 0x4E,

	hotkey.AudioVolumeUp:   0x48,
	hotkey.AudioVolumeDown: 0x49,
	hotkey.AudioVolumeMute: 0x4A,
}

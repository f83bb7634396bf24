//go:build windows

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
	{hotkey.ModAlt, xhk.ModAlt},
	{hotkey.ModMeta, xhk.ModWin},
}

// Virtual-key codes. NumpadEnter and NumpadEqual share VK codes with other
// keys (or have none) and are left out.
var nativeKeys = map[hotkey.Code]uint32{
	hotkey.KeyA: 0x41, hotkey.KeyB: 0x42, hotkey.KeyC: 0x43, hotkey.KeyD: 0x44,
	hotkey.KeyE: 0x45, hotkey.KeyF: 0x46, hotkey.KeyG: 0x47, hotkey.KeyH: 0x48,
	hotkey.KeyI: 0x49, hotkey.KeyJ: 0x4A, hotkey.KeyK: 0x4B, hotkey.KeyL: 0x4C,
	hotkey.KeyM: 0x4D, hotkey.KeyN: 0x4E, hotkey.KeyO: 0x4F, hotkey.KeyP: 0x50,
	hotkey.KeyQ: 0x51, hotkey.KeyR: 0x52, hotkey.KeyS: 0x53, hotkey.KeyT: 0x54,
	hotkey.KeyU: 0x55, hotkey.KeyV: 0x56, hotkey.KeyW: 0x57, hotkey.KeyX: 0x58,
	hotkey.KeyY: 0x59, hotkey.KeyZ: 0x5A,

	hotkey.Digit0: 0x30, hotkey.Digit1: 0x31, hotkey.Digit2: 0x32, hotkey.Digit3: 0x33,
	hotkey.Digit4: 0x34, hotkey.Digit5: 0x35, hotkey.Digit6: 0x36, hotkey.Digit7: 0x37,
	hotkey.Digit8: 0x38, hotkey.Digit9: 0x39,

	hotkey.F1: 0x70, hotkey.F2: 0x71, hotkey.F3: 0x72, hotkey.F4: 0x73,
	hotkey.F5: 0x74, hotkey.F6: 0x75, hotkey.F7: 0x76, hotkey.F8: 0x77,
	hotkey.F9: 0x78, hotkey.F10: 0x79, hotkey.F11: 0x7A, hotkey.F12: 0x7B,
	hotkey.F13: 0x7C, hotkey.F14: 0x7D, hotkey.F15: 0x7E, hotkey.F16: 0x7F,
	hotkey.F17: 0x80, hotkey.F18: 0x81, hotkey.F19: 0x82, hotkey.F20: 0x83,
	hotkey.F21: 0x84, hotkey.F22: 0x85, hotkey.F23: 0x86, hotkey.F24: 0x87,

	hotkey.Backquote:    0xC0, // VK_OEM_3
	hotkey.Backslash:    0xDC, // VK_OEM_5
	hotkey.BracketLeft:  0xDB, // VK_OEM_4
	hotkey.BracketRight: 0xDD, // VK_OEM_6
	hotkey.Comma:        0xBC,
	hotkey.Equal:        0xBB, // VK_OEM_PLUS
	hotkey.Minus:        0xBD,
	hotkey.Period:       0xBE,
	hotkey.Quote:        0xDE, // VK_OEM_7
	hotkey.Semicolon:    0xBA, // VK_OEM_1
	hotkey.Slash:        0xBF, // VK_OEM_2

	hotkey.Backspace:   0x08,
	hotkey.CapsLock:    0x14,
	hotkey.Enter:       0x0D,
	hotkey.Space:       0x20,
	hotkey.Tab:         0x09,
	hotkey.Delete:      0x2E,
	hotkey.End:         0x23,
	hotkey.Home:        0x24,
	hotkey.Insert:      0x2D,
	hotkey.PageDown:    0x22,
	hotkey.PageUp:      0x21,
	hotkey.PrintScreen: 0x2C,
	hotkey.ScrollLock:  0x91,
	hotkey.Pause:       0x13,
	hotkey.Escape:      0x1B,

	hotkey.ArrowDown:  0x28,
	hotkey.ArrowLeft:  0x25,
	hotkey.ArrowRight: 0x27,
	hotkey.ArrowUp:    0x26,

	hotkey.NumLock: 0x90,
	hotkey.Numpad0: 0x60, hotkey.Numpad1: 0x61, hotkey.Numpad2: 0x62, hotkey.Numpad3: 0x63,
	hotkey.Numpad4: 0x64, hotkey.Numpad5: 0x65, hotkey.Numpad6: 0x66, hotkey.Numpad7: 0x67,
	hotkey.Numpad8: 0x68, hotkey.Numpad9: 0x69,
	hotkey.NumpadAdd:      0x6B,
	hotkey.NumpadDecimal:  0x6E,
	hotkey.NumpadDivide:   0x6F,
	hotkey.NumpadMultiply: 0x6A,
	hotkey.NumpadSubtract: 0x6D,

	hotkey.AudioVolumeDown:    0xAE,
	hotkey.AudioVolumeUp:      0xAF,
	hotkey.AudioVolumeMute:    0xAD,
	hotkey.MediaPlayPause:     0xB3,
	hotkey.MediaStop:          0xB2,
	hotkey.MediaTrackNext:     0xB0,
	hotkey.MediaTrackPrevious: 0xB1,
}

//go:build linux

package platform

import "globalhotkey/hotkey"

// Key codes from linux/input-event-codes.h.
var evdevKeys = map[hotkey.Code]uint16{
	hotkey.KeyA: 30, hotkey.KeyB: 48, hotkey.KeyC: 46, hotkey.KeyD: 32,
	hotkey.KeyE: 18, hotkey.KeyF: 33, hotkey.KeyG: 34, hotkey.KeyH: 35,
	hotkey.KeyI: 23, hotkey.KeyJ: 36, hotkey.KeyK: 37, hotkey.KeyL: 38,
	hotkey.KeyM: 50, hotkey.KeyN: 49, hotkey.KeyO: 24, hotkey.KeyP: 25,
	hotkey.KeyQ: 16, hotkey.KeyR: 19, hotkey.KeyS: 31, hotkey.KeyT: 20,
	hotkey.KeyU: 22, hotkey.KeyV: 47, hotkey.KeyW: 17, hotkey.KeyX: 45,
	hotkey.KeyY: 21, hotkey.KeyZ: 44,

	hotkey.Digit1: 2, hotkey.Digit2: 3, hotkey.Digit3: 4, hotkey.Digit4: 5,
	hotkey.Digit5: 6, hotkey.Digit6: 7, hotkey.Digit7: 8, hotkey.Digit8: 9,
	hotkey.Digit9: 10, hotkey.Digit0: 11,

	hotkey.F1: 59, hotkey.F2: 60, hotkey.F3: 61, hotkey.F4: 62,
	hotkey.F5: 63, hotkey.F6: 64, hotkey.F7: 65, hotkey.F8: 66,
	hotkey.F9: 67, hotkey.F10: 68, hotkey.F11: 87, hotkey.F12: 88,
	hotkey.F13: 183, hotkey.F14: 184, hotkey.F15: 185, hotkey.F16: 186,
	hotkey.F17: 187, hotkey.F18: 188, hotkey.F19: 189, hotkey.F20: 190,
	hotkey.F21: 191, hotkey.F22: 192, hotkey.F23: 193, hotkey.F24: 194,

	hotkey.Backquote:    41,
	hotkey.Backslash:    43,
	hotkey.BracketLeft:  26,
	hotkey.BracketRight: 27,
	hotkey.Comma:        51,
	hotkey.Equal:        13,
	hotkey.Minus:        12,
	hotkey.Period:       52,
	hotkey.Quote:        40,
	hotkey.Semicolon:    39,
	hotkey.Slash:        53,

	hotkey.Backspace:   14,
	hotkey.CapsLock:    58,
	hotkey.Enter:       28,
	hotkey.Space:       57,
	hotkey.Tab:         15,
	hotkey.Delete:      111,
	hotkey.End:         107,
	hotkey.Home:        102,
	hotkey.Insert:      110,
	hotkey.PageDown:    109,
	hotkey.PageUp:      104,
	hotkey.PrintScreen: 99, // KEY_SYSRQ
	hotkey.ScrollLock:  70,
	hotkey.Pause:       119,
	hotkey.Escape:      1,

	hotkey.ArrowDown:  108,
	hotkey.ArrowLeft:  105,
	hotkey.ArrowRight: 106,
	hotkey.ArrowUp:    103,

	hotkey.NumLock: 69,
	hotkey.Numpad0: 82, hotkey.Numpad1: 79, hotkey.Numpad2: 80, hotkey.Numpad3: 81,
	hotkey.Numpad4: 75, hotkey.Numpad5: 76, hotkey.Numpad6: 77, hotkey.Numpad7: 71,
	hotkey.Numpad8: 72, hotkey.Numpad9: 73,
	hotkey.NumpadAdd:      78,
	hotkey.NumpadDecimal:  83,
	hotkey.NumpadDivide:   98,
	hotkey.NumpadEnter:    96,
	hotkey.NumpadEqual:    117,
	hotkey.NumpadMultiply: 55,
	hotkey.NumpadSubtract: 74,

	hotkey.AudioVolumeDown:    114,
	hotkey.AudioVolumeUp:      115,
	hotkey.AudioVolumeMute:    113,
	hotkey.MediaPlayPause:     164,
	hotkey.MediaStop:          166,
	hotkey.MediaTrackNext:     163,
	hotkey.MediaTrackPrevious: 165,
}

// Modifier keys. Both Meta keys drive ModMeta; Super folds into it.
var evdevModifiers = map[uint32]hotkey.Modifiers{
	29:  hotkey.ModControl, // KEY_LEFTCTRL
	97:  hotkey.ModControl, // KEY_RIGHTCTRL
	42:  hotkey.ModShift,   // KEY_LEFTSHIFT
	54:  hotkey.ModShift,   // KEY_RIGHTSHIFT
	56:  hotkey.ModAlt,     // KEY_LEFTALT
	100: hotkey.ModAlt,     // KEY_RIGHTALT
	125: hotkey.ModMeta,    // KEY_LEFTMETA
	126: hotkey.ModMeta,    // KEY_RIGHTMETA
}

package hotkey

import "strings"

// Code identifies a physical key, named after the W3C KeyboardEvent.code
// values.
//
// Ordinals feed HotKey.ID, so they are append-only: never reorder or remove
// a constant.
type Code uint16

const (
	Unidentified Code = iota

	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ

	Digit0
	Digit1
	Digit2
	Digit3
	Digit4
	Digit5
	Digit6
	Digit7
	Digit8
	Digit9

	F1
	F2
	F3
	F4
	F5
	F6
	F7
	F8
	F9
	F10
	F11
	F12
	F13
	F14
	F15
	F16
	F17
	F18
	F19
	F20
	F21
	F22
	F23
	F24

	Backquote
	Backslash
	BracketLeft
	BracketRight
	Comma
	Equal
	Minus
	Period
	Quote
	Semicolon
	Slash

	Backspace
	CapsLock
	Enter
	Space
	Tab
	Delete
	End
	Home
	Insert
	PageDown
	PageUp
	PrintScreen
	ScrollLock
	Pause
	Escape

	ArrowDown
	ArrowLeft
	ArrowRight
	ArrowUp

	NumLock
	Numpad0
	Numpad1
	Numpad2
	Numpad3
	Numpad4
	Numpad5
	Numpad6
	Numpad7
	Numpad8
	Numpad9
	NumpadAdd
	NumpadDecimal
	NumpadDivide
	NumpadEnter
	NumpadEqual
	NumpadMultiply
	NumpadSubtract

	AudioVolumeDown
	AudioVolumeUp
	AudioVolumeMute
	MediaPlayPause
	MediaStop
	MediaTrackNext
	MediaTrackPrevious

	codeCount
)

var codeNames = [codeCount]string{
	Unidentified: "Unidentified",

	KeyA: "KeyA", KeyB: "KeyB", KeyC: "KeyC", KeyD: "KeyD", KeyE: "KeyE",
	KeyF: "KeyF", KeyG: "KeyG", KeyH: "KeyH", KeyI: "KeyI", KeyJ: "KeyJ",
	KeyK: "KeyK", KeyL: "KeyL", KeyM: "KeyM", KeyN: "KeyN", KeyO: "KeyO",
	KeyP: "KeyP", KeyQ: "KeyQ", KeyR: "KeyR", KeyS: "KeyS", KeyT: "KeyT",
	KeyU: "KeyU", KeyV: "KeyV", KeyW: "KeyW", KeyX: "KeyX", KeyY: "KeyY",
	KeyZ: "KeyZ",

	Digit0: "Digit0", Digit1: "Digit1", Digit2: "Digit2", Digit3: "Digit3",
	Digit4: "Digit4", Digit5: "Digit5", Digit6: "Digit6", Digit7: "Digit7",
	Digit8: "Digit8", Digit9: "Digit9",

	F1: "F1", F2: "F2", F3: "F3", F4: "F4", F5: "F5", F6: "F6",
	F7: "F7", F8: "F8", F9: "F9", F10: "F10", F11: "F11", F12: "F12",
	F13: "F13", F14: "F14", F15: "F15", F16: "F16", F17: "F17", F18: "F18",
	F19: "F19", F20: "F20", F21: "F21", F22: "F22", F23: "F23", F24: "F24",

	Backquote:    "Backquote",
	Backslash:    "Backslash",
	BracketLeft:  "BracketLeft",
	BracketRight: "BracketRight",
	Comma:        "Comma",
	Equal:        "Equal",
	Minus:        "Minus",
	Period:       "Period",
	Quote:        "Quote",
	Semicolon:    "Semicolon",
	Slash:        "Slash",

	Backspace:   "Backspace",
	CapsLock:    "CapsLock",
	Enter:       "Enter",
	Space:       "Space",
	Tab:         "Tab",
	Delete:      "Delete",
	End:         "End",
	Home:        "Home",
	Insert:      "Insert",
	PageDown:    "PageDown",
	PageUp:      "PageUp",
	PrintScreen: "PrintScreen",
	ScrollLock:  "ScrollLock",
	Pause:       "Pause",
	Escape:      "Escape",

	ArrowDown:  "ArrowDown",
	ArrowLeft:  "ArrowLeft",
	ArrowRight: "ArrowRight",
	ArrowUp:    "ArrowUp",

	NumLock: "NumLock",
	Numpad0: "Numpad0", Numpad1: "Numpad1", Numpad2: "Numpad2",
	Numpad3: "Numpad3", Numpad4: "Numpad4", Numpad5: "Numpad5",
	Numpad6: "Numpad6", Numpad7: "Numpad7", Numpad8: "Numpad8",
	Numpad9:        "Numpad9",
	NumpadAdd:      "NumpadAdd",
	NumpadDecimal:  "NumpadDecimal",
	NumpadDivide:   "NumpadDivide",
	NumpadEnter:    "NumpadEnter",
	NumpadEqual:    "NumpadEqual",
	NumpadMultiply: "NumpadMultiply",
	NumpadSubtract: "NumpadSubtract",

	AudioVolumeDown:    "AudioVolumeDown",
	AudioVolumeUp:      "AudioVolumeUp",
	AudioVolumeMute:    "AudioVolumeMute",
	MediaPlayPause:     "MediaPlayPause",
	MediaStop:          "MediaStop",
	MediaTrackNext:     "MediaTrackNext",
	MediaTrackPrevious: "MediaTrackPrevious",
}

// codeAliases maps upper-cased short names onto codes. Canonical names are
// added by init.
var codeAliases = map[string]Code{
	"`": Backquote, "\\": Backslash, "[": BracketLeft, "]": BracketRight,
	",": Comma, "=": Equal, "-": Minus, ".": Period, "'": Quote,
	";": Semicolon, "/": Slash,

	"ESC":    Escape,
	"RETURN": Enter,
	"DOWN":   ArrowDown,
	"LEFT":   ArrowLeft,
	"RIGHT":  ArrowRight,
	"UP":     ArrowUp,

	"NUM0": Numpad0, "NUM1": Numpad1, "NUM2": Numpad2, "NUM3": Numpad3,
	"NUM4": Numpad4, "NUM5": Numpad5, "NUM6": Numpad6, "NUM7": Numpad7,
	"NUM8": Numpad8, "NUM9": Numpad9,
	"NUMADD":      NumpadAdd,
	"NUMPADPLUS":  NumpadAdd,
	"NUMPLUS":     NumpadAdd,
	"NUMDECIMAL":  NumpadDecimal,
	"NUMDIVIDE":   NumpadDivide,
	"NUMENTER":    NumpadEnter,
	"NUMEQUAL":    NumpadEqual,
	"NUMMULTIPLY": NumpadMultiply,
	"NUMSUBTRACT": NumpadSubtract,

	"VOLUMEDOWN": AudioVolumeDown,
	"VOLUMEUP":   AudioVolumeUp,
	"VOLUMEMUTE": AudioVolumeMute,
	"PLAYPAUSE":  MediaPlayPause,
}

func init() {
	for c := KeyA; c < codeCount; c++ {
		codeAliases[strings.ToUpper(codeNames[c])] = c
	}
	// Bare letters and digits: "A" for KeyA, "5" for Digit5.
	for c := KeyA; c <= KeyZ; c++ {
		codeAliases[string(rune('A'+int(c-KeyA)))] = c
	}
	for c := Digit0; c <= Digit9; c++ {
		codeAliases[string(rune('0'+int(c-Digit0)))] = c
	}
}

// String returns the canonical name of the code.
func (c Code) String() string {
	if c < codeCount {
		return codeNames[c]
	}
	return codeNames[Unidentified]
}

// Valid reports whether c names a known physical key.
func (c Code) Valid() bool {
	return c > Unidentified && c < codeCount
}

// ParseCode resolves a key name, case-insensitively, to its Code.
func ParseCode(name string) (Code, bool) {
	c, ok := codeAliases[strings.ToUpper(strings.TrimSpace(name))]
	return c, ok
}

// Codes returns every valid code in ordinal order.
func Codes() []Code {
	out := make([]Code, 0, codeCount-1)
	for c := KeyA; c < codeCount; c++ {
		out = append(out, c)
	}
	return out
}

package hotkey

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyToken           = errors.New("empty hotkey token")
	ErrUnrecognizedModifier = errors.New("unrecognized modifier")
	ErrUnrecognizedKeyCode  = errors.New("unrecognized key code")
	ErrUnexpectedFormat     = errors.New("unexpected hotkey format")
)

// ParseError describes why an accelerator string was rejected. Err is one
// of the Err* sentinels above.
type ParseError struct {
	Input string
	Token string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("%v: %q", e.Err, e.Input)
	}
	return fmt.Sprintf("%v %q in hotkey %q", e.Err, e.Token, e.Input)
}

func (e *ParseError) Unwrap() error { return e.Err }

var modifierByName = map[string]Modifiers{
	"SHIFT":   ModShift,
	"CONTROL": ModControl,
	"CTRL":    ModControl,
	"ALT":     ModAlt,
	"OPTION":  ModAlt,
	"META":    ModMeta,
	"CMD":     ModMeta,
	"COMMAND": ModMeta,
	"SUPER":   ModSuper,
	"WIN":     ModSuper,

	"CMDORCTRL":        primaryModifier,
	"CMDORCONTROL":     primaryModifier,
	"COMMANDORCTRL":    primaryModifier,
	"COMMANDORCONTROL": primaryModifier,
}

// Parse converts an accelerator such as "Shift+Alt+KeyQ" into a HotKey.
// Tokens are separated by '+', trimmed and matched case-insensitively.
// CmdOrCtrl resolves to Meta on macOS and Control elsewhere.
func Parse(s string) (HotKey, error) {
	if strings.TrimSpace(s) == "" {
		return HotKey{}, &ParseError{Input: s, Err: ErrUnexpectedFormat}
	}

	tokens := strings.Split(s, "+")
	last := len(tokens) - 1

	var mods Modifiers
	for i, raw := range tokens {
		tok := strings.TrimSpace(raw)
		if tok == "" {
			return HotKey{}, &ParseError{Input: s, Err: ErrEmptyToken}
		}
		if i == last {
			code, ok := ParseCode(tok)
			if !ok {
				return HotKey{}, &ParseError{Input: s, Token: tok, Err: ErrUnrecognizedKeyCode}
			}
			return New(mods, code), nil
		}
		mod, ok := modifierByName[strings.ToUpper(tok)]
		if !ok {
			// A key before the last position is an ordering mistake, not an
			// unknown name.
			if _, isKey := ParseCode(tok); isKey {
				return HotKey{}, &ParseError{Input: s, Token: tok, Err: ErrUnexpectedFormat}
			}
			return HotKey{}, &ParseError{Input: s, Token: tok, Err: ErrUnrecognizedModifier}
		}
		mods |= mod
	}
	return HotKey{}, &ParseError{Input: s, Err: ErrUnexpectedFormat}
}

// MustParse is like Parse but panics on error.
func MustParse(s string) HotKey {
	h, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return h
}

//go:build !darwin

package hotkey

const primaryModifier = ModControl

package globalhotkey

import "golang.design/x/hotkey/mainthread"

// RunOnMainThread runs fn while the main OS thread services the native
// hotkey loop, and returns when fn does. macOS delivers hotkeys only there;
// on other systems it is harmless.
//
// Call it from main.main, with the main goroutine locked to the main
// thread (runtime.LockOSThread in an init func of package main).
func RunOnMainThread(fn func()) {
	mainthread.Init(fn)
}

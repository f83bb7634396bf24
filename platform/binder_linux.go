//go:build linux

package platform

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unsafe"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sys/unix"

	"globalhotkey/hotkey"
	"globalhotkey/log"
)

const (
	evSyn      = 0
	evKey      = 1
	synDropped = 3
	keyRelease = 0
	keyPress   = 1
	keyRepeat  = 2

	// KEY_MAX+1 bits
	keyBitmapLen = 0x300 / 8
	// EVIOCGKEY(len): _IOC(_IOC_READ, 'E', 0x18, len)
	eviocgkey = 2<<30 | keyBitmapLen<<16 | 'E'<<8 | 0x18

	inputDir = "/dev/input"
)

// input_event: struct timeval, then type (2), code (2), value (4).
var inputEventSize = int(unsafe.Sizeof(unix.Timeval{})) + 8

// evdevBinder reads key events straight from /dev/input. It works under
// X11 and Wayland alike but needs read access to the keyboard devices
// (the 'input' group). Nothing is grabbed: other applications still see
// every key.
type evdevBinder struct {
	mu          sync.Mutex
	devices     map[string]int // path -> fd
	watcher     *fsnotify.Watcher
	unavailable error
	next        Handle
	bound       map[Handle]Native
	watched     map[uint32]int // key code -> live bindings using it
	buf         []byte
	resync      bool
	closed      bool

	openFn func(path string) (int, error)
	isKbd  func(eventName string) bool
}

// NewBinder opens every readable keyboard. When none can be opened the
// binder still works but Resolve fails with ErrUnsupported until a keyboard
// becomes readable; Probe reports why.
func NewBinder() Binder {
	b := newEvdevBinder()

	// Keyboards plugged in, or made readable by udev, later are picked up
	// in Drain.
	if w, err := fsnotify.NewWatcher(); err == nil {
		if err := w.Add(inputDir); err == nil {
			b.watcher = w
		} else {
			w.Close()
			log.Warnf("evdev: not watching %s for new keyboards: %v", inputDir, err)
		}
	}

	keyboards, err := findKeyboards()
	if err != nil {
		b.unavailable = fmt.Errorf("%w: finding keyboards: %w", ErrUnsupported, err)
		return b
	}
	if len(keyboards) == 0 {
		b.unavailable = fmt.Errorf("%w: no keyboard devices found (is user in 'input' group?)", ErrUnsupported)
		return b
	}
	for _, path := range keyboards {
		b.open(path)
	}
	if len(b.devices) == 0 {
		b.unavailable = fmt.Errorf("%w: could not open any keyboard device (run: sudo usermod -aG input $USER, then re-login)", ErrUnsupported)
	}
	return b
}

func newEvdevBinder() *evdevBinder {
	return &evdevBinder{
		devices: make(map[string]int),
		bound:   make(map[Handle]Native),
		watched: make(map[uint32]int),
		buf:     make([]byte, inputEventSize*64),
		openFn:  openDevice,
		isKbd:   isKeyboard,
	}
}

func openDevice(path string) (int, error) {
	return unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
}

func (b *evdevBinder) open(path string) bool {
	if _, ok := b.devices[path]; ok {
		return true
	}
	fd, err := b.openFn(path)
	if err != nil {
		log.Debugf("evdev: open %s: %v", path, err)
		return false
	}
	b.devices[path] = fd
	log.Debugf("evdev: opened %s", path)
	return true
}

func (b *evdevBinder) Name() string        { return "evdev" }
func (b *evdevBinder) Signals() SignalKind { return SignalKeys }

func (b *evdevBinder) Probe() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.unavailable
}

func (b *evdevBinder) Resolve(hk hotkey.HotKey) (Native, error) {
	if err := b.Probe(); err != nil {
		return Native{}, err
	}
	key, ok := evdevKeys[hk.Code()]
	if !ok {
		return Native{}, fmt.Errorf("%w: no evdev key code for %v", ErrRegistrationFailed, hk.Code())
	}
	return Native{Mods: uint32(hk.Modifiers().Native()), Key: uint32(key)}, nil
}

// Bind only updates the watch table; evdev has no per-combination claim
// that could be refused.
func (b *evdevBinder) Bind(natives []Native) ([]Handle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, fmt.Errorf("%w: binder closed", ErrRegistrationFailed)
	}
	if b.unavailable != nil {
		return nil, b.unavailable
	}
	handles := make([]Handle, len(natives))
	for i, n := range natives {
		b.next++
		b.bound[b.next] = n
		b.watched[n.Key]++
		handles[i] = b.next
	}
	return handles, nil
}

func (b *evdevBinder) Unbind(handles []Handle) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	var errs []error
	for _, h := range handles {
		n, ok := b.bound[h]
		if !ok {
			errs = append(errs, fmt.Errorf("evdev: unknown handle %d", h))
			continue
		}
		delete(b.bound, h)
		if b.watched[n.Key]--; b.watched[n.Key] <= 0 {
			delete(b.watched, n.Key)
		}
	}
	return errors.Join(errs...)
}

func (b *evdevBinder) Drain(out []RawEvent) []RawEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return out
	}

	b.rescanLocked()

	for path, fd := range b.devices {
		lost := false
		for {
			n, err := unix.Read(fd, b.buf)
			if err == unix.EAGAIN || err == unix.EINTR {
				break
			}
			if err != nil || n == 0 {
				// Device unplugged. Keys held on it never report their up.
				unix.Close(fd)
				delete(b.devices, path)
				b.resync = true
				log.Debugf("evdev: closed %s: %v", path, err)
				break
			}
			// After SYN_DROPPED everything up to the queue's end is
			// discarded and the state is read back below.
			if !lost {
				out, lost = decodeInputEvents(b.buf[:n], b.watched, out)
				if lost {
					b.resync = true
					log.Debugf("evdev: %s dropped events, resyncing", path)
				}
			}
			if n < len(b.buf) && !lost {
				break
			}
		}
	}

	if b.resync {
		b.resync = false
		out = b.resyncLocked(out)
	}
	return out
}

// resyncLocked replaces the caller's key state with what the kernel
// reports as held: a RawReset, then a down for every modifier still held
// on any open keyboard. Held main keys are left out so a combination that
// was down before the loss does not fire again without a new press.
func (b *evdevBinder) resyncLocked(out []RawEvent) []RawEvent {
	out = append(out, RawEvent{Kind: RawReset})
	keys := make([]byte, keyBitmapLen)
	for path, fd := range b.devices {
		clear(keys)
		if err := readKeyState(fd, keys); err != nil {
			log.Debugf("evdev: key state of %s: %v", path, err)
			continue
		}
		out = heldModifierEvents(keys, out)
	}
	return out
}

func readKeyState(fd int, keys []byte) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), eviocgkey, uintptr(unsafe.Pointer(&keys[0])))
	if errno != 0 {
		return errno
	}
	return nil
}

// heldModifierEvents appends a key down for every modifier key set in an
// EVIOCGKEY bitmap, in key code order.
func heldModifierEvents(keys []byte, out []RawEvent) []RawEvent {
	for code := range uint32(len(keys) * 8) {
		if keys[code/8]&(1<<(code%8)) == 0 {
			continue
		}
		if mod := evdevModifiers[code]; mod != 0 {
			out = append(out, RawEvent{Kind: RawKeyDown, Key: code, Modifier: mod})
		}
	}
	return out
}

func (b *evdevBinder) rescanLocked() {
	if b.watcher == nil {
		return
	}
	for {
		select {
		case ev, ok := <-b.watcher.Events:
			if !ok {
				return
			}
			b.deviceEventLocked(ev)
		case err, ok := <-b.watcher.Errors:
			if ok {
				log.Warnf("evdev: watching %s: %v", inputDir, err)
			}
		default:
			return
		}
	}
}

// deviceEventLocked opens a keyboard node when it appears or its
// permissions change. udev grants the input group access only after
// devtmpfs creates the node, so an open that fails on Create is retried on
// the following Chmod.
func (b *evdevBinder) deviceEventLocked(ev fsnotify.Event) {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Chmod) {
		return
	}
	name := filepath.Base(ev.Name)
	if !strings.HasPrefix(name, "event") || !b.isKbd(name) {
		return
	}
	if b.open(ev.Name) && b.unavailable != nil {
		b.unavailable = nil
		log.Info("evdev: keyboard " + ev.Name + " readable, hotkeys available")
	}
}

// Wait polls the keyboard devices. It returns after at most 250ms so new
// devices are noticed by the next Drain.
func (b *evdevBinder) Wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.Lock()
	fds := make([]unix.PollFd, 0, len(b.devices))
	for _, fd := range b.devices {
		fds = append(fds, unix.PollFd{Fd: int32(fd), Events: unix.POLLIN})
	}
	b.mu.Unlock()

	if len(fds) == 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pollInterval):
			return nil
		}
	}

	_, err := unix.Poll(fds, int(pollInterval.Milliseconds()))
	if err != nil && err != unix.EINTR {
		return fmt.Errorf("evdev: poll: %w", err)
	}
	return ctx.Err()
}

func (b *evdevBinder) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	var errs []error
	for path, fd := range b.devices {
		if err := unix.Close(fd); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", path, err))
		}
	}
	clear(b.devices)
	if b.watcher != nil {
		errs = append(errs, b.watcher.Close())
	}
	return errors.Join(errs...)
}

// decodeInputEvents appends key events for modifier keys and for watched
// keys. Everything else is skipped. It stops at SYN_DROPPED and reports
// lost: the kernel queue overflowed and key state must be read back.
func decodeInputEvents(buf []byte, watched map[uint32]int, out []RawEvent) (_ []RawEvent, lost bool) {
	tv := inputEventSize - 8
	for i := 0; i+inputEventSize <= len(buf); i += inputEventSize {
		evType := binary.NativeEndian.Uint16(buf[i+tv:])
		evCode := uint32(binary.NativeEndian.Uint16(buf[i+tv+2:]))
		evValue := int32(binary.NativeEndian.Uint32(buf[i+tv+4:]))

		if evType == evSyn && evCode == synDropped {
			return out, true
		}
		if evType != evKey {
			continue
		}

		mod := evdevModifiers[evCode]
		if mod == 0 && watched[evCode] == 0 {
			continue
		}

		var kind RawKind
		switch evValue {
		case keyPress:
			kind = RawKeyDown
		case keyRelease:
			kind = RawKeyUp
		case keyRepeat:
			kind = RawKeyRepeat
		default:
			continue
		}
		out = append(out, RawEvent{Kind: kind, Key: evCode, Modifier: mod})
	}
	return out, false
}

func findKeyboards() ([]string, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, err
	}

	var keyboards []string
	for _, e := range entries {
		if !strings.HasPrefix(e.Name(), "event") {
			continue
		}
		path := filepath.Join(inputDir, e.Name())
		if isKeyboard(e.Name()) {
			keyboards = append(keyboards, path)
		}
	}
	return keyboards, nil
}

func isKeyboard(eventName string) bool {
	capsPath := filepath.Join("/sys/class/input", eventName, "device", "capabilities", "key")
	data, err := os.ReadFile(capsPath)
	if err != nil {
		return false
	}
	// Real keyboards have long key capability bitmaps
	caps := strings.TrimSpace(string(data))
	return len(caps) > 10
}

// Diagnose checks keyboard access and the session type and returns a
// status line.
func Diagnose() (string, error) {
	session := SessionType()
	keyboards, err := findKeyboards()
	if err != nil {
		return "", fmt.Errorf("cannot scan input devices: %w", err)
	}
	if len(keyboards) == 0 {
		return "", fmt.Errorf("no keyboard devices found (is user in 'input' group?)")
	}

	var opened string
	for _, path := range keyboards {
		f, err := os.Open(path)
		if err == nil {
			f.Close()
			opened = path
			break
		}
	}
	if opened == "" {
		return "", fmt.Errorf("found %d keyboard(s) but cannot open any (run: sudo usermod -aG input $USER)", len(keyboards))
	}

	return fmt.Sprintf("%d keyboard(s) found, opened %s, %s session", len(keyboards), opened, session), nil
}

package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

var (
	diagLog    zerolog.Logger
	diagFile   *os.File
	eventsFile *os.File
	logMu      sync.Mutex
	logReady   atomic.Bool
	pid        int
	dir        string

	warnedMu sync.Mutex
	warned   = map[string]bool{}
)

func ResolveDir(flagPath string) (string, error) {
	// Priority 1: -logpath flag
	if flagPath != "" {
		if !filepath.IsAbs(flagPath) {
			wd, err := os.Getwd()
			if err != nil {
				return "", err
			}
			return filepath.Join(wd, flagPath), nil
		}
		return flagPath, nil
	}

	// Priority 2: GLOBALHOTKEY_LOG_PATH environment variable
	envPath := os.Getenv("GLOBALHOTKEY_LOG_PATH")
	if envPath != "" {
		if !filepath.IsAbs(envPath) {
			wd, err := os.Getwd()
			if err != nil {
				return "", err
			}
			return filepath.Join(wd, envPath), nil
		}
		return envPath, nil
	}

	// Priority 3: Default OS-specific location
	return getDefaultDir()
}

func SetDir(d string) {
	dir = d
}

func Dir() string {
	return dir
}

func EnsureDir() error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	return nil
}

// Init opens diagnostics_log.txt and events_log.txt in Dir. Until Init or
// SetOutput is called every helper in this package is a no-op.
func Init() error {
	logMu.Lock()
	defer logMu.Unlock()

	if err := EnsureDir(); err != nil {
		return err
	}

	pid = os.Getpid()

	var err error

	diagPath := filepath.Join(dir, "diagnostics_log.txt")
	diagFile, err = os.OpenFile(diagPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}

	eventsPath := filepath.Join(dir, "events_log.txt")
	eventsFile, err = os.OpenFile(eventsPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		diagFile.Close()
		return err
	}

	consoleWriter := zerolog.ConsoleWriter{
		Out:        diagFile,
		TimeFormat: "2006-01-02 15:04:05",
		NoColor:    true,
	}
	diagLog = zerolog.New(consoleWriter).With().Timestamp().Int("pid", pid).Logger()

	logReady.Store(true)
	return nil
}

// SetOutput sends diagnostics to w instead of files. Event lines are not
// written in this mode.
func SetOutput(w io.Writer, level zerolog.Level) {
	logMu.Lock()
	defer logMu.Unlock()

	pid = os.Getpid()
	diagLog = zerolog.New(w).Level(level).With().Timestamp().Int("pid", pid).Logger()
	logReady.Store(true)
}

func Close() {
	logMu.Lock()
	defer logMu.Unlock()
	if diagFile != nil {
		diagFile.Close()
		diagFile = nil
	}
	if eventsFile != nil {
		eventsFile.Close()
		eventsFile = nil
	}
	logReady.Store(false)

	warnedMu.Lock()
	clear(warned)
	warnedMu.Unlock()
}

func Info(msg string) {
	if logReady.Load() {
		diagLog.Info().Msg(msg)
	}
}

func Debugf(format string, args ...any) {
	if logReady.Load() {
		diagLog.Debug().Msg(fmt.Sprintf(format, args...))
	}
}

func Error(msg string) {
	if logReady.Load() {
		diagLog.Error().Msg(msg)
	}
}

func Errorf(format string, args ...any) {
	if logReady.Load() {
		diagLog.Error().Msg(fmt.Sprintf(format, args...))
	}
}

func Warn(msg string) {
	if logReady.Load() {
		diagLog.Warn().Msg(msg)
	}
}

func Warnf(format string, args ...any) {
	if logReady.Load() {
		diagLog.Warn().Msg(fmt.Sprintf(format, args...))
	}
}

// WarnOnce logs msg the first time key is seen while logging is ready. It
// reports whether the warning was emitted; calls made before Init or
// SetOutput do not use up the key.
func WarnOnce(key, msg string) bool {
	if !logReady.Load() {
		return false
	}
	warnedMu.Lock()
	if warned[key] {
		warnedMu.Unlock()
		return false
	}
	warned[key] = true
	warnedMu.Unlock()

	Warn(msg)
	return true
}

func ManagerStart(backend string) {
	if !logReady.Load() {
		return
	}
	diagLog.Info().
		Str("backend", backend).
		Msg("manager_start")
}

func ManagerStop(remaining int) {
	if !logReady.Load() {
		return
	}
	diagLog.Info().
		Int("remaining", remaining).
		Msg("manager_stop")
}

func Registered(id uint32, accel string, handle uint64) {
	if !logReady.Load() {
		return
	}
	diagLog.Info().
		Str("id", fmt.Sprintf("%#08x", id)).
		Str("hotkey", accel).
		Uint64("handle", handle).
		Msg("registered")
}

func Unregistered(id uint32, accel string) {
	if !logReady.Load() {
		return
	}
	diagLog.Info().
		Str("id", fmt.Sprintf("%#08x", id)).
		Str("hotkey", accel).
		Msg("unregistered")
}

// Event appends one line per published event to events_log.txt.
func Event(id uint32, accel, state string) {
	if !logReady.Load() {
		return
	}
	logMu.Lock()
	defer logMu.Unlock()
	if eventsFile == nil {
		return
	}
	line := fmt.Sprintf("%s\t[%d]\t%#08x\t%s\t%s\n", time.Now().Format("2006-01-02 15:04:05.000"), pid, id, state, accel)
	eventsFile.WriteString(line)
}

//go:build linux

package platform

import (
	"os"
	"strings"

	"github.com/godbus/dbus/v5"

	"globalhotkey/log"
)

const (
	logindDest    = "org.freedesktop.login1"
	logindSession = dbus.ObjectPath("/org/freedesktop/login1/session/auto")
	sessionType   = "org.freedesktop.login1.Session.Type"
)

// SessionType returns the graphical session type ("x11", "wayland", "tty",
// ...) or "unknown". XDG_SESSION_TYPE wins; logind is asked otherwise.
func SessionType() string {
	if t := strings.TrimSpace(os.Getenv("XDG_SESSION_TYPE")); t != "" {
		return t
	}
	if t, err := logindSessionType(); err == nil && t != "" {
		return t
	} else if err != nil {
		log.Debugf("logind session type: %v", err)
	}
	if os.Getenv("WAYLAND_DISPLAY") != "" {
		return "wayland"
	}
	if os.Getenv("DISPLAY") != "" {
		return "x11"
	}
	return "unknown"
}

func logindSessionType() (string, error) {
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return "", err
	}
	defer conn.Close()

	v, err := conn.Object(logindDest, logindSession).GetProperty(sessionType)
	if err != nil {
		return "", err
	}
	t, _ := v.Value().(string)
	return t, nil
}

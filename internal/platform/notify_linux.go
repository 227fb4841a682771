//go:build linux

package platform

import (
	"github.com/godbus/dbus/v5"
)

const (
	appName      = "DraWall"
	desktopEntry = "drawall"

	notifyDest  = "org.freedesktop.Notifications"
	notifyPath  = dbus.ObjectPath("/org/freedesktop/Notifications")
	notifyCall  = notifyDest + ".Notify"
	noReplaceID = uint32(0)
)

// hints maps Options onto the freedesktop notification hints.
func hints(opts Options) map[string]dbus.Variant {
	h := map[string]dbus.Variant{
		"urgency":       dbus.MakeVariant(byte(opts.Urgency)),
		"desktop-entry": dbus.MakeVariant(desktopEntry),
	}
	if opts.Urgency == UrgencyCritical {
		h["category"] = dbus.MakeVariant("transfer.error")
	} else {
		h["category"] = dbus.MakeVariant("transfer.complete")
	}
	if opts.IconPath != "" {
		h["image-path"] = dbus.MakeVariant(opts.IconPath)
	}
	return h
}

// Notify sends a notification over the session bus.
func Notify(title, body string, opts Options) error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return err
	}
	defer conn.Close()

	call := conn.Object(notifyDest, notifyPath).Call(notifyCall, 0,
		appName, noReplaceID, opts.IconPath, title, body, []string{}, hints(opts),
		int32(opts.timeout().Milliseconds()))
	return call.Err
}

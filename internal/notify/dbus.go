//go:build linux

package notify

import (
	"slices"

	"github.com/godbus/dbus/v5"
)

const (
	dbusNotifyDest      = "org.freedesktop.Notifications"
	dbusNotifyPath      = "/org/freedesktop/Notifications"
	dbusNotifyInterface = "org.freedesktop.Notifications"

	appName      = "MusicMap"
	desktopEntry = "musicmap"
)

// dbusNotifier sends notifications to the session notification server.
type dbusNotifier struct {
	obj    dbus.BusObject
	markup bool // server renders body markup
}

// New creates a Notifier that sends desktop notifications via D-Bus.
// Returns a no-op notifier if D-Bus is unavailable.
func New() (Notifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		log.Infow("desktop notifications unavailable", "error", err)
		return nopNotifier{}, nil //nolint:nilerr // graceful fallback when D-Bus unavailable
	}

	obj := conn.Object(dbusNotifyDest, dbusNotifyPath)
	return &dbusNotifier{
		obj:    obj,
		markup: hasCapability(obj, "body-markup"),
	}, nil
}

// hasCapability reports whether the server advertises capability. A server
// that does not answer supports nothing.
func hasCapability(obj dbus.BusObject, capability string) bool {
	var caps []string
	if err := obj.Call(dbusNotifyInterface+".GetCapabilities", 0).Store(&caps); err != nil {
		log.Debugw("notification capabilities unavailable", "error", err)
		return false
	}
	return slices.Contains(caps, capability)
}

// Notify sends a notification via D-Bus.
func (n *dbusNotifier) Notify(notif Notification) (uint32, error) {
	// Location names such as "Minneapolis & St. Paul" would break the
	// server's markup parser.
	body := notif.Body
	if n.markup {
		body = escapeMarkup(body)
	}

	// Notify(app_name, replaces_id, icon, summary, body, actions, hints, timeout) -> id
	call := n.obj.Call(
		dbusNotifyInterface+".Notify",
		0,                // flags
		appName,          // app_name
		notif.ReplacesID, // replaces_id
		notif.Icon,       // app_icon
		notif.Title,      // summary
		body,             // body
		[]string{},       // actions
		hints(notif),     // hints
		notif.Timeout,    // expire_timeout
	)
	if call.Err != nil {
		return 0, call.Err
	}

	var id uint32
	if err := call.Store(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// Close closes a notification by ID.
func (n *dbusNotifier) Close(id uint32) error {
	return n.obj.Call(dbusNotifyInterface+".CloseNotification", 0, id).Err
}

// hints builds the freedesktop hint map for notif.
func hints(notif Notification) map[string]dbus.Variant {
	h := map[string]dbus.Variant{
		"urgency":       dbus.MakeVariant(byte(notif.Urgency)),
		"desktop-entry": dbus.MakeVariant(desktopEntry),
	}
	if notif.Category != "" {
		h["category"] = dbus.MakeVariant(notif.Category)
	}
	if notif.Transient {
		h["transient"] = dbus.MakeVariant(true)
	}
	return h
}

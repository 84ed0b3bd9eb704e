//go:build linux

package notify

import (
	"os"
	"testing"

	"github.com/joshuajeong1/musicmap/internal/poller"
)

func TestHints(t *testing.T) {
	h := hints(ForListen(poller.Listen{Title: "Roxanne", Location: "Tempe"}))

	if got := h["urgency"].Value(); got != byte(UrgencyLow) {
		t.Errorf("urgency = %v, want %d", got, UrgencyLow)
	}
	if got := h["desktop-entry"].Value(); got != "musicmap" {
		t.Errorf("desktop-entry = %v", got)
	}
	if got := h["category"].Value(); got != "x-musicmap.listen" {
		t.Errorf("category = %v", got)
	}
	if got := h["transient"].Value(); got != true {
		t.Errorf("transient = %v, want true", got)
	}

	plain := hints(Notification{Title: "x"})
	if _, ok := plain["category"]; ok {
		t.Error("category hint set without a category")
	}
	if _, ok := plain["transient"]; ok {
		t.Error("transient hint set for a persistent notification")
	}
}

func TestNewDBusNotifier(t *testing.T) {
	if os.Getenv("DBUS_SESSION_BUS_ADDRESS") == "" {
		t.Skip("no D-Bus session available")
	}

	notifier, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if notifier == nil {
		t.Fatal("New() returned nil notifier")
	}
}

func TestAnnounce_DBus(t *testing.T) {
	if os.Getenv("DBUS_SESSION_BUS_ADDRESS") == "" {
		t.Skip("no D-Bus session available")
	}

	notifier, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if _, ok := notifier.(*dbusNotifier); !ok {
		t.Skip("notification daemon not reachable")
	}

	a := NewAnnouncer(notifier)
	if err := a.Announce(poller.Listen{Title: "MusicMap Test", Location: "Tempe"}); err != nil {
		t.Skipf("no notification server: %v", err)
	}
	if a.lastID == 0 {
		t.Error("expected a notification id")
	}
	if err := notifier.Close(a.lastID); err != nil {
		t.Errorf("Close() error: %v", err)
	}
}

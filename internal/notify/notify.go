// Package notify sends a desktop notification for every recorded listen.
package notify

import (
	"context"
	"fmt"
	"strings"

	logging "github.com/ipfs/go-log/v2"

	"github.com/joshuajeong1/musicmap/internal/poller"
)

var log = logging.Logger("notify")

// Urgency is the freedesktop notification urgency level.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

// Notification contains data for a desktop notification.
type Notification struct {
	Title      string  // Summary text (required)
	Body       string  // Body text (optional, plain text)
	Icon       string  // Path to image file or icon name (optional)
	Timeout    int32   // ms, -1 = server default, 0 = never expire
	ReplacesID uint32  // 0 = new notification, >0 = replace existing
	Urgency    Urgency // Low, Normal, Critical
	Category   string  // freedesktop category hint, "x-vendor.class" for custom ones
	Transient  bool    // keep out of the server's notification history
}

// Notifier sends desktop notifications.
type Notifier interface {
	// Notify sends a notification and returns its ID.
	// Returns 0 and nil error if notifications are unavailable.
	Notify(n Notification) (uint32, error)
	// Close closes a notification by ID.
	Close(id uint32) error
}

// nopNotifier drops every notification.
type nopNotifier struct{}

func (nopNotifier) Notify(Notification) (uint32, error) { return 0, nil }
func (nopNotifier) Close(uint32) error                  { return nil }

const (
	listenTimeout  = 5000
	listenCategory = "x-musicmap.listen"
)

var markupEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// escapeMarkup escapes s for servers that render body markup.
func escapeMarkup(s string) string {
	return markupEscaper.Replace(s)
}

// Announcer turns recorded listens into notifications. Each one replaces the
// previous so only the latest listen stays on screen.
type Announcer struct {
	notifier Notifier
	lastID   uint32
}

// NewAnnouncer creates an Announcer sending through n.
func NewAnnouncer(n Notifier) *Announcer {
	return &Announcer{notifier: n}
}

// ForListen builds the notification for l.
func ForListen(l poller.Listen) Notification {
	title := l.Title
	if l.Artist != "" {
		title = fmt.Sprintf("%s · %s", l.Title, l.Artist)
	}
	return Notification{
		Title:     title,
		Body:      "Listened in " + l.Location,
		Icon:      "audio-x-generic",
		Timeout:   listenTimeout,
		Urgency:   UrgencyLow,
		Category:  listenCategory,
		Transient: true,
	}
}

// Announce sends the notification for l.
func (a *Announcer) Announce(l poller.Listen) error {
	n := ForListen(l)
	n.ReplacesID = a.lastID
	id, err := a.notifier.Notify(n)
	if err != nil {
		return fmt.Errorf("notify: %w", err)
	}
	a.lastID = id
	return nil
}

// Run announces every listen on sub until ctx is cancelled or the
// subscription ends.
func (a *Announcer) Run(ctx context.Context, sub *poller.Subscription) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-sub.Done:
			return
		case l := <-sub.ListenRecorded:
			if err := a.Announce(l); err != nil {
				log.Debugw("listen notification failed", "title", l.Title, "error", err)
			}
		}
	}
}

//go:build linux

package nowplaying

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"
)

const (
	mprisPrefix      = "org.mpris.MediaPlayer2."
	mprisPath        = "/org/mpris/MediaPlayer2"
	mprisPlayerIface = "org.mpris.MediaPlayer2.Player"
	propertiesGet    = "org.freedesktop.DBus.Properties.Get"
)

// MPRIS samples a media player over the D-Bus session bus.
type MPRIS struct {
	conn   *dbus.Conn
	player string // configured player suffix, e.g. "spotify"; empty picks the first found

	mu      sync.Mutex
	busName string
}

// NewMPRIS connects to the session bus. player names the MPRIS player to
// follow (the part after org.mpris.MediaPlayer2.); empty follows the first
// player on the bus.
func NewMPRIS(player string) (*MPRIS, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("connect session bus: %w", err)
	}
	return &MPRIS{conn: conn, player: player}, nil
}

func (m *MPRIS) Name() string { return "mpris" }

// Close releases the bus connection.
func (m *MPRIS) Close() error {
	return m.conn.Close()
}

// Sample reads metadata, status and position of the followed player.
func (m *MPRIS) Sample(ctx context.Context) (*Sample, error) {
	obj, err := m.object(ctx)
	if err != nil {
		return nil, err
	}

	var meta dbus.Variant
	if err := obj.CallWithContext(ctx, propertiesGet, 0, mprisPlayerIface, "Metadata").Store(&meta); err != nil {
		m.forget()
		return nil, fmt.Errorf("read metadata: %w", err)
	}
	fields, ok := meta.Value().(map[string]dbus.Variant)
	if !ok {
		return nil, nil
	}

	s := parseMetadata(fields)
	if s == nil {
		return nil, nil
	}

	var status dbus.Variant
	if err := obj.CallWithContext(ctx, propertiesGet, 0, mprisPlayerIface, "PlaybackStatus").Store(&status); err == nil {
		if str, ok := status.Value().(string); ok {
			if str == "Stopped" {
				return nil, nil
			}
			s.IsPlaying = str == "Playing"
		}
	}

	var pos dbus.Variant
	if err := obj.CallWithContext(ctx, propertiesGet, 0, mprisPlayerIface, "Position").Store(&pos); err == nil {
		if us, ok := asInt64(pos.Value()); ok {
			s.Elapsed = time.Duration(us) * time.Microsecond
		}
	}

	return s, nil
}

func (m *MPRIS) Pause(ctx context.Context) error {
	return m.call(ctx, "Pause")
}

func (m *MPRIS) Resume(ctx context.Context) error {
	return m.call(ctx, "Play")
}

func (m *MPRIS) Skip(ctx context.Context, dir Direction) error {
	if dir == Previous {
		return m.call(ctx, "Previous")
	}
	return m.call(ctx, "Next")
}

func (m *MPRIS) call(ctx context.Context, method string) error {
	obj, err := m.object(ctx)
	if err != nil {
		return err
	}
	if err := obj.CallWithContext(ctx, mprisPlayerIface+"."+method, 0).Err; err != nil {
		m.forget()
		return fmt.Errorf("mpris %s: %w", strings.ToLower(method), err)
	}
	return nil
}

// object returns the followed player, looking it up on the bus when needed.
func (m *MPRIS) object(ctx context.Context) (dbus.BusObject, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.busName == "" {
		var names []string
		err := m.conn.BusObject().CallWithContext(ctx, "org.freedesktop.DBus.ListNames", 0).Store(&names)
		if err != nil {
			return nil, fmt.Errorf("list bus names: %w", err)
		}
		name, ok := pickPlayer(names, m.player)
		if !ok {
			return nil, ErrNoPlayer
		}
		m.busName = name
	}
	return m.conn.Object(m.busName, mprisPath), nil
}

// forget drops the cached bus name so the next call looks the player up again.
func (m *MPRIS) forget() {
	m.mu.Lock()
	m.busName = ""
	m.mu.Unlock()
}

// pickPlayer selects the MPRIS bus name to follow. With a preferred player
// only that player (or one of its instances) matches.
func pickPlayer(names []string, preferred string) (string, bool) {
	var players []string
	for _, n := range names {
		if strings.HasPrefix(n, mprisPrefix) {
			players = append(players, n)
		}
	}
	slices.Sort(players)

	if preferred == "" {
		if len(players) == 0 {
			return "", false
		}
		return players[0], true
	}

	want := mprisPrefix + preferred
	for _, p := range players {
		if p == want || strings.HasPrefix(p, want+".") {
			return p, true
		}
	}
	return "", false
}

// parseMetadata extracts a sample from MPRIS track metadata. Returns nil when
// the player reports no title.
func parseMetadata(fields map[string]dbus.Variant) *Sample {
	s := &Sample{}
	if v, ok := fields["xesam:title"]; ok {
		s.Title, _ = v.Value().(string)
	}
	if s.Title == "" {
		return nil
	}
	if v, ok := fields["xesam:artist"]; ok {
		switch a := v.Value().(type) {
		case []string:
			s.Artist = strings.Join(a, ", ")
		case string:
			s.Artist = a
		}
	}
	if v, ok := fields["mpris:artUrl"]; ok {
		s.AlbumArtURL, _ = v.Value().(string)
	}
	if v, ok := fields["mpris:length"]; ok {
		if us, ok := asInt64(v.Value()); ok {
			s.Duration = time.Duration(us) * time.Microsecond
		}
	}
	return s
}

// asInt64 accepts the integer widths players use for microsecond values.
func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case uint64:
		return int64(n), true //nolint:gosec // track lengths fit in int64
	case int32:
		return int64(n), true
	case uint32:
		return int64(n), true
	case float64:
		return int64(n), true
	}
	return 0, false
}

package nowplaying

import (
	"context"
	"fmt"
	"math"
	"path"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fhs/gompd/v2/mpd"
)

// MPD samples a Music Player Daemon. The connection is dialed lazily and
// redialed after any protocol error.
type MPD struct {
	addr     string
	password string

	mu     sync.Mutex
	client *mpd.Client
}

// NewMPD creates a source for the daemon at addr (host:port).
func NewMPD(addr, password string) *MPD {
	return &MPD{addr: addr, password: password}
}

func (m *MPD) Name() string { return "mpd" }

// Sample reads the player status and the current song.
func (m *MPD) Sample(ctx context.Context) (*Sample, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var status, song mpd.Attrs
	err := m.do(func(c *mpd.Client) error {
		var err error
		if status, err = c.Status(); err != nil {
			return fmt.Errorf("status: %w", err)
		}
		if song, err = c.CurrentSong(); err != nil {
			return fmt.Errorf("current song: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return parseMPD(status, song), nil
}

func (m *MPD) Pause(context.Context) error {
	return m.do(func(c *mpd.Client) error { return c.Pause(true) })
}

func (m *MPD) Resume(context.Context) error {
	return m.do(func(c *mpd.Client) error { return c.Pause(false) })
}

func (m *MPD) Skip(_ context.Context, dir Direction) error {
	return m.do(func(c *mpd.Client) error {
		if dir == Previous {
			return c.Previous()
		}
		return c.Next()
	})
}

// Close closes the daemon connection if one is open.
func (m *MPD) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.client == nil {
		return nil
	}
	err := m.client.Close()
	m.client = nil
	return err
}

// do runs fn on a connected client. The client is discarded when fn fails so
// the next call reconnects.
func (m *MPD) do(fn func(*mpd.Client) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.client == nil {
		c, err := mpd.DialAuthenticated("tcp", m.addr, m.password)
		if err != nil {
			return fmt.Errorf("dial mpd %s: %w", m.addr, err)
		}
		m.client = c
	}

	if err := fn(m.client); err != nil {
		_ = m.client.Close()
		m.client = nil
		return fmt.Errorf("mpd: %w", err)
	}
	return nil
}

// parseMPD builds a sample from MPD status and currentsong attributes.
// Returns nil when the player is stopped or has no current song.
func parseMPD(status, song mpd.Attrs) *Sample {
	state := status["state"]
	if state == "stop" || state == "" || len(song) == 0 {
		return nil
	}

	title := song["Title"]
	if title == "" && song["file"] != "" {
		base := path.Base(song["file"])
		title = strings.TrimSuffix(base, path.Ext(base))
	}
	if title == "" {
		return nil
	}

	s := &Sample{
		Title:     title,
		Artist:    song["Artist"],
		IsPlaying: state == "play",
		Elapsed:   seconds(status["elapsed"]),
		Duration:  seconds(status["duration"]),
	}

	// Older daemons only report "time" as elapsed:total in whole seconds.
	if elapsed, total, ok := strings.Cut(status["time"], ":"); ok {
		if s.Elapsed == 0 {
			s.Elapsed = seconds(elapsed)
		}
		if s.Duration == 0 {
			s.Duration = seconds(total)
		}
	}
	if s.Duration == 0 {
		s.Duration = seconds(song["duration"])
	}
	return s
}

func seconds(v string) time.Duration {
	if v == "" {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		return 0
	}
	return time.Duration(math.Round(f * float64(time.Second)))
}

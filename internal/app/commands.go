package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuajeong1/musicmap/internal/errmsg"
	"github.com/joshuajeong1/musicmap/internal/markers"
	"github.com/joshuajeong1/musicmap/internal/nowplaying"
)

const (
	// TickInterval matches the poller so the progress bar moves every second.
	TickInterval = time.Second

	controlTimeout = 5 * time.Second
	clearTimeout   = 5 * time.Second
	mapTimeout     = 2 * time.Minute
)

// TickCmd returns a command that sends a TickMsg after TickInterval.
func TickCmd() tea.Cmd {
	return tea.Tick(TickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// togglePauseCmd pauses when playing and resumes otherwise.
func togglePauseCmd(src nowplaying.Source, playing bool) tea.Cmd {
	if playing {
		return controlCmd(errmsg.OpPlaybackPause, func(ctx context.Context) error {
			return src.Pause(ctx)
		})
	}
	return controlCmd(errmsg.OpPlaybackResume, func(ctx context.Context) error {
		return src.Resume(ctx)
	})
}

func skipCmd(src nowplaying.Source, dir nowplaying.Direction) tea.Cmd {
	return controlCmd(errmsg.OpPlaybackSkip, func(ctx context.Context) error {
		return src.Skip(ctx, dir)
	})
}

func controlCmd(op errmsg.Op, fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), controlTimeout)
		defer cancel()
		return ControlDoneMsg{Op: op, Err: fn(ctx)}
	}
}

func clearCmd(store Store) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), clearTimeout)
		defer cancel()
		return ClearDoneMsg{Err: store.Clear(ctx)}
	}
}

// buildMapCmd geocodes in the background; lookups are rate limited so a
// fresh map with many locations can take a while.
func buildMapCmd(builder MapBuilder, mode markers.LabelMode, version int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), mapTimeout)
		defer cancel()
		return MapBuiltMsg{View: builder.Map(ctx, mode), Version: version}
	}
}

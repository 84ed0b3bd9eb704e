// Package nowplaying reads the currently playing track from a media source.
package nowplaying

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// NotPlayingTitle is shown when no source reports a track.
const NotPlayingTitle = "No Song Playing"

var (
	// ErrControlUnsupported is returned by sources that can only observe playback.
	ErrControlUnsupported = errors.New("playback control not supported by source")
	// ErrNoPlayer is returned when no media player could be found.
	ErrNoPlayer = errors.New("no media player found")
)

// Direction selects the track Skip moves to.
type Direction int

const (
	Next Direction = iota
	Previous
)

func (d Direction) String() string {
	if d == Previous {
		return "previous"
	}
	return "next"
}

// Sample is one observation of a source. A nil *Sample means nothing is playing.
type Sample struct {
	Title       string
	Artist      string
	AlbumArtURL string
	IsPlaying   bool
	Elapsed     time.Duration
	Duration    time.Duration
}

// Source is a media player that can be sampled and, optionally, controlled.
type Source interface {
	Sample(ctx context.Context) (*Sample, error)
	Pause(ctx context.Context) error
	Resume(ctx context.Context) error
	Skip(ctx context.Context, dir Direction) error
	Name() string
}

// Song is the observable current song.
type Song struct {
	Title       string        `json:"title"`
	Artist      string        `json:"artist"`
	AlbumArtURL string        `json:"albumArtUrl"`
	IsPlaying   bool          `json:"isPlaying"`
	Elapsed     time.Duration `json:"-"`
	Duration    time.Duration `json:"-"`
}

// NotPlaying returns the sentinel song shown when nothing is playing.
func NotPlaying() Song {
	return Song{Title: NotPlayingTitle}
}

// FromSample converts a sample to a Song. A nil sample or one without a title
// yields the NotPlaying sentinel.
func FromSample(s *Sample) Song {
	if s == nil || s.Title == "" {
		return NotPlaying()
	}
	return Song{
		Title:       s.Title,
		Artist:      s.Artist,
		AlbumArtURL: s.AlbumArtURL,
		IsPlaying:   s.IsPlaying,
		Elapsed:     s.Elapsed,
		Duration:    s.Duration,
	}
}

// IsNotPlaying reports whether s is the NotPlaying sentinel.
func (s Song) IsNotPlaying() bool {
	return s == NotPlaying()
}

// Progress renders elapsed and total time as "mm:ss / mm:ss".
func (s Song) Progress() string {
	return FormatClock(s.Elapsed) + " / " + FormatClock(s.Duration)
}

// FormatClock formats d as zero-padded minutes and seconds.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

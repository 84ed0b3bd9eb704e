package nowplaying

import (
	"context"

	"github.com/joshuajeong1/musicmap/internal/lastfm"
)

// RecentTracker returns the most recent track of a Last.fm user.
type RecentTracker interface {
	RecentTrack(user string) (*lastfm.Track, error)
}

// Lastfm follows what a Last.fm user is currently scrobbling. It can only
// observe playback.
type Lastfm struct {
	client RecentTracker
	user   string
}

// NewLastfm creates a source following user.
func NewLastfm(client RecentTracker, user string) *Lastfm {
	return &Lastfm{client: client, user: user}
}

func (l *Lastfm) Name() string { return "lastfm" }

// Sample returns the user's now-playing track, or nil when the most recent
// track has finished.
func (l *Lastfm) Sample(ctx context.Context) (*Sample, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t, err := l.client.RecentTrack(l.user)
	if err != nil {
		return nil, err
	}
	if t == nil || !t.NowPlaying || t.Title == "" {
		return nil, nil
	}
	return &Sample{
		Title:       t.Title,
		Artist:      t.Artist,
		AlbumArtURL: t.ImageURL,
		IsPlaying:   true,
	}, nil
}

func (l *Lastfm) Pause(context.Context) error { return ErrControlUnsupported }

func (l *Lastfm) Resume(context.Context) error { return ErrControlUnsupported }

func (l *Lastfm) Skip(context.Context, Direction) error { return ErrControlUnsupported }

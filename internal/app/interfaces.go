package app

import (
	"context"

	"github.com/joshuajeong1/musicmap/internal/listens"
	"github.com/joshuajeong1/musicmap/internal/markers"
	"github.com/joshuajeong1/musicmap/internal/nowplaying"
)

// Player exposes the current song and the source used for playback control.
// *poller.Poller satisfies it.
type Player interface {
	Current() nowplaying.Song
	Source() nowplaying.Source
}

// Store is the listen store as seen by the UI.
type Store interface {
	Snapshot() listens.Snapshot
	Clear(ctx context.Context) error
}

// MapBuilder builds the map view.
type MapBuilder interface {
	Map(ctx context.Context, mode markers.LabelMode) markers.MapView
}

// Deps are the services the UI reads from.
type Deps struct {
	Player Player
	Store  Store
	Maps   MapBuilder
}

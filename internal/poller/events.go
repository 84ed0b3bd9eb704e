package poller

import "github.com/joshuajeong1/musicmap/internal/nowplaying"

// SongChange is emitted when the displayed song changes title, artist or
// play state. Progress updates alone do not emit.
type SongChange struct {
	Previous nowplaying.Song
	Current  nowplaying.Song
}

// Listen is emitted after a track change was recorded in the store.
type Listen struct {
	Title    string
	Artist   string
	Location string
}

// DroppedListen is emitted when a track change could not be recorded.
type DroppedListen struct {
	Title string
	Err   error
}

package lastfm

// Track is a track from a user's listening history.
type Track struct {
	Title      string
	Artist     string
	Album      string
	ImageURL   string
	NowPlaying bool // Last.fm reports the track as currently scrobbling
}

// Image is one size variant of a Last.fm cover image.
type Image struct {
	Size string
	URL  string
}

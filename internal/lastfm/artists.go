package lastfm

import (
	"sync"

	logging "github.com/ipfs/go-log/v2"
)

var log = logging.Logger("lastfm")

// ArtistInfoer fetches artist images from Last.fm.
type ArtistInfoer interface {
	ArtistImage(artist string) (string, error)
}

// ArtistImages resolves artist names to image URLs. Found images are kept
// for the life of the process; failed lookups are retried on the next call.
type ArtistImages struct {
	client ArtistInfoer

	mu   sync.Mutex
	urls map[string]string
}

// NewArtistImages creates a lookup backed by client.
func NewArtistImages(client ArtistInfoer) *ArtistImages {
	return &ArtistImages{
		client: client,
		urls:   make(map[string]string),
	}
}

// Lookup returns the image URL for artist, or "" when there is none or the
// request fails.
func (a *ArtistImages) Lookup(artist string) string {
	if artist == "" {
		return ""
	}

	a.mu.Lock()
	url, ok := a.urls[artist]
	a.mu.Unlock()
	if ok {
		return url
	}

	url, err := a.client.ArtistImage(artist)
	if err != nil {
		log.Debugw("artist image lookup failed", "artist", artist, "error", err)
		return ""
	}
	if url == "" {
		return ""
	}

	a.mu.Lock()
	a.urls[artist] = url
	a.mu.Unlock()
	return url
}

package lastfm

import (
	"errors"
	"fmt"

	"github.com/shkh/lastfm-go/lastfm"
)

// ErrNoUsername is returned when a user query is made without a username.
var ErrNoUsername = errors.New("no last.fm username configured")

// Client wraps the read-only parts of the Last.fm API.
type Client struct {
	api    *lastfm.Api
	apiKey string
}

// New creates a new Last.fm client with the given API credentials.
func New(apiKey, apiSecret string) *Client {
	return &Client{
		api:    lastfm.New(apiKey, apiSecret),
		apiKey: apiKey,
	}
}

// HasKey reports whether an API key was configured.
func (c *Client) HasKey() bool {
	return c.apiKey != ""
}

// RecentTrack returns the most recent track in user's history, or nil when the
// history is empty. The track's NowPlaying flag is set while it is playing.
func (c *Client) RecentTrack(user string) (*Track, error) {
	if user == "" {
		return nil, ErrNoUsername
	}

	result, err := c.api.User.GetRecentTracks(lastfm.P{
		"user":  user,
		"limit": 1,
	})
	if err != nil {
		return nil, fmt.Errorf("get recent tracks: %w", err)
	}
	if len(result.Tracks) == 0 {
		return nil, nil
	}

	t := result.Tracks[0]
	images := make([]Image, 0, len(t.Images))
	for _, img := range t.Images {
		images = append(images, Image{Size: img.Size, URL: img.Url})
	}

	return &Track{
		Title:      t.Name,
		Artist:     t.Artist.Name,
		Album:      t.Album.Name,
		ImageURL:   largestImage(images),
		NowPlaying: t.NowPlaying == "true",
	}, nil
}

// ArtistImage returns the largest image Last.fm has for artist, or "" when it
// has none.
func (c *Client) ArtistImage(artist string) (string, error) {
	result, err := c.api.Artist.GetInfo(lastfm.P{
		"artist":      artist,
		"autocorrect": 1,
	})
	if err != nil {
		return "", fmt.Errorf("get artist info: %w", err)
	}

	images := make([]Image, 0, len(result.Images))
	for _, img := range result.Images {
		images = append(images, Image{Size: img.Size, URL: img.Url})
	}
	return largestImage(images), nil
}

// imageSizes ranks Last.fm image size names from largest to smallest.
var imageSizes = []string{"mega", "extralarge", "large", "medium", "small"}

// largestImage picks the biggest non-empty image URL.
func largestImage(images []Image) string {
	for _, size := range imageSizes {
		for _, img := range images {
			if img.Size == size && img.URL != "" {
				return img.URL
			}
		}
	}
	for _, img := range images {
		if img.URL != "" {
			return img.URL
		}
	}
	return ""
}

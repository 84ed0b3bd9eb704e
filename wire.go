package main

import (
	"fmt"

	"github.com/joshuajeong1/musicmap/internal/config"
	"github.com/joshuajeong1/musicmap/internal/geo"
	"github.com/joshuajeong1/musicmap/internal/httpapi"
	"github.com/joshuajeong1/musicmap/internal/lastfm"
	"github.com/joshuajeong1/musicmap/internal/location"
	"github.com/joshuajeong1/musicmap/internal/nowplaying"
)

// source is a now playing source that holds a connection.
type source interface {
	nowplaying.Source
	Close() error
}

type nopCloser struct {
	nowplaying.Source
}

func (nopCloser) Close() error { return nil }

func newSource(cfg *config.Config) (source, error) {
	src := cfg.GetSourceConfig()
	switch src.Kind {
	case "mpris":
		m, err := nowplaying.NewMPRIS(src.MPRIS.Player)
		if err != nil {
			return nil, err
		}
		return m, nil
	case "mpd":
		return nowplaying.NewMPD(src.MPD.Address, src.MPD.Password), nil
	case "lastfm":
		client := lastfm.New(cfg.Lastfm.APIKey, cfg.Lastfm.APISecret)
		return nopCloser{nowplaying.NewLastfm(client, src.Lastfm.Username)}, nil
	default:
		return nil, fmt.Errorf("unknown source %q", src.Kind)
	}
}

func newResolver(cfg *config.Config, reverser geo.Reverser) (location.Resolver, error) {
	loc := cfg.GetLocationConfig()
	switch loc.Provider {
	case "ipapi":
		return location.NewIPAPI(loc.IPAPIURL), nil
	case "static":
		return location.Static{City: loc.City}, nil
	case "reverse":
		var pos location.Positioner = location.NewIPAPI(loc.IPAPIURL)
		if loc.Lat != nil && loc.Lon != nil {
			pos = location.Fixed{Lat: *loc.Lat, Lon: *loc.Lon}
		}
		return location.Reverse{Position: pos, Reverser: reverser}, nil
	default:
		return nil, fmt.Errorf("unknown location provider %q", loc.Provider)
	}
}

// newArtistImages returns the Last.fm artist image lookup, or nil without an
// API key.
func newArtistImages(cfg *config.Config) httpapi.ArtistImages {
	if !cfg.HasLastfmConfig() {
		return nil
	}
	return lastfm.NewArtistImages(lastfm.New(cfg.Lastfm.APIKey, cfg.Lastfm.APISecret))
}

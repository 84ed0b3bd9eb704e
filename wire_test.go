package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuajeong1/musicmap/internal/config"
	"github.com/joshuajeong1/musicmap/internal/geo"
	"github.com/joshuajeong1/musicmap/internal/location"
)

func ptr(f float64) *float64 { return &f }

func TestNewSource(t *testing.T) {
	cfg := &config.Config{}
	cfg.Source.Kind = "mpd"
	cfg.Source.MPD.Address = "music.local:6600"

	src, err := newSource(cfg)
	require.NoError(t, err)
	assert.Equal(t, "mpd", src.Name())
	assert.NoError(t, src.Close())

	cfg.Source.Kind = "lastfm"
	cfg.Source.Lastfm.Username = "rj"
	cfg.Lastfm.APIKey = "key"
	src, err = newSource(cfg)
	require.NoError(t, err)
	assert.Equal(t, "lastfm", src.Name())
	assert.NoError(t, src.Close())

	cfg.Source.Kind = "winamp"
	_, err = newSource(cfg)
	assert.Error(t, err)
}

func TestNewArtistImages(t *testing.T) {
	cfg := &config.Config{}
	assert.Nil(t, newArtistImages(cfg))

	cfg.Lastfm.APIKey = "key"
	assert.NotNil(t, newArtistImages(cfg))
}

func TestNewResolver(t *testing.T) {
	nominatim := geo.NewNominatim("")

	tests := []struct {
		name  string
		setup func(*config.Config)
		check func(t *testing.T, r location.Resolver)
	}{
		{
			name:  "default is ip-api",
			setup: func(*config.Config) {},
			check: func(t *testing.T, r location.Resolver) {
				assert.IsType(t, &location.IPAPI{}, r)
			},
		},
		{
			name: "static city",
			setup: func(c *config.Config) {
				c.Location.Provider = "static"
				c.Location.City = "Tempe"
			},
			check: func(t *testing.T, r location.Resolver) {
				assert.Equal(t, location.Static{City: "Tempe"}, r)
			},
		},
		{
			name: "reverse with fixed position",
			setup: func(c *config.Config) {
				c.Location.Provider = "reverse"
				c.Location.Lat = ptr(33.4255)
				c.Location.Lon = ptr(-111.94)
			},
			check: func(t *testing.T, r location.Resolver) {
				rev, ok := r.(location.Reverse)
				require.True(t, ok)
				assert.Equal(t, location.Fixed{Lat: 33.4255, Lon: -111.94}, rev.Position)
			},
		},
		{
			name: "reverse without position uses ip-api",
			setup: func(c *config.Config) {
				c.Location.Provider = "reverse"
			},
			check: func(t *testing.T, r location.Resolver) {
				rev, ok := r.(location.Reverse)
				require.True(t, ok)
				assert.IsType(t, &location.IPAPI{}, rev.Position)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			tt.setup(cfg)
			r, err := newResolver(cfg, nominatim)
			require.NoError(t, err)
			tt.check(t, r)
		})
	}
}

func TestApplyFlags(t *testing.T) {
	cfg := &config.Config{}
	cfg.HTTP.Listen = "127.0.0.1:1"
	applyFlags(cfg, options{listen: "127.0.0.1:8089", logLevel: "debug"})

	assert.Equal(t, "127.0.0.1:8089", cfg.HTTP.Listen)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Empty(t, cfg.Source.Kind)
}

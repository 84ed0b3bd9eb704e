package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Default fallback map center (Tempe, AZ).
const (
	DefaultFallbackLat = 33.4255
	DefaultFallbackLon = -111.9400
)

type Config struct {
	// Where now-playing samples come from
	Source SourceConfig `koanf:"source"`

	// Last.fm API credentials (required by the lastfm source)
	Lastfm LastfmConfig `koanf:"lastfm"`

	// How the current city is resolved
	Location LocationConfig `koanf:"location"`

	// Geocoding for map markers
	Geocoder GeocoderConfig `koanf:"geocoder"`

	Map      MapConfig      `koanf:"map"`
	Database DatabaseConfig `koanf:"database"`
	HTTP     HTTPConfig     `koanf:"http"`
	Log      LogConfig      `koanf:"log"`
	UI       UIConfig       `koanf:"ui"`
	Notify   NotifyConfig   `koanf:"notify"`
}

// SourceConfig selects the now-playing source.
type SourceConfig struct {
	Kind   string             `koanf:"kind"` // "mpris", "mpd", or "lastfm" (default: "mpris")
	MPRIS  MPRISConfig        `koanf:"mpris"`
	MPD    MPDConfig          `koanf:"mpd"`
	Lastfm LastfmSourceConfig `koanf:"lastfm"`
}

type MPRISConfig struct {
	Player string `koanf:"player"` // e.g., "spotify"; empty follows the first player found
}

type MPDConfig struct {
	Address  string `koanf:"address"` // host:port (default: "localhost:6600")
	Password string `koanf:"password"`
}

type LastfmSourceConfig struct {
	Username string `koanf:"username"`
}

// LastfmConfig holds Last.fm API credentials.
type LastfmConfig struct {
	APIKey    string `koanf:"api_key"`
	APISecret string `koanf:"api_secret"`
}

// LocationConfig selects the location provider.
type LocationConfig struct {
	Provider string   `koanf:"provider"` // "ipapi", "static", or "reverse" (default: "ipapi")
	City     string   `koanf:"city"`     // used by "static"
	Lat      *float64 `koanf:"lat"`      // fixed position for "reverse"; unset uses ip-api
	Lon      *float64 `koanf:"lon"`
	IPAPIURL string   `koanf:"ipapi_url"`
}

// GeocoderConfig configures the Nominatim geocoder and its cache.
type GeocoderConfig struct {
	URL          string `koanf:"url"`            // Nominatim base URL (default: public instance)
	CacheTTLDays int    `koanf:"cache_ttl_days"` // default: 30
}

// MapConfig holds the map center used when there are no markers.
type MapConfig struct {
	FallbackLat *float64 `koanf:"fallback_lat"`
	FallbackLon *float64 `koanf:"fallback_lon"`
}

type DatabaseConfig struct {
	Path string `koanf:"path"` // empty uses the XDG data dir
}

type HTTPConfig struct {
	Listen string `koanf:"listen"` // e.g., "127.0.0.1:8089"; empty disables the API
}

type LogConfig struct {
	Level string `koanf:"level"` // debug, info, warn, error (default: "info")
	File  string `koanf:"file"`  // empty uses the XDG state dir in TUI mode
}

type UIConfig struct {
	Icons string `koanf:"icons"` // "nerd", "unicode", or "none" (default: "none")
}

// NotifyConfig controls desktop notifications for recorded listens.
type NotifyConfig struct {
	Enabled bool `koanf:"enabled"`
}

// envOverrides are read from MUSICMAP_* environment variables and take
// precedence over config files.
type envOverrides struct {
	SourceKind      string `env:"SOURCE"`
	MPRISPlayer     string `env:"MPRIS_PLAYER"`
	MPDAddress      string `env:"MPD_ADDRESS"`
	MPDPassword     string `env:"MPD_PASSWORD"`
	LastfmUsername  string `env:"LASTFM_USERNAME"`
	LastfmAPIKey    string `env:"LASTFM_API_KEY"`
	LastfmAPISecret string `env:"LASTFM_API_SECRET"`
	LocationCity    string `env:"CITY"`
	DatabasePath    string `env:"DB_PATH"`
	HTTPListen      string `env:"HTTP_LISTEN"`
	LogLevel        string `env:"LOG_LEVEL"`
	Icons           string `env:"ICONS"`
	Notify          *bool  `env:"NOTIFY"`
}

const envPrefix = "MUSICMAP_"

// Load reads the config files, then an optional explicit file, then
// environment overrides. An explicit file must exist.
func Load(explicit string) (*Config, error) {
	paths := getConfigPaths()
	if explicit != "" {
		explicit = expandPath(explicit)
		if _, err := os.Stat(explicit); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
		paths = append(paths, explicit)
	}
	return load(paths)
}

func load(paths []string) (*Config, error) {
	k := koanf.New(".")

	// Later files win
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("load %s: %w", path, err)
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if cfg.Database.Path != "" {
		cfg.Database.Path = expandPath(cfg.Database.Path)
	}
	if cfg.Log.File != "" {
		cfg.Log.File = expandPath(cfg.Log.File)
	}
	cfg.Geocoder.URL = strings.TrimSuffix(cfg.Geocoder.URL, "/")

	return cfg, nil
}

func (c *Config) applyEnv() error {
	var o envOverrides
	if err := env.ParseWithOptions(&o, env.Options{Prefix: envPrefix}); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}

	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&c.Source.Kind, o.SourceKind)
	set(&c.Source.MPRIS.Player, o.MPRISPlayer)
	set(&c.Source.MPD.Address, o.MPDAddress)
	set(&c.Source.MPD.Password, o.MPDPassword)
	set(&c.Source.Lastfm.Username, o.LastfmUsername)
	set(&c.Lastfm.APIKey, o.LastfmAPIKey)
	set(&c.Lastfm.APISecret, o.LastfmAPISecret)
	set(&c.Database.Path, o.DatabasePath)
	set(&c.HTTP.Listen, o.HTTPListen)
	set(&c.Log.Level, o.LogLevel)
	set(&c.UI.Icons, o.Icons)
	if o.Notify != nil {
		c.Notify.Enabled = *o.Notify
	}
	if o.LocationCity != "" {
		c.Location.City = o.LocationCity
		if c.Location.Provider == "" {
			c.Location.Provider = "static"
		}
	}
	return nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/musicmap/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "musicmap", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// HasLastfmConfig returns true if a Last.fm API key is configured.
func (c *Config) HasLastfmConfig() bool {
	return c.Lastfm.APIKey != ""
}

// HasHTTP returns true if the HTTP API should be served.
func (c *Config) HasHTTP() bool {
	return c.HTTP.Listen != ""
}

// GetSourceConfig returns the source configuration with defaults applied.
func (c *Config) GetSourceConfig() SourceConfig {
	cfg := c.Source
	if cfg.Kind == "" {
		cfg.Kind = "mpris"
	}
	if cfg.MPD.Address == "" {
		cfg.MPD.Address = "localhost:6600"
	}
	return cfg
}

// GetLocationConfig returns the location configuration with defaults applied.
func (c *Config) GetLocationConfig() LocationConfig {
	cfg := c.Location
	if cfg.Provider == "" {
		cfg.Provider = "ipapi"
	}
	return cfg
}

// GetGeocoderConfig returns the geocoder configuration with defaults applied.
func (c *Config) GetGeocoderConfig() GeocoderConfig {
	cfg := c.Geocoder
	if cfg.CacheTTLDays <= 0 {
		cfg.CacheTTLDays = 30
	}
	return cfg
}

// GetMapFallback returns the map center used when there are no markers.
func (c *Config) GetMapFallback() (lat, lon float64) {
	lat, lon = DefaultFallbackLat, DefaultFallbackLon
	if c.Map.FallbackLat != nil {
		lat = *c.Map.FallbackLat
	}
	if c.Map.FallbackLon != nil {
		lon = *c.Map.FallbackLon
	}
	return lat, lon
}

// GetLogConfig returns the log configuration with defaults applied.
func (c *Config) GetLogConfig() LogConfig {
	cfg := c.Log
	if cfg.Level == "" {
		cfg.Level = "info"
	}
	return cfg
}

// Validate reports configuration that cannot work.
func (c *Config) Validate() error {
	var errs []error

	src := c.GetSourceConfig()
	switch src.Kind {
	case "mpris", "mpd":
	case "lastfm":
		if src.Lastfm.Username == "" {
			errs = append(errs, errors.New("source.lastfm.username is required for the lastfm source"))
		}
		if !c.HasLastfmConfig() {
			errs = append(errs, errors.New("lastfm.api_key is required for the lastfm source"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown source.kind %q (want mpris, mpd or lastfm)", src.Kind))
	}

	loc := c.GetLocationConfig()
	switch loc.Provider {
	case "ipapi":
	case "static":
		if loc.City == "" {
			errs = append(errs, errors.New("location.city is required for the static provider"))
		}
	case "reverse":
		if (loc.Lat == nil) != (loc.Lon == nil) {
			errs = append(errs, errors.New("location.lat and location.lon must be set together"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown location.provider %q (want ipapi, static or reverse)", loc.Provider))
	}

	switch c.UI.Icons {
	case "", "nerd", "unicode", "none":
	default:
		errs = append(errs, fmt.Errorf("unknown ui.icons %q (want nerd, unicode or none)", c.UI.Icons))
	}

	return errors.Join(errs...)
}

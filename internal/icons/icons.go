// Package icons provides the glyphs prefixed to tracks, artists and places.
package icons

// Style represents the icon style to use.
type Style string

const (
	StyleNerd    Style = "nerd"
	StyleUnicode Style = "unicode"
	StyleNone    Style = "none"
)

// Icons holds the icon characters for the current style.
type Icons struct {
	Track    string
	Artist   string
	Location string
	Playing  string
	Paused   string
}

var (
	nerdIcons = Icons{
		Track:    "\uf001 ", // nf-fa-music
		Artist:   "\uf007 ", // nf-fa-user
		Location: "\uf041 ", // nf-fa-map_marker
		Playing:  "\uf04b",  // nf-fa-play
		Paused:   "\uf04c",  // nf-fa-pause
	}

	unicodeIcons = Icons{
		Track:    "🎵 ",
		Artist:   "👤 ",
		Location: "📍 ",
		Playing:  "▶",
		Paused:   "⏸",
	}

	noneIcons = Icons{
		Playing: "▶",
		Paused:  "⏸",
	}

	current = noneIcons
)

// Init selects the icon set. Call this once at startup with the config value.
// Unknown styles fall back to none.
func Init(style string) {
	switch Style(style) {
	case StyleNerd:
		current = nerdIcons
	case StyleUnicode:
		current = unicodeIcons
	default:
		current = noneIcons
	}
}

// FormatTrack formats a track title with the appropriate icon.
func FormatTrack(title string) string {
	return current.Track + title
}

// FormatArtist formats an artist name with the appropriate icon.
func FormatArtist(name string) string {
	return current.Artist + name
}

// FormatLocation formats a location name with the appropriate icon.
func FormatLocation(name string) string {
	return current.Location + name
}

// Status returns the play or pause glyph.
func Status(playing bool) string {
	if playing {
		return current.Playing
	}
	return current.Paused
}

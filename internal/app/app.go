// Package app is the terminal user interface: now playing, listening habits,
// per-location statistics and the map.
package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuajeong1/musicmap/internal/keymap"
	"github.com/joshuajeong1/musicmap/internal/listens"
	"github.com/joshuajeong1/musicmap/internal/markers"
	"github.com/joshuajeong1/musicmap/internal/nowplaying"
	"github.com/joshuajeong1/musicmap/internal/ui/headerbar"
)

// Model is the root application model containing all state.
type Model struct {
	Page   headerbar.Page
	Width  int
	Height int

	Song    nowplaying.Song
	Listens listens.Snapshot

	// Locations page
	Cursor   int
	Selected string // location whose detail is open, "" for the list
	InDetail bool

	// Map page
	LabelMode  markers.LabelMode
	MapView    *markers.MapView
	MapLoading bool
	mapVersion int
	mapBuiltAt int64 // total plays the current map was built from

	ConfirmClear bool
	ErrorMsg     string
	StatusMsg    string

	player Player
	store  Store
	maps   MapBuilder
	keys   *keymap.Resolver
}

// New creates the application model. The first refresh happens on Init.
func New(deps Deps) Model {
	m := Model{
		player: deps.Player,
		store:  deps.Store,
		maps:   deps.Maps,
		keys:   keymap.NewResolver(keymap.All),
		Song:   nowplaying.NotPlaying(),
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return TickCmd()
}

// refresh copies the latest song and listen snapshot into the model.
func (m *Model) refresh() {
	m.Song = m.player.Current()
	m.Listens = m.store.Snapshot()
	if n := len(m.Listens.Locations); m.Cursor >= n {
		m.Cursor = max(n-1, 0)
	}
	if m.InDetail && !m.hasLocation(m.Selected) {
		m.InDetail = false
		m.Selected = ""
	}
}

func (m Model) hasLocation(loc string) bool {
	for _, l := range m.Listens.Locations {
		if l == loc {
			return true
		}
	}
	return false
}

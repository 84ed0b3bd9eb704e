package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuajeong1/musicmap/internal/keymap"
	"github.com/joshuajeong1/musicmap/internal/nowplaying"
	"github.com/joshuajeong1/musicmap/internal/ui/headerbar"
)

// handleKey routes a key press. A pending clear confirmation swallows the
// next key: y clears, anything else cancels.
func (m Model) handleKey(key string) (tea.Model, tea.Cmd) {
	if m.ConfirmClear {
		m.ConfirmClear = false
		if m.keys.Resolve(key) == keymap.ActionConfirm {
			return m, clearCmd(m.store)
		}
		m.StatusMsg = "Clear cancelled"
		return m, nil
	}

	action := m.keys.Resolve(key)
	if model, cmd, ok := m.handleGlobal(action); ok {
		return model, cmd
	}
	if model, cmd, ok := m.handlePlayback(action); ok {
		return model, cmd
	}

	switch m.Page {
	case headerbar.PageLocations:
		return m.handleLocations(action), nil
	case headerbar.PageMap:
		return m.handleMap(action)
	}
	return m, nil
}

func (m Model) handleGlobal(action keymap.Action) (tea.Model, tea.Cmd, bool) {
	switch action {
	case keymap.ActionQuit:
		return m, tea.Quit, true
	case keymap.ActionNextPage:
		model, cmd := m.setPage(m.Page.Next())
		return model, cmd, true
	case keymap.ActionPrevPage:
		model, cmd := m.setPage(m.Page.Prev())
		return model, cmd, true
	case keymap.ActionPageNowPlaying:
		model, cmd := m.setPage(headerbar.PageNowPlaying)
		return model, cmd, true
	case keymap.ActionPageHabits:
		model, cmd := m.setPage(headerbar.PageHabits)
		return model, cmd, true
	case keymap.ActionPageLocations:
		model, cmd := m.setPage(headerbar.PageLocations)
		return model, cmd, true
	case keymap.ActionPageMap:
		model, cmd := m.setPage(headerbar.PageMap)
		return model, cmd, true
	case keymap.ActionClearData:
		m.ConfirmClear = true
		m.StatusMsg = ""
		return m, nil, true
	}
	return m, nil, false
}

func (m Model) handlePlayback(action keymap.Action) (tea.Model, tea.Cmd, bool) {
	src := m.player.Source()
	switch action {
	case keymap.ActionPlayPause:
		return m, togglePauseCmd(src, m.Song.IsPlaying), true
	case keymap.ActionNextTrack:
		return m, skipCmd(src, nowplaying.Next), true
	case keymap.ActionPrevTrack:
		return m, skipCmd(src, nowplaying.Previous), true
	}
	return m, nil, false
}

func (m Model) handleLocations(action keymap.Action) Model {
	if m.InDetail {
		if action == keymap.ActionBack {
			m.InDetail = false
			m.Selected = ""
		}
		return m
	}

	n := len(m.Listens.Locations)
	switch action {
	case keymap.ActionMoveUp:
		if m.Cursor > 0 {
			m.Cursor--
		}
	case keymap.ActionMoveDown:
		if m.Cursor < n-1 {
			m.Cursor++
		}
	case keymap.ActionSelect:
		if n > 0 {
			m.Selected = m.Listens.Locations[m.Cursor]
			m.InDetail = true
		}
	}
	return m
}

func (m Model) handleMap(action keymap.Action) (tea.Model, tea.Cmd) {
	switch action {
	case keymap.ActionToggleLabels:
		m.LabelMode = m.LabelMode.Toggle()
		cmd := m.rebuildMap()
		return m, cmd
	case keymap.ActionRefreshMap:
		cmd := m.rebuildMap()
		return m, cmd
	}
	return m, nil
}

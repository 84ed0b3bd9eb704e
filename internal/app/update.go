package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuajeong1/musicmap/internal/errmsg"
	"github.com/joshuajeong1/musicmap/internal/ui/headerbar"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case TickMsg:
		m.refresh()
		cmd := m.maybeRebuildMap()
		return m, tea.Batch(TickCmd(), cmd)

	case tea.KeyMsg:
		return m.handleKey(msg.String())

	case ControlDoneMsg:
		if msg.Err != nil {
			m.ErrorMsg = errmsg.Format(msg.Op, msg.Err)
			return m, nil
		}
		m.ErrorMsg = ""
		m.refresh()
		return m, nil

	case ClearDoneMsg:
		if msg.Err != nil {
			m.ErrorMsg = errmsg.Format(errmsg.OpListensClear, msg.Err)
			return m, nil
		}
		m.ErrorMsg = ""
		m.StatusMsg = "Listening data cleared"
		m.Cursor = 0
		m.InDetail = false
		m.Selected = ""
		m.refresh()
		m.MapView = nil
		m.MapLoading = false
		m.mapVersion++
		cmd := m.maybeRebuildMap()
		return m, cmd

	case MapBuiltMsg:
		if msg.Version != m.mapVersion {
			return m, nil
		}
		view := msg.View
		m.MapView = &view
		m.MapLoading = false
		return m, nil
	}

	return m, nil
}

// rebuildMap starts a map build, superseding any build in flight.
func (m *Model) rebuildMap() tea.Cmd {
	m.mapVersion++
	m.MapLoading = true
	m.mapBuiltAt = m.Listens.TotalPlays()
	return buildMapCmd(m.maps, m.LabelMode, m.mapVersion)
}

// maybeRebuildMap refreshes the map while it is visible and the store has
// changed since the last build.
func (m *Model) maybeRebuildMap() tea.Cmd {
	if m.Page != headerbar.PageMap || m.MapLoading {
		return nil
	}
	if m.MapView != nil && m.mapBuiltAt == m.Listens.TotalPlays() {
		return nil
	}
	return m.rebuildMap()
}

func (m Model) setPage(p headerbar.Page) (tea.Model, tea.Cmd) {
	m.Page = p
	m.StatusMsg = ""
	cmd := m.maybeRebuildMap()
	return m, cmd
}

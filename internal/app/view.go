package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/joshuajeong1/musicmap/internal/keymap"
	"github.com/joshuajeong1/musicmap/internal/ui/headerbar"
	"github.com/joshuajeong1/musicmap/internal/ui/render"
	"github.com/joshuajeong1/musicmap/internal/ui/styles"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	footerHeight  = 2
)

// View implements tea.Model.
func (m Model) View() string {
	width, height := m.Width, m.Height
	if width == 0 || height == 0 {
		width, height = defaultWidth, defaultHeight
	}

	bodyHeight := max(height-headerbar.Height-1-footerHeight, 3)
	var body string
	switch m.Page {
	case headerbar.PageNowPlaying:
		body = m.viewNowPlaying(width)
	case headerbar.PageHabits:
		body = m.viewHabits(width)
	case headerbar.PageLocations:
		body = m.viewLocations(width, bodyHeight)
	case headerbar.PageMap:
		body = m.viewMap(width, bodyHeight)
	}

	body = lipgloss.NewStyle().Height(bodyHeight).MaxHeight(bodyHeight).Render(body)

	return strings.Join([]string{
		headerbar.Render(m.Page, width),
		styles.T().S().Subtle.Render(render.Separator(width)),
		body,
		m.viewStatus(width),
		m.viewHelp(width),
	}, "\n")
}

func (m Model) viewStatus(width int) string {
	s := styles.T().S()
	switch {
	case m.ConfirmClear:
		return s.Warning.Render(render.Truncate("Clear all listening data? Press y to confirm, any other key to cancel.", width))
	case m.ErrorMsg != "":
		return s.Error.Render(render.Truncate(m.ErrorMsg, width))
	case m.StatusMsg != "":
		return s.Success.Render(render.Truncate(m.StatusMsg, width))
	}
	return ""
}

func (m Model) viewHelp(width int) string {
	help := keymap.Help("playback")
	switch m.Page {
	case headerbar.PageLocations:
		help += " · " + keymap.Help("locations")
	case headerbar.PageMap:
		help += " · " + keymap.Help("map")
	}
	help += " · C clear · q quit"
	return styles.T().S().Muted.Render(render.Truncate(help, width))
}

// panel wraps content in the page border, sized to width.
func panel(content string, width int) string {
	return styles.T().S().Panel.Width(max(width-2, 10)).Render(content)
}

func heading(s string) string {
	return styles.T().S().Heading.Render(s)
}

func plays(n int64) string {
	if n == 1 {
		return "1 play"
	}
	return humanize.Comma(n) + " plays"
}

func playedTimes(n int64) string {
	if n == 1 {
		return "Played 1 time"
	}
	return "Played " + humanize.Comma(n) + " times"
}

func locationName(loc string) string {
	if loc == "" {
		return "Unknown"
	}
	return loc
}

// Package headerbar renders the page tabs at the top of the screen.
package headerbar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Height is the fixed height of the header bar (single line).
const Height = 1

// Page identifies one of the top-level pages.
type Page int

const (
	PageNowPlaying Page = iota
	PageHabits
	PageLocations
	PageMap
)

// Pages lists the pages in tab order.
var Pages = []Page{PageNowPlaying, PageHabits, PageLocations, PageMap}

type tab struct {
	key  string
	name string
}

var tabs = map[Page]tab{
	PageNowPlaying: {"F1", "Now Playing"},
	PageHabits:     {"F2", "Habits"},
	PageLocations:  {"F3", "Locations"},
	PageMap:        {"F4", "Map"},
}

func (p Page) String() string {
	if t, ok := tabs[p]; ok {
		return t.name
	}
	return "unknown"
}

// Next returns the page after p, wrapping around.
func (p Page) Next() Page {
	return Pages[(int(p)+1)%len(Pages)]
}

// Prev returns the page before p, wrapping around.
func (p Page) Prev() Page {
	return Pages[(int(p)+len(Pages)-1)%len(Pages)]
}

var (
	activeKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	activeNameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	inactiveKeyStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("244"))

	inactiveNameStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("250"))

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// Render returns the header bar for the given width with current highlighted.
func Render(current Page, width int) string {
	if width < 20 {
		return ""
	}

	parts := make([]string, 0, len(Pages))
	separator := separatorStyle.Render(" │ ")

	for _, p := range Pages {
		t := tabs[p]
		keyStyle, nameStyle := inactiveKeyStyle, inactiveNameStyle
		if p == current {
			keyStyle, nameStyle = activeKeyStyle, activeNameStyle
		}
		parts = append(parts, keyStyle.Render(t.key)+" "+nameStyle.Render(t.name))
	}

	content := strings.Join(parts, separator)

	contentWidth := lipgloss.Width(content)
	if contentWidth < width {
		padLeft := (width - contentWidth) / 2
		content = strings.Repeat(" ", padLeft) + content
	}

	return content
}

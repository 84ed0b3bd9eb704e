package app

import (
	"strings"

	"github.com/joshuajeong1/musicmap/internal/icons"
	"github.com/joshuajeong1/musicmap/internal/stats"
	"github.com/joshuajeong1/musicmap/internal/ui/render"
	"github.com/joshuajeong1/musicmap/internal/ui/styles"
)

func (m Model) viewLocations(width, height int) string {
	if m.InDetail {
		return m.viewLocationDetail(width)
	}

	s := styles.T().S()
	locs := m.Listens.Locations
	if len(locs) == 0 {
		return panel(s.Muted.Render("No locations yet. Listen to something!"), width)
	}

	inner := max(width-6, 10)
	rows := max(height-2, 1)
	start := visibleStart(m.Cursor, len(locs), rows)
	end := min(start+rows, len(locs))

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		name := render.Truncate(icons.FormatLocation(locationName(locs[i])), inner-12)
		row := render.Row(name, plays(stats.TotalPlays(m.Listens.Records, locs[i])), inner)
		if i == m.Cursor {
			row = s.Cursor.Render(row)
		} else {
			row = s.Base.Render(row)
		}
		lines = append(lines, row)
	}
	return panel(strings.Join(lines, "\n"), width)
}

// visibleStart returns the first row to draw so cursor stays on screen.
func visibleStart(cursor, total, rows int) int {
	if total <= rows {
		return 0
	}
	start := max(cursor-rows/2, 0)
	return min(start, total-rows)
}

func (m Model) viewLocationDetail(width int) string {
	s := styles.T().S()
	sum := stats.Summarize(m.Listens.Records, m.Selected)

	lines := []string{
		s.Playing.Render(icons.FormatLocation(locationName(m.Selected))),
		s.Muted.Render(plays(sum.TotalPlays) + " here"),
		"",
	}
	lines = append(lines, summaryLines(sum, max(width-6, 10))...)
	return panel(strings.Join(lines, "\n"), width)
}

package app

import (
	"strings"

	"github.com/joshuajeong1/musicmap/internal/ui/mapview"
	"github.com/joshuajeong1/musicmap/internal/ui/styles"
)

func (m Model) viewMap(width, height int) string {
	s := styles.T().S()
	title := s.Title.Render("Labels: " + m.LabelMode.String())
	if m.MapLoading {
		title += s.Muted.Render("  (updating…)")
	}

	if m.MapView == nil {
		return panel(title+"\n\n"+s.Muted.Render("Locating your listening spots…"), width)
	}

	legend := mapview.Legend(*m.MapView, width-6)
	legendHeight := strings.Count(legend, "\n") + 1
	gridHeight := max(height-legendHeight-5, 3)

	parts := []string{
		title,
		mapview.Render(*m.MapView, max(width-6, 10), gridHeight),
		s.Subtle.Render(mapview.Caption(m.MapView.Region)),
		legend,
	}
	return panel(strings.Join(parts, "\n"), width)
}

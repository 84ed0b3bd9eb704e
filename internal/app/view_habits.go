package app

import (
	"strings"

	"github.com/joshuajeong1/musicmap/internal/icons"
	"github.com/joshuajeong1/musicmap/internal/stats"
	"github.com/joshuajeong1/musicmap/internal/ui/render"
	"github.com/joshuajeong1/musicmap/internal/ui/styles"
)

const noData = "No Data!"

func (m Model) viewHabits(width int) string {
	sum := stats.Summarize(m.Listens.Records, stats.AllLocations)
	lines := summaryLines(sum, max(width-6, 10))

	s := styles.T().S()
	lines = append(lines, "", heading("Top Location"))
	if sum.TopLocation == nil || sum.TopLocation.Plays == 0 {
		lines = append(lines, s.Muted.Render(noData))
	} else {
		lines = append(lines,
			s.Title.Render("Most listened in: "+icons.FormatLocation(locationName(sum.TopLocation.Location))),
			s.Muted.Render(plays(sum.TopLocation.Plays)),
		)
	}

	return panel(strings.Join(lines, "\n"), width)
}

// summaryLines renders the top song and top artist sections of sum.
func summaryLines(sum stats.Summary, width int) []string {
	s := styles.T().S()
	lines := []string{heading("Top Song")}
	if sum.TopTrack.Title == "" {
		lines = append(lines, s.Muted.Render(noData))
	} else {
		lines = append(lines,
			s.Title.Render(render.Truncate(icons.FormatTrack(sum.TopTrack.Title), width)),
			s.Base.Render(render.Truncate(icons.FormatArtist(sum.TopTrack.Artist), width)),
			s.Muted.Render(playedTimes(sum.TopTrack.PlayCount)),
		)
	}

	lines = append(lines, "", heading("Top Artist"))
	if sum.TopArtist.Artist == "" {
		lines = append(lines, s.Muted.Render(noData))
	} else {
		lines = append(lines,
			s.Title.Render(render.Truncate(icons.FormatArtist(sum.TopArtist.Artist), width)),
			s.Muted.Render(plays(sum.TopArtist.Plays)),
		)
	}
	return lines
}

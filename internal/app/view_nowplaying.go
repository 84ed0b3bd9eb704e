package app

import (
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/joshuajeong1/musicmap/internal/icons"
	"github.com/joshuajeong1/musicmap/internal/ui/playerbar"
	"github.com/joshuajeong1/musicmap/internal/ui/render"
	"github.com/joshuajeong1/musicmap/internal/ui/styles"
)

func (m Model) viewNowPlaying(width int) string {
	s := styles.T().S()
	inner := max(width-6, 10)

	var lines []string
	if m.Song.IsNotPlaying() {
		lines = append(lines,
			s.Muted.Render(m.Song.Title),
			"",
			s.Subtle.Render("Start something in your player and it will show up here."),
		)
	} else {
		state := "Paused"
		if m.Song.IsPlaying {
			state = "Playing"
		}
		lines = append(lines,
			s.Muted.Render(icons.Status(m.Song.IsPlaying)+" "+state),
			"",
			s.Playing.Render(render.Truncate(icons.FormatTrack(m.Song.Title), inner)),
			s.Base.Render(render.Truncate(icons.FormatArtist(m.Song.Artist), inner)),
			"",
			playerbar.RenderProgressBar(m.Song.Elapsed, m.Song.Duration, inner, m.Song.IsPlaying),
		)
	}

	var total int64
	for _, r := range m.Listens.Records {
		total += r.PlayCount
	}
	lines = append(lines,
		"",
		s.Subtle.Render(render.Truncate(
			"Source: "+m.player.Source().Name()+
				"  ·  "+plays(total)+
				" in "+humanize.Comma(int64(len(m.Listens.Locations)))+" locations", inner)),
	)

	return panel(strings.Join(lines, "\n"), width)
}

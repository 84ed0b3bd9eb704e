// Package playerbar renders the now playing card and its progress bar.
package playerbar

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/joshuajeong1/musicmap/internal/icons"
	"github.com/joshuajeong1/musicmap/internal/nowplaying"
)

const (
	filledBlock = "▓"
	emptyBlock  = "░"
)

// RenderProgressBar renders a block-style progress bar.
// Format: ▶  01:23  ▓▓▓▓▓░░░░░  04:56
// An unknown duration renders only the status and elapsed time.
func RenderProgressBar(position, duration time.Duration, width int, playing bool) string {
	status := icons.Status(playing)
	posStr := nowplaying.FormatClock(position)
	if duration <= 0 {
		return status + "  " + posStr
	}
	durStr := nowplaying.FormatClock(duration)

	fixedWidth := lipgloss.Width(status) + 2 + lipgloss.Width(posStr) + 2 + 2 + lipgloss.Width(durStr)
	barWidth := width - fixedWidth

	if barWidth < 3 {
		return status + "  " + posStr + " / " + durStr
	}

	ratio := float64(position) / float64(duration)
	filled := max(0, min(int(float64(barWidth)*ratio), barWidth))

	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, barWidth-filled)

	return status + "  " + posStr + "  " + bar + "  " + durStr
}

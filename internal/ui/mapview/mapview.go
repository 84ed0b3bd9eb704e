// Package mapview plots map markers onto a character grid.
package mapview

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/joshuajeong1/musicmap/internal/geo"
	"github.com/joshuajeong1/musicmap/internal/markers"
	"github.com/joshuajeong1/musicmap/internal/ui/render"
	"github.com/joshuajeong1/musicmap/internal/ui/styles"
)

// Pin is the glyph drawn at a marker's position.
const Pin = "●"

const background = "·"

// Project maps c to a cell in a width x height grid covering region.
// Points outside the region are clamped to the border.
func Project(region geo.Region, c geo.Coordinate, width, height int) (row, col int) {
	top := region.Center.Lat + region.Span.LatDelta/2
	left := region.Center.Lon - region.Span.LonDelta/2

	var fx, fy float64
	if region.Span.LonDelta > 0 {
		fx = (c.Lon - left) / region.Span.LonDelta
	}
	if region.Span.LatDelta > 0 {
		fy = (top - c.Lat) / region.Span.LatDelta
	}

	col = int(fx*float64(width-1) + 0.5)
	row = int(fy*float64(height-1) + 0.5)
	return clamp(row, 0, height-1), clamp(col, 0, width-1)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// Render draws every marker of view with its label beside the pin, on the
// left when the right side is too narrow. Labels that would overwrite another
// pin or label are cut short.
func Render(view markers.MapView, width, height int) string {
	if width < 2 || height < 2 {
		return ""
	}

	g := newGrid(width, height)
	type placed struct{ row, col int }
	pins := make([]placed, 0, len(view.Markers))
	for _, m := range view.Markers {
		row, col := Project(view.Region, m.Coordinate, width, height)
		g.set(row, col, styles.T().S().Marker.Render(Pin))
		pins = append(pins, placed{row, col})
	}
	for i, m := range view.Markers {
		label := render.Sanitize(m.Label)
		col := pins[i].col + 2
		if w := runewidth.StringWidth(label); col+w > width {
			col = max(pins[i].col-1-w, 0)
		}
		g.write(pins[i].row, col, label)
	}
	return g.String()
}

// Legend lists each marker as "● location  label", one per line.
func Legend(view markers.MapView, width int) string {
	if len(view.Markers) == 0 {
		return styles.T().S().Muted.Render("No locations yet")
	}
	s := styles.T().S()
	lines := make([]string, 0, len(view.Markers))
	for _, m := range view.Markers {
		line := s.Marker.Render(Pin) + " " + s.Title.Render(m.Location) + "  " + s.Muted.Render(m.Label)
		lines = append(lines, render.Truncate(line, width))
	}
	return strings.Join(lines, "\n")
}

// Caption describes the region shown.
func Caption(region geo.Region) string {
	return fmt.Sprintf("center %.3f, %.3f  span %.2f° x %.2f°",
		region.Center.Lat, region.Center.Lon, region.Span.LatDelta, region.Span.LonDelta)
}

// grid is a row-major matrix of terminal cells. A wide rune takes its cell
// and leaves the next one empty.
type grid struct {
	cells [][]string
	used  [][]bool
	width int
}

func newGrid(width, height int) *grid {
	dot := styles.T().S().Subtle.Render(background)
	g := &grid{cells: make([][]string, height), used: make([][]bool, height), width: width}
	for r := range g.cells {
		g.cells[r] = make([]string, width)
		g.used[r] = make([]bool, width)
		for c := range g.cells[r] {
			g.cells[r][c] = dot
		}
	}
	return g
}

func (g *grid) set(row, col int, cell string) {
	g.cells[row][col] = cell
	g.used[row][col] = true
}

func (g *grid) write(row, col int, text string) {
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if col+w > g.width || g.used[row][col] || (w == 2 && g.used[row][col+1]) {
			return
		}
		g.set(row, col, string(r))
		if w == 2 {
			g.set(row, col+1, "")
		}
		col += w
	}
}

func (g *grid) String() string {
	var b strings.Builder
	for r, row := range g.cells {
		if r > 0 {
			b.WriteByte('\n')
		}
		for _, cell := range row {
			b.WriteString(cell)
		}
	}
	return b.String()
}

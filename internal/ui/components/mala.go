package components

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"sankalp/internal/ui/theme"
)

const ringSize = 108

const (
	beadFilled  = "●"
	beadEmpty   = "○"
	beadPointer = "◉"
)

// Mala draws the 108-bead ring on a character grid, starting at the top and
// running clockwise. The first filled beads are drawn solid, the pointer bead
// (when present) is drawn over everything else, and center lines are placed in
// the middle of the ring.
func Mala(filled, pointer int, hasPointer bool, center ...string) string {
	const rx, ry = 24, 11
	width, height := 2*rx+1, 2*ry+1

	grid := make([][]string, height)
	for y := range grid {
		grid[y] = make([]string, width)
		for x := range grid[y] {
			grid[y][x] = " "
		}
	}

	place := func(i int, glyph string) {
		angle := -math.Pi/2 + 2*math.Pi*float64(i)/ringSize
		x := rx + int(math.Round(rx*math.Cos(angle)))
		y := ry + int(math.Round(ry*math.Sin(angle)))
		grid[y][x] = glyph
	}
	for i := 0; i < ringSize; i++ {
		if i < filled {
			place(i, theme.BeadFilled.Render(beadFilled))
		} else {
			place(i, theme.BeadEmpty.Render(beadEmpty))
		}
	}
	if hasPointer && pointer >= 0 && pointer < ringSize {
		place(pointer, theme.BeadPointer.Render(beadPointer))
	}

	rows := make([]string, height)
	for y := range grid {
		rows[y] = strings.Join(grid[y], "")
	}
	ring := strings.Join(rows, "\n")
	if len(center) == 0 {
		return ring
	}

	// Overlay center text row by row; the ring interior is blank there.
	label := lipgloss.NewStyle().Width(width-8).Align(lipgloss.Center)
	top := ry - len(center)/2
	for i, line := range center {
		y := top + i
		if y <= 1 || y >= height-2 {
			continue
		}
		left, right := grid[y][:4], grid[y][width-4:]
		rows[y] = strings.Join(left, "") + label.Render(line) + strings.Join(right, "")
	}
	return strings.Join(rows, "\n")
}

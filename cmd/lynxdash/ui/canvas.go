package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type canvasCell struct {
	r     rune
	style lipgloss.Style
}

// Canvas is a fixed-size cell surface the graph view paints into each
// frame. It is rebuilt whenever the view initializes or resizes; painting
// out of bounds is silently clipped.
type Canvas struct {
	width  int
	height int
	cells  [][]canvasCell
}

// NewCanvas creates a blank canvas of the given dimensions.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{width: width, height: height}
	c.Clear()
	return c
}

// Width returns the canvas width in cells.
func (c *Canvas) Width() int { return c.width }

// Height returns the canvas height in cells.
func (c *Canvas) Height() int { return c.height }

// Clear resets every cell to blank.
func (c *Canvas) Clear() {
	c.cells = make([][]canvasCell, c.height)
	for y := range c.cells {
		row := make([]canvasCell, c.width)
		for x := range row {
			row[x] = canvasCell{r: ' '}
		}
		c.cells[y] = row
	}
}

// Set paints a single cell. Out-of-bounds coordinates are ignored.
func (c *Canvas) Set(x, y int, r rune, style lipgloss.Style) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	c.cells[y][x] = canvasCell{r: r, style: style}
}

// Text paints a string starting at (x, y), one cell per rune, clipping at
// the right edge.
func (c *Canvas) Text(x, y int, s string, style lipgloss.Style) {
	col := x
	for _, r := range s {
		c.Set(col, y, r, style)
		col++
	}
}

// Line draws a straight run of r between two points using Bresenham's
// algorithm.
func (c *Canvas) Line(x0, y0, x1, y1 int, r rune, style lipgloss.Style) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		c.Set(x0, y0, r, style)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// Render flattens the canvas into styled terminal output.
func (c *Canvas) Render() string {
	var sb strings.Builder
	for y, row := range c.cells {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, cell := range row {
			if cell.r == ' ' {
				sb.WriteByte(' ')
				continue
			}
			sb.WriteString(cell.style.Render(string(cell.r)))
		}
	}
	return sb.String()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

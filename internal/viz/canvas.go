package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gonum.org/v1/gonum/spatial/r2"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank rune = 0x2800

// Canvas is a braille pixel grid. Each cell holds 2x4 sub-pixels and one
// foreground color, the color of the last pixel painted into it.
type Canvas struct {
	Width, Height int
	grid          [][]rune
	colors        [][]lipgloss.Color
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		grid:   make([][]rune, h),
		colors: make([][]lipgloss.Color, h),
	}
	for i := range c.grid {
		c.grid[i] = make([]rune, w)
		c.colors[i] = make([]lipgloss.Color, w)
	}
	c.Clear()
	return c
}

// Pixels returns the canvas size in sub-pixels.
func (c *Canvas) Pixels() (int, int) {
	return c.Width * 2, c.Height * 4
}

func (c *Canvas) cell(x, y int) (row, col int, ok bool) {
	if x < 0 || y < 0 {
		return 0, 0, false
	}
	col, row = x/2, y/4
	if col >= c.Width || row >= c.Height {
		return 0, 0, false
	}
	return row, col, true
}

// Set lights the sub-pixel (x, y). Out of range pixels are ignored.
func (c *Canvas) Set(x, y int) {
	if row, col, ok := c.cell(x, y); ok {
		c.grid[row][col] |= pixelMap[y%4][x%2]
	}
}

// Paint lights (x, y) and colors its cell.
func (c *Canvas) Paint(x, y int, color lipgloss.Color) {
	if row, col, ok := c.cell(x, y); ok {
		c.grid[row][col] |= pixelMap[y%4][x%2]
		c.colors[row][col] = color
	}
}

func (c *Canvas) Unset(x, y int) {
	if row, col, ok := c.cell(x, y); ok {
		c.grid[row][col] &^= pixelMap[y%4][x%2]
	}
}

func (c *Canvas) Clear() {
	for i := range c.grid {
		for j := range c.grid[i] {
			c.grid[i][j] = blank
			c.colors[i][j] = ""
		}
	}
}

// Disc paints a filled square of radius r around (x, y).
func (c *Canvas) Disc(x, y, r int, color lipgloss.Color) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			c.Paint(x+dx, y+dy, color)
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, color lipgloss.Color) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Paint(x0, y0, color)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// String returns the grid without colors.
func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// Render returns the grid with each run of equally colored cells styled.
func (c *Canvas) Render() string {
	var b strings.Builder
	for i, row := range c.grid {
		start := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && c.colors[i][j] == c.colors[i][start] {
				continue
			}
			run := string(row[start:j])
			if color := c.colors[i][start]; color != "" {
				run = lipgloss.NewStyle().Foreground(color).Render(run)
			}
			b.WriteString(run)
			start = j
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Projection maps world coordinates onto canvas sub-pixels. Extent is the
// world distance from Center to the nearest canvas edge; +Y points up.
type Projection struct {
	Center        r2.Vec
	Extent        float64
	Width, Height int
}

// offscreen is returned for points that cannot be placed on any canvas.
const offscreen = -1 << 20

func (p Projection) Project(v r2.Vec) (int, int) {
	half := float64(min(p.Width, p.Height)) / 2
	scale := half / p.Extent
	fx := float64(p.Width)/2 + (v.X-p.Center.X)*scale
	fy := float64(p.Height)/2 - (v.Y-p.Center.Y)*scale
	if !(math.Abs(fx) < 1<<20 && math.Abs(fy) < 1<<20) {
		return offscreen, offscreen
	}
	return int(math.Floor(fx)), int(math.Floor(fy))
}

// Visible reports whether the projected point lies on the canvas.
func (p Projection) Visible(x, y int) bool {
	return x >= 0 && y >= 0 && x < p.Width && y < p.Height
}

package canvas

import (
	"errors"
	"strings"

	"github.com/mattn/go-runewidth"

	"taskgrapher/diagram"
)

// Common errors
var (
	ErrOutOfBounds = errors.New("position out of bounds")
	ErrInvalidSize = errors.New("invalid canvas size")
)

// Cell is one character position of a MatrixCanvas. Kind records which
// element painted it so a terminal can pick a style.
type Cell struct {
	Rune      rune
	Kind      diagram.Kind
	Highlight bool
	Painted   bool
}

// MatrixCanvas is a fixed-size grid of cells.
//
// Coordinate System:
//   - Origin (0,0) is top-left
//   - X increases rightward
//   - Y increases downward
//   - All coordinates are in character cells
//
// Drawing outside the grid is clipped silently, except for Set which
// reports ErrOutOfBounds. Wide runes occupy two cells; the second holds
// a zero rune.
type MatrixCanvas struct {
	cells  [][]Cell
	width  int
	height int
}

// NewMatrixCanvas creates a blank canvas with the specified dimensions.
func NewMatrixCanvas(width, height int) (*MatrixCanvas, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidSize
	}
	cells := make([][]Cell, height)
	for y := range cells {
		cells[y] = make([]Cell, width)
	}
	c := &MatrixCanvas{cells: cells, width: width, height: height}
	c.Clear()
	return c, nil
}

// Size returns the width and height of the canvas.
func (c *MatrixCanvas) Size() (width, height int) {
	return c.width, c.height
}

// Get returns the cell at (x, y), or a blank cell when out of bounds.
func (c *MatrixCanvas) Get(x, y int) Cell {
	if !c.inBounds(x, y) {
		return Cell{Rune: ' '}
	}
	return c.cells[y][x]
}

// Set paints one cell.
func (c *MatrixCanvas) Set(x, y int, cell Cell) error {
	if !c.inBounds(x, y) {
		return ErrOutOfBounds
	}
	cell.Painted = true
	c.cells[y][x] = cell
	return nil
}

// Clear resets the canvas to unpainted spaces.
func (c *MatrixCanvas) Clear() {
	for y := range c.cells {
		for x := range c.cells[y] {
			c.cells[y][x] = Cell{Rune: ' '}
		}
	}
}

// String returns the canvas as text with newlines between rows.
func (c *MatrixCanvas) String() string {
	var sb strings.Builder
	sb.Grow(c.height * (c.width + 1))

	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			r := c.cells[y][x].Rune
			if r == 0 {
				// Wide character continuation
				continue
			}
			sb.WriteRune(r)
		}
		if y < c.height-1 {
			sb.WriteRune('\n')
		}
	}
	return sb.String()
}

// DrawLine draws a line between two cells using Bresenham's algorithm. The
// glyph is picked from the overall slope.
func (c *MatrixCanvas) DrawLine(x1, y1, x2, y2 int, style Cell) {
	style.Rune = lineGlyph(x2-x1, y2-y1)

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	x, y := x1, y1

	xInc := 1
	if x1 > x2 {
		xInc = -1
	}
	yInc := 1
	if y1 > y2 {
		yInc = -1
	}

	if dx > dy {
		err := dx / 2
		for x != x2 {
			c.setClipped(x, y, style)
			err -= dy
			if err < 0 {
				y += yInc
				err += dx
			}
			x += xInc
		}
	} else {
		err := dy / 2
		for y != y2 {
			c.setClipped(x, y, style)
			err -= dx
			if err < 0 {
				x += xInc
				err += dy
			}
			y += yInc
		}
	}
	c.setClipped(x2, y2, style)
}

// FillEllipse paints every cell whose centre lies inside the ellipse with
// centre (cx, cy) and radii rx, ry, all in cells.
func (c *MatrixCanvas) FillEllipse(cx, cy, rx, ry float64, style Cell) {
	if rx <= 0 || ry <= 0 {
		return
	}
	minY, maxY := int(cy-ry), int(cy+ry)
	minX, maxX := int(cx-rx), int(cx+rx)
	painted := false
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			nx := (float64(x) + 0.5 - cx) / rx
			ny := (float64(y) + 0.5 - cy) / ry
			if nx*nx+ny*ny <= 1 {
				c.setClipped(x, y, style)
				painted = true
			}
		}
	}
	if !painted {
		// Too small to cover a cell centre; keep it visible as one cell.
		c.setClipped(int(cx), int(cy), style)
	}
}

// DrawText writes text starting at (x, y). Wide runes take two cells.
func (c *MatrixCanvas) DrawText(x, y int, text string, style Cell) {
	if y < 0 || y >= c.height {
		return
	}
	currentX := x
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if w == 2 && currentX+1 >= c.width {
			break
		}
		style.Rune = r
		c.setClipped(currentX, y, style)
		if w == 2 {
			cont := style
			cont.Rune = 0
			c.setClipped(currentX+1, y, cont)
		}
		currentX += w
		if currentX >= c.width {
			break
		}
	}
}

// DrawTextCentered writes text so its display width is centred on x,
// truncating it to maxWidth cells when maxWidth > 0.
func (c *MatrixCanvas) DrawTextCentered(x, y int, text string, maxWidth int, style Cell) {
	if maxWidth > 0 && runewidth.StringWidth(text) > maxWidth {
		text = runewidth.Truncate(text, maxWidth, "…")
	}
	c.DrawText(x-runewidth.StringWidth(text)/2, y, text, style)
}

func (c *MatrixCanvas) inBounds(x, y int) bool {
	return x >= 0 && x < c.width && y >= 0 && y < c.height
}

// setClipped sets a cell with bounds checking (no error).
func (c *MatrixCanvas) setClipped(x, y int, cell Cell) {
	if c.inBounds(x, y) {
		cell.Painted = true
		c.cells[y][x] = cell
	}
}

func lineGlyph(dx, dy int) rune {
	switch {
	case dy == 0 || abs(dx) > 2*abs(dy):
		return '─'
	case dx == 0 || abs(dy) > 2*abs(dx):
		return '│'
	case (dx > 0) == (dy > 0):
		return '╲'
	default:
		return '╱'
	}
}

// abs returns the absolute value of an integer.
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

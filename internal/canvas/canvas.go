// Package canvas holds the fixed-size character grid the renderer
// composites into every tick.
package canvas

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Canvas is a dense W×H grid of cells addressed with wrap-around.
type Canvas struct {
	width, height int
	cells         []Cell
	frame         bytes.Buffer
}

// New creates a canvas filled with Background. It panics if either
// dimension is not positive.
func New(width, height int) *Canvas {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("canvas: invalid size %dx%d", width, height))
	}
	c := &Canvas{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
	c.Clear()
	return c
}

// Width returns the number of columns.
func (c *Canvas) Width() int { return c.width }

// Height returns the number of rows.
func (c *Canvas) Height() int { return c.height }

// Clear overwrites every cell with Background.
func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = Background
	}
}

// Wrap maps any coordinate into bounds. Negative values wrap to the high end.
func (c *Canvas) Wrap(x, y int) (int, int) {
	return mod(x, c.width), mod(y, c.height)
}

// Write stores cell at (x, y) after wrapping both axes.
func (c *Canvas) Write(x, y int, cell Cell) {
	x, y = c.Wrap(x, y)
	c.cells[y*c.width+x] = cell
}

// At returns the cell at (x, y) after wrapping both axes.
func (c *Canvas) At(x, y int) Cell {
	x, y = c.Wrap(x, y)
	return c.cells[y*c.width+x]
}

// Cells returns a row-major copy of the grid.
func (c *Canvas) Cells() []Cell {
	out := make([]Cell, len(c.cells))
	copy(out, c.cells)
	return out
}

// IsBlank reports whether every cell equals Background.
func (c *Canvas) IsBlank() bool {
	for _, cell := range c.cells {
		if cell != Background {
			return false
		}
	}
	return true
}

// Flush writes the whole grid to w in row-major order as ANSI text.
// Each cell occupies columns terminal columns; narrower glyphs are padded
// with spaces. Rows end with an attribute reset and "\r\n" so the frame
// renders correctly in raw mode. The frame is written with a single Write.
func (c *Canvas) Flush(w io.Writer, columns int) error {
	if columns < 1 {
		columns = 1
	}
	c.frame.Reset()
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			c.encodeCell(c.cells[y*c.width+x], columns)
		}
		c.frame.WriteString("\x1b[0m\r\n")
	}
	if _, err := w.Write(c.frame.Bytes()); err != nil {
		return fmt.Errorf("flush canvas: %w", err)
	}
	return nil
}

func (c *Canvas) encodeCell(cell Cell, columns int) {
	c.frame.WriteString("\x1b[0m")
	writeColor(&c.frame, 38, cell.FG)
	writeColor(&c.frame, 48, cell.BG)

	glyph := cell.Glyph
	width := runewidth.RuneWidth(glyph)
	if width == 0 || width > columns {
		glyph, width = ' ', 1
	}
	c.frame.WriteRune(glyph)
	for ; width < columns; width++ {
		c.frame.WriteByte(' ')
	}
}

// writeColor emits a 24-bit SGR sequence; layer is 38 (fg) or 48 (bg).
// Colors without a known RGB value keep the terminal default.
func writeColor(buf *bytes.Buffer, layer int, color tcell.Color) {
	if color == tcell.ColorDefault || !color.Valid() {
		return
	}
	r, g, b := color.RGB()
	if r < 0 {
		return
	}
	buf.WriteString("\x1b[")
	buf.WriteString(strconv.Itoa(layer))
	buf.WriteString(";2;")
	buf.WriteString(strconv.Itoa(int(r)))
	buf.WriteByte(';')
	buf.WriteString(strconv.Itoa(int(g)))
	buf.WriteByte(';')
	buf.WriteString(strconv.Itoa(int(b)))
	buf.WriteByte('m')
}

func mod(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

package render

import (
	"fmt"
	"io"

	"blobterm/internal/canvas"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Display is the output device a finished frame is presented to.
type Display interface {
	Present(c *canvas.Canvas) error
}

// WriterDisplay writes frames as ANSI text, homing the cursor first so each
// frame overwrites the previous one.
type WriterDisplay struct {
	w       io.Writer
	columns int
	started bool
}

// NewWriterDisplay creates a display over w where each cell spans columns
// terminal columns.
func NewWriterDisplay(w io.Writer, columns int) *WriterDisplay {
	return &WriterDisplay{w: w, columns: columns}
}

// Present flushes c. Any write failure is returned unchanged in the chain.
func (d *WriterDisplay) Present(c *canvas.Canvas) error {
	prefix := "\x1b[H"
	if !d.started {
		// First frame: clear the screen and hide the cursor.
		prefix = "\x1b[2J\x1b[?25l\x1b[H"
	}
	if _, err := io.WriteString(d.w, prefix); err != nil {
		return fmt.Errorf("present frame: %w", err)
	}
	d.started = true
	return c.Flush(d.w, d.columns)
}

// ScreenDisplay draws frames onto a tcell screen.
type ScreenDisplay struct {
	screen  tcell.Screen
	columns int
}

// NewScreenDisplay creates a display over screen where each cell spans
// columns terminal columns.
func NewScreenDisplay(screen tcell.Screen, columns int) *ScreenDisplay {
	if columns < 1 {
		columns = 1
	}
	return &ScreenDisplay{screen: screen, columns: columns}
}

// Present copies every cell onto the screen and shows it.
func (d *ScreenDisplay) Present(c *canvas.Canvas) error {
	for y := 0; y < c.Height(); y++ {
		for x := 0; x < c.Width(); x++ {
			d.putCell(x*d.columns, y, c.At(x, y))
		}
	}
	d.screen.Show()
	return nil
}

// putCell draws one cell, filling any columns the glyph leaves uncovered.
func (d *ScreenDisplay) putCell(sx, sy int, cell canvas.Cell) {
	style := cell.Style()
	glyph := cell.Glyph
	width := runewidth.RuneWidth(glyph)
	if width == 0 || width > d.columns {
		glyph, width = ' ', 1
	}
	d.screen.SetContent(sx, sy, glyph, nil, style)
	for col := width; col < d.columns; col++ {
		d.screen.SetContent(sx+col, sy, ' ', nil, style)
	}
}

package canvas

import "github.com/gdamore/tcell/v2"

// SolidGlyph is the full-block glyph used for solid blobs.
const SolidGlyph = '█'

// Cell is one display cell: a glyph plus its colors.
type Cell struct {
	Glyph rune
	FG    tcell.Color
	BG    tcell.Color
}

// Background is the blank cell every position holds after Clear.
var Background = Cell{Glyph: ' ', FG: tcell.ColorDefault, BG: tcell.ColorDefault}

// Solid returns a full-block cell drawn in the given RGB color.
func Solid(r, g, b int32) Cell {
	return Cell{Glyph: SolidGlyph, FG: tcell.NewRGBColor(r, g, b), BG: tcell.ColorDefault}
}

// Style converts the cell's colors into a tcell style.
func (c Cell) Style() tcell.Style {
	return tcell.StyleDefault.Foreground(c.FG).Background(c.BG)
}

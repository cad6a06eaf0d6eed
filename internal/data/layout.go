// Package data loads spawn layouts: where the player and the decoy blobs
// start and how they are drawn.
package data

import (
	"fmt"
	"os"
	"unicode/utf8"

	"blobterm/internal/canvas"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

const (
	PlayerColor = "#1ec81e" // rgb(30,200,30)
	DecoyColor  = "#c81e1e" // rgb(200,30,30)
)

// BlobSpec places one blob at a fixed position.
type BlobSpec struct {
	X     int    `yaml:"x"`
	Y     int    `yaml:"y"`
	Glyph string `yaml:"glyph"` // one rune; empty means a solid block
	Color string `yaml:"color"` // #rrggbb
}

// RandomSpec asks for Count blobs at random positions on the canvas.
type RandomSpec struct {
	Count int    `yaml:"count"`
	Glyph string `yaml:"glyph"`
	Color string `yaml:"color"`
}

// Layout is the full starting scene.
type Layout struct {
	Player BlobSpec   `yaml:"player"`
	Blobs  []BlobSpec `yaml:"blobs"`
	Random RandomSpec `yaml:"random"`
}

// DefaultLayout is the built-in scene: a green player at (3,2) plus the
// given number of red blobs scattered at random.
func DefaultLayout(decoys int) *Layout {
	return &Layout{
		Player: BlobSpec{X: 3, Y: 2, Color: PlayerColor},
		Random: RandomSpec{Count: decoys, Color: DecoyColor},
	}
}

// LoadLayout reads a YAML layout file and checks that every glyph and color
// can be drawn.
func LoadLayout(path string) (*Layout, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout: %w", err)
	}
	var l Layout
	if err := yaml.Unmarshal(raw, &l); err != nil {
		return nil, fmt.Errorf("parse layout %s: %w", path, err)
	}
	if err := l.Validate(); err != nil {
		return nil, fmt.Errorf("layout %s: %w", path, err)
	}
	return &l, nil
}

// Validate reports the first entry that cannot be turned into a cell.
func (l *Layout) Validate() error {
	if _, err := l.Player.Cell(); err != nil {
		return fmt.Errorf("player: %w", err)
	}
	for i, b := range l.Blobs {
		if _, err := b.Cell(); err != nil {
			return fmt.Errorf("blobs[%d]: %w", i, err)
		}
	}
	if l.Random.Count < 0 {
		return fmt.Errorf("random.count must not be negative, got %d", l.Random.Count)
	}
	if _, err := l.Random.Cell(); err != nil {
		return fmt.Errorf("random: %w", err)
	}
	return nil
}

// Cell converts the entry into a canvas cell.
func (b BlobSpec) Cell() (canvas.Cell, error) { return makeCell(b.Glyph, b.Color) }

// Cell converts the entry into a canvas cell.
func (r RandomSpec) Cell() (canvas.Cell, error) { return makeCell(r.Glyph, r.Color) }

func makeCell(glyph, hex string) (canvas.Cell, error) {
	g := canvas.SolidGlyph
	if glyph != "" {
		r, size := utf8.DecodeRuneInString(glyph)
		if r == utf8.RuneError || size != len(glyph) {
			return canvas.Cell{}, fmt.Errorf("glyph %q must be a single character", glyph)
		}
		g = r
	}

	fg := tcell.ColorDefault
	if hex != "" {
		c, err := colorful.Hex(hex)
		if err != nil {
			return canvas.Cell{}, fmt.Errorf("color %q: %w", hex, err)
		}
		r, gr, b := c.RGB255()
		fg = tcell.NewRGBColor(int32(r), int32(gr), int32(b))
	}
	return canvas.Cell{Glyph: g, FG: fg, BG: tcell.ColorDefault}, nil
}

package viz

import (
	"strings"

	"github.com/san-kum/spinlab/internal/ising"
)

// Braille cells hold 2x4 dots, offset from U+2800:
// 1 4
// 2 5
// 3 6
// 7 8
var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

// Canvas packs a pixel grid into braille runes so a lattice far wider than
// the terminal still fits on screen. One spin maps to one dot.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

// NewCanvas returns a canvas of w×h runes, i.e. (2w)×(4h) dots.
func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// CanvasFor returns a canvas just large enough for an n×n lattice.
func CanvasFor(n int) *Canvas {
	return NewCanvas((n+1)/2, (n+3)/4)
}

// Set lights the dot at (x, y). Out of range dots are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= pixelMap[y%4][x%2]
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

// DrawLattice lights one dot per up spin; row i of the lattice is dot row i.
func (c *Canvas) DrawLattice(l *ising.Lattice) {
	c.Clear()
	n := l.Size()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if l.At(i, j) == ising.Up {
				c.Set(j, i)
			}
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for i, row := range c.Grid {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(string(row))
	}
	return b.String()
}

package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/spinlab/internal/ising"
)

// LatticeSVG draws the lattice as a grid of scale×scale squares, up spins in
// up and down spins in down.
func LatticeSVG(w io.Writer, l *ising.Lattice, scale int, up, down string) error {
	if scale <= 0 {
		scale = 1
	}
	n := l.Size()
	side := n * scale

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<g fill="%s">
`, side, side, side, side, down, up)

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if l.At(i, j) == ising.Up {
				fmt.Fprintf(&sb, "<rect x=\"%d\" y=\"%d\" width=\"%d\" height=\"%d\"/>\n", j*scale, i*scale, scale, scale)
			}
		}
	}

	sb.WriteString("</g>\n</svg>\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

// SeriesSVG plots values against their index as a single polyline.
func SeriesSVG(w io.Writer, values []float64, width, height int, stroke string) error {
	if len(values) < 2 {
		return fmt.Errorf("series needs at least 2 points, got %d", len(values))
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}
	lo -= rng * 0.1
	rng *= 1.2

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, stroke)

	last := float64(len(values) - 1)
	for i, v := range values {
		x := float64(i) / last * float64(width)
		y := float64(height) - (v-lo)/rng*float64(height)
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}

	sb.WriteString("\"/>\n</svg>\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

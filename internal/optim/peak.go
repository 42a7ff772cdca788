// Package optim locates extrema of sampled curves.
package optim

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
)

var ErrBadSamples = errors.New("optim: invalid samples")

type Point struct {
	X, Y float64
}

// Peak returns the maximum of ys sampled at xs. An interior maximum is refined
// to the vertex of the parabola through it and its two neighbours; a maximum
// at either end is returned as sampled.
func Peak(xs, ys []float64) (Point, error) {
	if len(xs) == 0 || len(xs) != len(ys) {
		return Point{}, fmt.Errorf("%w: %d xs and %d ys", ErrBadSamples, len(xs), len(ys))
	}

	i := floats.MaxIdx(ys)
	best := Point{X: xs[i], Y: ys[i]}
	if i == 0 || i == len(ys)-1 {
		return best, nil
	}

	x0, x1, x2 := xs[i-1], xs[i], xs[i+1]
	y0, y1, y2 := ys[i-1], ys[i], ys[i+1]

	num := (x1-x0)*(x1-x0)*(y1-y2) - (x1-x2)*(x1-x2)*(y1-y0)
	den := (x1-x0)*(y1-y2) - (x1-x2)*(y1-y0)
	if den == 0 {
		return best, nil
	}
	x := x1 - 0.5*num/den

	// Lagrange form of the same parabola.
	y := y0*(x-x1)*(x-x2)/((x0-x1)*(x0-x2)) +
		y1*(x-x0)*(x-x2)/((x1-x0)*(x1-x2)) +
		y2*(x-x0)*(x-x1)/((x2-x0)*(x2-x1))

	return Point{X: x, Y: y}, nil
}

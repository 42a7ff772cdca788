package ising

import "fmt"

// Spin is a single dipole orientation, Down (-1) or Up (+1).
type Spin int8

const (
	Down Spin = -1
	Up   Spin = 1
)

// Lattice stores an N×N grid of spins in row-major order. Indices passed to
// its methods are reduced modulo N, so the grid has no edges.
type Lattice struct {
	n     int
	spins []Spin
}

func newLattice(n int) (*Lattice, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: size must be positive, got %d", ErrInvalidConfig, n)
	}
	return &Lattice{n: n, spins: make([]Spin, n*n)}, nil
}

// RandomLattice draws every cell independently and uniformly from {-1,+1}.
func RandomLattice(n int, src Source) (*Lattice, error) {
	l, err := newLattice(n)
	if err != nil {
		return nil, err
	}
	for i := range l.spins {
		if src.Intn(2) == 0 {
			l.spins[i] = Down
		} else {
			l.spins[i] = Up
		}
	}
	return l, nil
}

// UniformLattice sets every cell to s.
func UniformLattice(n int, s Spin) (*Lattice, error) {
	if s != Up && s != Down {
		return nil, fmt.Errorf("%w: spin must be -1 or +1, got %d", ErrInvalidConfig, s)
	}
	l, err := newLattice(n)
	if err != nil {
		return nil, err
	}
	for i := range l.spins {
		l.spins[i] = s
	}
	return l, nil
}

// CheckerboardLattice sets cell (i,j) to +1 when i+j is even, -1 otherwise.
func CheckerboardLattice(n int) (*Lattice, error) {
	l, err := newLattice(n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if (i+j)%2 == 0 {
				l.spins[i*n+j] = Up
			} else {
				l.spins[i*n+j] = Down
			}
		}
	}
	return l, nil
}

// Size returns the side length N.
func (l *Lattice) Size() int { return l.n }

// Wrap applies toroidal wrapping to (i, j).
func (l *Lattice) Wrap(i, j int) (int, int) {
	i = (i%l.n + l.n) % l.n
	j = (j%l.n + l.n) % l.n
	return i, j
}

func (l *Lattice) index(i, j int) int {
	i, j = l.Wrap(i, j)
	return i*l.n + j
}

// At returns the spin at (i, j).
func (l *Lattice) At(i, j int) Spin { return l.spins[l.index(i, j)] }

// NeighborSum returns the sum of the four nearest neighbours of (i, j).
func (l *Lattice) NeighborSum(i, j int) int {
	return int(l.At(i-1, j)) + int(l.At(i+1, j)) + int(l.At(i, j-1)) + int(l.At(i, j+1))
}

func (l *Lattice) flip(i, j int) {
	idx := l.index(i, j)
	l.spins[idx] = -l.spins[idx]
}

// Sum returns the total magnetisation Σ s(i,j).
func (l *Lattice) Sum() int {
	sum := 0
	for _, s := range l.spins {
		sum += int(s)
	}
	return sum
}

// Spins returns a copy of the cells in row-major order.
func (l *Lattice) Spins() []Spin {
	c := make([]Spin, len(l.spins))
	copy(c, l.spins)
	return c
}

// Clone returns a deep copy of the lattice.
func (l *Lattice) Clone() *Lattice {
	return &Lattice{n: l.n, spins: l.Spins()}
}

// Valid reports whether every cell holds exactly -1 or +1.
func (l *Lattice) Valid() bool {
	for _, s := range l.spins {
		if s != Up && s != Down {
			return false
		}
	}
	return true
}

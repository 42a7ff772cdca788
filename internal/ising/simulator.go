package ising

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

// Simulator evolves a Lattice under single-spin-flip Metropolis dynamics.
type Simulator struct {
	lattice     *Lattice
	temperature float64
	src         Source
	steps       int
	accepted    int
}

type options struct {
	temperature float64
	src         Source
	lattice     *Lattice
}

// Option configures a Simulator at construction.
type Option func(*options)

// WithTemperature sets the initial temperature in Kelvin.
func WithTemperature(t float64) Option {
	return func(o *options) { o.temperature = t }
}

// WithSource injects the random source used for the initial lattice, the cell
// choice and the acceptance draw.
func WithSource(src Source) Option {
	return func(o *options) { o.src = src }
}

// WithSeed is shorthand for WithSource(rand.New(rand.NewSource(seed))).
func WithSeed(seed int64) Option {
	return func(o *options) { o.src = rand.New(rand.NewSource(seed)) }
}

// WithLattice starts from a copy of l instead of a random lattice.
func WithLattice(l *Lattice) Option {
	return func(o *options) { o.lattice = l }
}

// New returns a simulator for a size×size lattice. Without options the
// temperature is DefaultTemperature, the source is seeded from the clock and
// every cell is drawn uniformly from {-1,+1}.
func New(size int, opts ...Option) (*Simulator, error) {
	o := options{temperature: DefaultTemperature}
	for _, opt := range opts {
		opt(&o)
	}

	if size <= 0 {
		return nil, fmt.Errorf("%w: size must be positive, got %d", ErrInvalidConfig, size)
	}
	if err := validateTemperature(o.temperature); err != nil {
		return nil, err
	}
	if o.src == nil {
		o.src = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	var lattice *Lattice
	if o.lattice != nil {
		if o.lattice.Size() != size {
			return nil, fmt.Errorf("%w: lattice size %d does not match %d", ErrInvalidConfig, o.lattice.Size(), size)
		}
		if !o.lattice.Valid() {
			return nil, fmt.Errorf("%w: lattice holds values other than -1 and +1", ErrInvalidConfig)
		}
		lattice = o.lattice.Clone()
	} else {
		var err error
		lattice, err = RandomLattice(size, o.src)
		if err != nil {
			return nil, err
		}
	}

	return &Simulator{
		lattice:     lattice,
		temperature: o.temperature,
		src:         o.src,
	}, nil
}

func validateTemperature(t float64) error {
	if !(t > 0) || math.IsInf(t, 0) {
		return fmt.Errorf("%w: temperature must be a positive finite number, got %v", ErrInvalidConfig, t)
	}
	return nil
}

// SetTemperature replaces the temperature used by subsequent updates. The
// lattice is left untouched.
func (s *Simulator) SetTemperature(t float64) error {
	if err := validateTemperature(t); err != nil {
		return err
	}
	s.temperature = t
	return nil
}

func (s *Simulator) Temperature() float64 { return s.temperature }
func (s *Simulator) Size() int            { return s.lattice.n }
func (s *Simulator) Steps() int           { return s.steps }
func (s *Simulator) Accepted() int        { return s.accepted }

// Spin returns the spin at (i, j) with toroidal wrapping.
func (s *Simulator) Spin(i, j int) Spin { return s.lattice.At(i, j) }

// Snapshot returns a copy of the current lattice.
func (s *Simulator) Snapshot() *Lattice { return s.lattice.Clone() }

// Energy returns −J Σ s(i,j)·[s(i+1,j) + s(i,j+1)], each bond counted once.
func (s *Simulator) Energy() float64 {
	n := s.lattice.n
	sum := 0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			sum += int(s.lattice.At(i, j)) * (int(s.lattice.At(i+1, j)) + int(s.lattice.At(i, j+1)))
		}
	}
	return -Coupling * float64(sum)
}

// AverageMagnetism returns the mean spin in [-1, +1].
func (s *Simulator) AverageMagnetism() float64 {
	n := s.lattice.n
	return float64(s.lattice.Sum()) / float64(n*n)
}

// DeltaE returns the energy change of flipping (i, j).
func (s *Simulator) DeltaE(i, j int) float64 {
	return 2 * Coupling * float64(s.lattice.At(i, j)) * float64(s.lattice.NeighborSum(i, j))
}

// Update performs one Metropolis trial. The row, the column and the uniform
// acceptance draw are taken from the source in that order. The flip is
// accepted when ln(u) < −ΔE/(kB·T); the comparison stays in the log domain so
// ΔE <= 0 is always accepted and nothing is exponentiated.
func (s *Simulator) Update() Flip {
	n := s.lattice.n
	i := s.src.Intn(n)
	j := s.src.Intn(n)

	dE := s.DeltaE(i, j)
	accepted := math.Log(s.src.Float64()) < -dE/(s.temperature*Boltzmann)
	if accepted {
		s.lattice.flip(i, j)
		s.accepted++
	}
	s.steps++

	return Flip{Row: i, Col: j, DeltaE: dE, Accepted: accepted}
}

// Sample captures the current observables.
func (s *Simulator) Sample() Sample {
	return Sample{
		Step:          s.steps,
		Temperature:   s.temperature,
		Energy:        s.Energy(),
		Magnetization: s.AverageMagnetism(),
		Accepted:      s.accepted,
	}
}

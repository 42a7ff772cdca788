package metrics

import (
	"math"

	"github.com/san-kum/spinlab/internal/ising"
)

// Magnetization reports the mean absolute magnetisation per spin.
type Magnetization struct {
	name   string
	values series
}

func NewMagnetization() *Magnetization {
	return &Magnetization{name: "magnetization"}
}

func (m *Magnetization) Name() string { return m.name }

func (m *Magnetization) Observe(s ising.Sample) {
	m.values.add(math.Abs(s.Magnetization))
}

func (m *Magnetization) Value() float64 { return m.values.mean() }

func (m *Magnetization) Reset() { m.values.reset() }

// Susceptibility reports N²·Var(|m|) / (kB·T) using the temperature of the
// last observed sample.
type Susceptibility struct {
	name        string
	spins       float64
	temperature float64
	values      series
}

func NewSusceptibility(size int) *Susceptibility {
	return &Susceptibility{
		name:  "susceptibility",
		spins: float64(size * size),
	}
}

func (x *Susceptibility) Name() string { return x.name }

func (x *Susceptibility) Observe(s ising.Sample) {
	x.temperature = s.Temperature
	x.values.add(math.Abs(s.Magnetization))
}

func (x *Susceptibility) Value() float64 {
	if x.temperature <= 0 {
		return 0
	}
	return x.spins * x.values.variance() / (ising.Boltzmann * x.temperature)
}

func (x *Susceptibility) Reset() {
	x.temperature = 0
	x.values.reset()
}

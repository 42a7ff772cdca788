package metrics

import (
	"github.com/san-kum/spinlab/internal/ising"
)

// Energy reports the mean energy per spin over the observed samples.
type Energy struct {
	name   string
	spins  float64
	values series
}

func NewEnergy(size int) *Energy {
	return &Energy{
		name:  "energy",
		spins: float64(size * size),
	}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(s ising.Sample) {
	e.values.add(s.Energy / e.spins)
}

func (e *Energy) Value() float64 { return e.values.mean() }

func (e *Energy) Reset() { e.values.reset() }

// SpecificHeat reports Var(E) / (kB·T²·N²) using the temperature of the last
// observed sample.
type SpecificHeat struct {
	name        string
	spins       float64
	temperature float64
	values      series
}

func NewSpecificHeat(size int) *SpecificHeat {
	return &SpecificHeat{
		name:  "specific_heat",
		spins: float64(size * size),
	}
}

func (c *SpecificHeat) Name() string { return c.name }

func (c *SpecificHeat) Observe(s ising.Sample) {
	c.temperature = s.Temperature
	c.values.add(s.Energy)
}

func (c *SpecificHeat) Value() float64 {
	if c.temperature <= 0 {
		return 0
	}
	return c.values.variance() / (ising.Boltzmann * c.temperature * c.temperature * c.spins)
}

func (c *SpecificHeat) Reset() {
	c.temperature = 0
	c.values.reset()
}

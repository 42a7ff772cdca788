package ising

const (
	// Boltzmann is the Boltzmann constant in eV/K.
	Boltzmann = 8.617333262e-5

	// Coupling is the nearest-neighbour interaction constant J in eV. With this
	// value the Onsager critical temperature 2.269·J/kB sits near 1043 K.
	Coupling = 3.961e-2

	// CriticalTemperature is Onsager's 2J/(kB·ln(1+√2)) for the square lattice.
	CriticalTemperature = 2.269185314213022 * Coupling / Boltzmann

	// DefaultTemperature is used when no temperature is given.
	DefaultTemperature = 300.0
)

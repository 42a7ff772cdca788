// Package viz renders a running Ising simulation in the terminal.
//
// [Model] is a Bubble Tea program that advances an [ising.Simulator] by a
// batch of Metropolis updates every tick and draws the lattice next to its
// live observables. Small lattices are drawn as coloured cells; large ones
// are packed into a braille [Canvas], one dot per up spin.
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	R     - Reset to the initial lattice
//	Up/K  - Raise temperature by 5%
//	Down/J- Lower temperature by 5%
//	C     - Jump to the critical temperature
//	B     - Toggle braille rendering
//	T     - Cycle color themes
//	?     - Show help overlay
package viz

// Package ising provides a two-dimensional Ising model evolved by
// single-spin-flip Metropolis Monte Carlo.
//
// The package defines:
//
//   - [Lattice]: square grid of spins with toroidal boundaries
//   - [Simulator]: owns a lattice, a temperature and a step counter
//   - [Source]: random source injected into a simulator
//   - [Metric], [Observer]: consumers of [Sample] observations
//
// # Example
//
//	s, _ := ising.New(20, ising.WithTemperature(1043), ising.WithSeed(42))
//	for i := 0; i < 1000; i++ {
//		s.Update()
//	}
//	fmt.Println(s.Energy(), s.AverageMagnetism())
//
// # Thread Safety
//
// Simulator instances are NOT thread-safe. Parallel experiments construct
// independent simulators, each with its own [Source].
package ising

package ising

import "errors"

// ErrInvalidConfig indicates a non-positive size or temperature, or a lattice
// that does not match the requested size.
var ErrInvalidConfig = errors.New("ising: invalid configuration")

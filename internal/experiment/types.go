package experiment

import (
	"errors"
	"fmt"

	"github.com/san-kum/spinlab/internal/ising"
)

var (
	// ErrInvalidRun indicates a run or sweep configuration that cannot execute.
	ErrInvalidRun = errors.New("experiment: invalid run configuration")

	// ErrLatticeCorrupted indicates a spin outside {-1,+1} was observed.
	ErrLatticeCorrupted = errors.New("experiment: lattice holds values other than -1 and +1")
)

// RunError wraps an error with the step at which the run stopped.
type RunError struct {
	Step    int
	Wrapped error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("step %d: %v", e.Step, e.Wrapped)
}

func (e *RunError) Unwrap() error {
	return e.Wrapped
}

type RunConfig struct {
	Steps           int
	SampleEvery     int
	ValidateLattice bool
}

func (c RunConfig) validate() error {
	if c.Steps < 0 {
		return fmt.Errorf("%w: steps must be non-negative, got %d", ErrInvalidRun, c.Steps)
	}
	if c.SampleEvery <= 0 {
		return fmt.Errorf("%w: sample interval must be positive, got %d", ErrInvalidRun, c.SampleEvery)
	}
	return nil
}

type Result struct {
	Samples    []ising.Sample
	Metrics    map[string]float64
	StepsTaken int
	Accepted   int
}

// Last returns the final sample of the run.
func (r *Result) Last() ising.Sample {
	if len(r.Samples) == 0 {
		return ising.Sample{}
	}
	return r.Samples[len(r.Samples)-1]
}

// Series extracts one observable from every sample.
func (r *Result) Series(fn func(ising.Sample) float64) []float64 {
	out := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		out[i] = fn(s)
	}
	return out
}

package metrics

import "github.com/san-kum/spinlab/internal/ising"

// AcceptanceRate reports the fraction of Metropolis trials accepted between
// the first and the last observed sample.
type AcceptanceRate struct {
	name                    string
	samples                 int
	firstStep, lastStep     int
	firstAccept, lastAccept int
}

func NewAcceptanceRate() *AcceptanceRate {
	return &AcceptanceRate{name: "acceptance_rate"}
}

func (a *AcceptanceRate) Name() string { return a.name }

func (a *AcceptanceRate) Observe(s ising.Sample) {
	if a.samples == 0 {
		a.firstStep, a.firstAccept = s.Step, s.Accepted
	}
	a.lastStep, a.lastAccept = s.Step, s.Accepted
	a.samples++
}

func (a *AcceptanceRate) Value() float64 {
	steps := a.lastStep - a.firstStep
	if steps <= 0 {
		return 0
	}
	return float64(a.lastAccept-a.firstAccept) / float64(steps)
}

func (a *AcceptanceRate) Reset() {
	a.samples = 0
	a.firstStep, a.lastStep = 0, 0
	a.firstAccept, a.lastAccept = 0, 0
}

package ising

// Source is the random capability a Simulator draws from. *math/rand.Rand
// satisfies it.
type Source interface {
	// Intn returns a uniform int in [0, n).
	Intn(n int) int
	// Float64 returns a uniform float64 in [0, 1).
	Float64() float64
}

// Flip describes one Metropolis trial.
type Flip struct {
	Row      int
	Col      int
	DeltaE   float64
	Accepted bool
}

// Sample is a snapshot of the observables after Step updates.
type Sample struct {
	Step          int     `json:"step"`
	Temperature   float64 `json:"temperature"`
	Energy        float64 `json:"energy"`
	Magnetization float64 `json:"magnetization"`
	Accepted      int     `json:"accepted"`
}

type Metric interface {
	Name() string
	Observe(s Sample)
	Value() float64
	Reset()
}

type Observer interface {
	OnSample(s Sample)
}

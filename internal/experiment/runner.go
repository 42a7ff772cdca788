package experiment

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/san-kum/spinlab/internal/ising"
)

// Runner drives a simulator for a fixed number of updates and feeds periodic
// samples to metrics and observers.
type Runner struct {
	sim       *ising.Simulator
	metrics   []ising.Metric
	observers []ising.Observer
}

func NewRunner(sim *ising.Simulator) *Runner {
	return &Runner{
		sim:       sim,
		metrics:   make([]ising.Metric, 0),
		observers: make([]ising.Observer, 0),
	}
}

func (r *Runner) AddMetric(m ising.Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o ising.Observer) { r.observers = append(r.observers, o) }

// Run performs cfg.Steps updates. The initial state is always sampled, then
// every cfg.SampleEvery updates, and the final state once more if the last
// update did not fall on the interval. On cancellation the partial result is
// returned together with a *RunError wrapping ctx.Err().
func (r *Runner) Run(ctx context.Context, cfg RunConfig) (*Result, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	result := &Result{
		Samples: make([]ising.Sample, 0, cfg.Steps/cfg.SampleEvery+2),
		Metrics: make(map[string]float64),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	startAccepted := r.sim.Accepted()
	r.observe(result, r.sim.Sample())

	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			r.finish(result, startAccepted)
			return result, &RunError{Step: r.sim.Steps(), Wrapped: ctx.Err()}
		default:
		}

		r.sim.Update()
		result.StepsTaken++

		if result.StepsTaken%cfg.SampleEvery != 0 && result.StepsTaken != cfg.Steps {
			continue
		}

		if cfg.ValidateLattice && !r.sim.Snapshot().Valid() {
			r.finish(result, startAccepted)
			return result, &RunError{Step: r.sim.Steps(), Wrapped: ErrLatticeCorrupted}
		}

		sample := r.sim.Sample()
		r.observe(result, sample)
		logrus.Debugf("step %d: T=%.2fK E=%.5f m=%.4f", sample.Step, sample.Temperature, sample.Energy, sample.Magnetization)
	}

	r.finish(result, startAccepted)
	return result, nil
}

func (r *Runner) observe(result *Result, s ising.Sample) {
	result.Samples = append(result.Samples, s)
	for _, m := range r.metrics {
		m.Observe(s)
	}
	for _, o := range r.observers {
		o.OnSample(s)
	}
}

func (r *Runner) finish(result *Result, startAccepted int) {
	result.Accepted = r.sim.Accepted() - startAccepted
	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

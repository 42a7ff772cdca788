package experiment

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/san-kum/spinlab/internal/ising"
)

type Config struct {
	Size        int
	Temperature float64
	Steps       int
	SampleEvery int
	Seed        int64
	Metrics     []string
}

type Experiment struct {
	cfg    Config
	sim    *ising.Simulator
	runner *Runner
}

func New(cfg Config) *Experiment {
	return &Experiment{cfg: cfg}
}

// Setup builds the simulator and attaches the named metrics, or every
// registered metric when none are named.
func (e *Experiment) Setup(registry *Registry) error {
	s, err := ising.New(e.cfg.Size,
		ising.WithTemperature(e.cfg.Temperature),
		ising.WithSeed(e.cfg.Seed),
	)
	if err != nil {
		return err
	}

	e.sim = s
	e.runner = NewRunner(s)

	if len(e.cfg.Metrics) == 0 {
		for _, m := range registry.DefaultMetrics(e.cfg.Size) {
			e.runner.AddMetric(m)
		}
		return nil
	}
	for _, name := range e.cfg.Metrics {
		m, err := registry.GetMetric(name, e.cfg.Size)
		if err != nil {
			return err
		}
		e.runner.AddMetric(m)
	}
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if e.runner == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	logrus.Infof("running %dx%d lattice at %.2fK for %d steps (seed %d)",
		e.cfg.Size, e.cfg.Size, e.cfg.Temperature, e.cfg.Steps, e.cfg.Seed)

	result, err := e.runner.Run(ctx, RunConfig{
		Steps:           e.cfg.Steps,
		SampleEvery:     e.cfg.SampleEvery,
		ValidateLattice: true,
	})
	if err != nil {
		return result, err
	}

	logrus.Infof("finished: %d steps, %d accepted", result.StepsTaken, result.Accepted)
	return result, nil
}

// Simulator returns the underlying simulator.
func (e *Experiment) Simulator() *ising.Simulator {
	return e.sim
}

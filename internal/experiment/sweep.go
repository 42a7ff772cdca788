package experiment

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/spinlab/internal/analysis"
	"github.com/san-kum/spinlab/internal/ising"
	"github.com/san-kum/spinlab/internal/metrics"
)

type SweepConfig struct {
	Size        int
	From, To    float64
	Points      int
	BurnIn      int
	Steps       int
	SampleEvery int
	Seed        int64
	Workers     int
}

func (c SweepConfig) validate() error {
	if c.Points <= 0 {
		return fmt.Errorf("%w: points must be positive, got %d", ErrInvalidRun, c.Points)
	}
	if c.BurnIn < 0 {
		return fmt.Errorf("%w: burn-in must be non-negative, got %d", ErrInvalidRun, c.BurnIn)
	}
	if !(c.From > 0) || !(c.To > 0) {
		return fmt.Errorf("%w: temperatures must be positive, got %v..%v", ErrInvalidRun, c.From, c.To)
	}
	return RunConfig{Steps: c.Steps, SampleEvery: c.SampleEvery}.validate()
}

// Temperatures returns Points evenly spaced values from From to To inclusive.
func (c SweepConfig) Temperatures() []float64 {
	if c.Points <= 0 {
		return nil
	}
	if c.Points == 1 {
		return []float64{c.From}
	}
	out := make([]float64, c.Points)
	step := (c.To - c.From) / float64(c.Points-1)
	for i := range out {
		out[i] = c.From + float64(i)*step
	}
	out[len(out)-1] = c.To
	return out
}

// SweepPoint summarises the measurement window at one temperature. Energies
// are per spin.
type SweepPoint struct {
	Temperature      float64 `json:"temperature"`
	Magnetization    float64 `json:"magnetization"`
	MagnetizationStd float64 `json:"magnetization_std"`
	Energy           float64 `json:"energy"`
	EnergyStd        float64 `json:"energy_std"`
	SpecificHeat     float64 `json:"specific_heat"`
	Susceptibility   float64 `json:"susceptibility"`
	AcceptanceRate   float64 `json:"acceptance_rate"`
	// MagnetizationTau is the integrated autocorrelation time of |m| in
	// samples, as 1/2 + Σρ, zero when |m| never changed.
	MagnetizationTau float64 `json:"magnetization_tau"`
}

// Sweep runs one independent simulator per temperature, seeded Seed+index,
// at most Workers at a time. Results are ordered by temperature index.
func Sweep(ctx context.Context, cfg SweepConfig) ([]SweepPoint, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	temps := cfg.Temperatures()
	points := make([]SweepPoint, len(temps))

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, t := range temps {
		g.Go(func() error {
			p, err := sweepPoint(gctx, cfg, t, cfg.Seed+int64(i))
			if err != nil {
				return fmt.Errorf("T=%.2fK: %w", t, err)
			}
			points[i] = p
			logrus.Infof("sweep %d/%d: T=%.2fK |m|=%.4f E=%.5f", i+1, len(temps), t, p.Magnetization, p.Energy)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return points, nil
}

func sweepPoint(ctx context.Context, cfg SweepConfig, t float64, seed int64) (SweepPoint, error) {
	s, err := ising.New(cfg.Size, ising.WithTemperature(t), ising.WithSeed(seed))
	if err != nil {
		return SweepPoint{}, err
	}

	runner := NewRunner(s)
	if _, err := runner.Run(ctx, RunConfig{Steps: cfg.BurnIn, SampleEvery: max(cfg.BurnIn, 1)}); err != nil {
		return SweepPoint{}, err
	}

	heat := metrics.NewSpecificHeat(cfg.Size)
	chi := metrics.NewSusceptibility(cfg.Size)
	acc := metrics.NewAcceptanceRate()

	runner = NewRunner(s)
	runner.AddMetric(heat)
	runner.AddMetric(chi)
	runner.AddMetric(acc)

	result, err := runner.Run(ctx, RunConfig{Steps: cfg.Steps, SampleEvery: cfg.SampleEvery})
	if err != nil {
		return SweepPoint{}, err
	}

	spins := float64(cfg.Size * cfg.Size)
	mags := result.Series(func(s ising.Sample) float64 { return math.Abs(s.Magnetization) })
	energies := result.Series(func(s ising.Sample) float64 { return s.Energy / spins })

	p := SweepPoint{
		Temperature:    t,
		SpecificHeat:   heat.Value(),
		Susceptibility: chi.Value(),
		AcceptanceRate: acc.Value(),
	}
	p.Magnetization, p.MagnetizationStd = meanStd(mags)
	p.Energy, p.EnergyStd = meanStd(energies)
	if tau, err := analysis.IntegratedTime(mags); err == nil {
		p.MagnetizationTau = tau
	}
	return p, nil
}

func meanStd(x []float64) (float64, float64) {
	switch len(x) {
	case 0:
		return 0, 0
	case 1:
		return x[0], 0
	}
	return stat.MeanStdDev(x, nil)
}

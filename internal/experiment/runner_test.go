package experiment

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/spinlab/internal/ising"
	"github.com/san-kum/spinlab/internal/metrics"
)

type countingObserver struct {
	samples []ising.Sample
}

func (c *countingObserver) OnSample(s ising.Sample) { c.samples = append(c.samples, s) }

func newTestSim(t *testing.T, size int, temp float64) *ising.Simulator {
	t.Helper()
	s, err := ising.New(size, ising.WithTemperature(temp), ising.WithSeed(42))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return s
}

func TestRunnerSampling(t *testing.T) {
	tests := []struct {
		name        string
		steps       int
		sampleEvery int
		expected    int
	}{
		{"aligned interval", 1000, 100, 11},
		{"trailing sample", 1050, 100, 12},
		{"every step", 10, 1, 11},
		{"no steps", 0, 10, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSim(t, 10, 1043)
			r := NewRunner(s)
			obs := &countingObserver{}
			r.AddObserver(obs)

			result, err := r.Run(context.Background(), RunConfig{Steps: tt.steps, SampleEvery: tt.sampleEvery, ValidateLattice: true})
			if err != nil {
				t.Fatalf("run failed: %v", err)
			}

			if len(result.Samples) != tt.expected {
				t.Errorf("expected %d samples, got %d", tt.expected, len(result.Samples))
			}
			if len(obs.samples) != tt.expected {
				t.Errorf("expected %d observer calls, got %d", tt.expected, len(obs.samples))
			}
			if result.StepsTaken != tt.steps {
				t.Errorf("expected %d steps, got %d", tt.steps, result.StepsTaken)
			}
			if result.Last().Step != tt.steps {
				t.Errorf("expected last sample at step %d, got %d", tt.steps, result.Last().Step)
			}
			if s.Steps() != tt.steps {
				t.Errorf("expected simulator counter %d, got %d", tt.steps, s.Steps())
			}
		})
	}
}

func TestRunnerInvalidConfig(t *testing.T) {
	s := newTestSim(t, 4, 300)
	r := NewRunner(s)

	tests := []struct {
		name string
		cfg  RunConfig
	}{
		{"negative steps", RunConfig{Steps: -1, SampleEvery: 1}},
		{"zero interval", RunConfig{Steps: 10, SampleEvery: 0}},
		{"negative interval", RunConfig{Steps: 10, SampleEvery: -5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Run(context.Background(), tt.cfg)
			if !errors.Is(err, ErrInvalidRun) {
				t.Errorf("expected ErrInvalidRun, got %v", err)
			}
		})
	}
}

func TestRunnerMetrics(t *testing.T) {
	s := newTestSim(t, 8, 1e6)
	r := NewRunner(s)
	r.AddMetric(metrics.NewAcceptanceRate())
	r.AddMetric(metrics.NewMagnetization())

	result, err := r.Run(context.Background(), RunConfig{Steps: 2000, SampleEvery: 200})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	rate, ok := result.Metrics["acceptance_rate"]
	if !ok {
		t.Fatal("acceptance_rate not found in result")
	}
	if rate < 0.95 {
		t.Errorf("expected acceptance above 0.95, got %f", rate)
	}
	if got := float64(result.Accepted) / float64(result.StepsTaken); got != rate {
		t.Errorf("expected accepted/steps %f to match metric %f", got, rate)
	}
	if _, ok := result.Metrics["magnetization"]; !ok {
		t.Error("magnetization not found in result")
	}
}

func TestRunnerCancellation(t *testing.T) {
	s := newTestSim(t, 8, 500)
	r := NewRunner(s)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := r.Run(ctx, RunConfig{Steps: 1000, SampleEvery: 10})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	var runErr *RunError
	if !errors.As(err, &runErr) {
		t.Fatalf("expected *RunError, got %T", err)
	}
	if runErr.Step != 0 {
		t.Errorf("expected stop at step 0, got %d", runErr.Step)
	}
	if result == nil || len(result.Samples) != 1 {
		t.Error("expected partial result with the initial sample")
	}
}

func TestExperimentSetup(t *testing.T) {
	registry := NewRegistry()

	exp := New(Config{Size: 10, Temperature: 1043, Steps: 500, SampleEvery: 50, Seed: 7, Metrics: []string{"energy", "magnetization"}})
	if _, err := exp.Run(context.Background()); err == nil {
		t.Error("expected error before setup")
	}

	if err := exp.Setup(registry); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	result, err := exp.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(result.Metrics) != 2 {
		t.Errorf("expected 2 metrics, got %d", len(result.Metrics))
	}
	if exp.Simulator().Steps() != 500 {
		t.Errorf("expected 500 steps, got %d", exp.Simulator().Steps())
	}
}

func TestExperimentSetupErrors(t *testing.T) {
	registry := NewRegistry()

	tests := []struct {
		name string
		cfg  Config
	}{
		{"bad size", Config{Size: 0, Temperature: 300, Steps: 1, SampleEvery: 1}},
		{"bad temperature", Config{Size: 4, Temperature: -3, Steps: 1, SampleEvery: 1}},
		{"zero temperature", Config{Size: 4, Steps: 1, SampleEvery: 1}},
		{"unknown metric", Config{Size: 4, Temperature: 300, Steps: 1, SampleEvery: 1, Metrics: []string{"entropy"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := New(tt.cfg).Setup(registry); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	names := r.ListMetrics()
	if len(names) != 5 {
		t.Errorf("expected 5 metrics, got %d", len(names))
	}
	if len(r.DefaultMetrics(8)) != len(names) {
		t.Error("expected one default metric per registered name")
	}
	if _, err := r.GetMetric("nonexistent", 8); err == nil {
		t.Error("expected error for unknown metric")
	}
}

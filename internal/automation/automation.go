// Package automation runs scripted batches of Ising simulations described in
// YAML.
package automation

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/spinlab/internal/config"
	"github.com/san-kum/spinlab/internal/experiment"
)

var ErrInvalidScenario = errors.New("automation: invalid scenario")

// Scenario defines a scripted simulation sequence
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is one run, or several seeded replicas of it. Fields left at
// zero fall back to the preset, then to the defaults.
type ScenarioStep struct {
	Name        string   `yaml:"name"`
	Preset      string   `yaml:"preset"`
	Size        int      `yaml:"size"`
	Temperature float64  `yaml:"temperature"`
	Steps       int      `yaml:"steps"`
	SampleEvery int      `yaml:"sample_every"`
	Seed        int64    `yaml:"seed"`
	Metrics     []string `yaml:"metrics"`
	Replicas    int      `yaml:"replicas"`
}

// StepResult is the outcome of one replica of one step.
type StepResult struct {
	Step    string
	Replica int
	Config  experiment.Config
	Result  *experiment.Result
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("%w: no steps", ErrInvalidScenario)
	}
	for i, step := range scenario.Steps {
		if step.Preset != "" && config.GetPreset(step.Preset) == nil {
			return nil, fmt.Errorf("%w: step %d: unknown preset %q", ErrInvalidScenario, i+1, step.Preset)
		}
		if step.Replicas < 0 {
			return nil, fmt.Errorf("%w: step %d: replicas must be non-negative", ErrInvalidScenario, i+1)
		}
	}
	return &scenario, nil
}

// Resolve merges the step over its preset and the defaults.
func (s ScenarioStep) Resolve() experiment.Config {
	base := config.DefaultConfig()
	if p := config.GetPreset(s.Preset); p != nil {
		base.Size, base.Temperature = p.Size, p.Temperature
		base.Steps, base.SampleEvery = p.Steps, p.SampleEvery
	}

	cfg := experiment.Config{
		Size:        base.Size,
		Temperature: base.Temperature,
		Steps:       base.Steps,
		SampleEvery: base.SampleEvery,
		Seed:        base.Seed,
		Metrics:     s.Metrics,
	}
	if s.Size != 0 {
		cfg.Size = s.Size
	}
	if s.Temperature != 0 {
		cfg.Temperature = s.Temperature
	}
	if s.Steps != 0 {
		cfg.Steps = s.Steps
	}
	if s.SampleEvery != 0 {
		cfg.SampleEvery = s.SampleEvery
	}
	if s.Seed != 0 {
		cfg.Seed = s.Seed
	}
	return cfg
}

// RunScenario executes every step in order. Replica r of a step is seeded
// with the step seed plus r. Results gathered before a failure are returned
// with the error.
func RunScenario(ctx context.Context, scenario *Scenario, registry *experiment.Registry) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		name := step.Name
		if name == "" {
			name = fmt.Sprintf("step-%d", i+1)
		}
		replicas := max(step.Replicas, 1)
		base := step.Resolve()

		for r := 0; r < replicas; r++ {
			cfg := base
			cfg.Seed = base.Seed + int64(r)
			logrus.Infof("scenario %s: step %d/%d (%s) replica %d/%d", scenario.Name, i+1, len(scenario.Steps), name, r+1, replicas)

			exp := experiment.New(cfg)
			if err := exp.Setup(registry); err != nil {
				return results, fmt.Errorf("step %d setup: %w", i+1, err)
			}
			res, err := exp.Run(ctx)
			if err != nil {
				return results, fmt.Errorf("step %d run: %w", i+1, err)
			}
			results = append(results, StepResult{Step: name, Replica: r, Config: cfg, Result: res})
		}
	}

	return results, nil
}

// OrderStats counts replicas whose final |m| reached threshold.
func OrderStats(results []StepResult, threshold float64) (ordered int, disordered int) {
	for _, r := range results {
		if math.Abs(r.Result.Last().Magnetization) >= threshold {
			ordered++
		} else {
			disordered++
		}
	}
	return
}

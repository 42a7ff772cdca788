package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultSize        = 20
	DefaultTemperature = 300.0
	DefaultSteps       = 100000
	DefaultSampleEvery = 1000
	DefaultSeed        = 42

	DefaultSweepFrom   = 200.0
	DefaultSweepTo     = 2000.0
	DefaultSweepPoints = 10
	DefaultBurnIn      = 50000

	DefaultGraph           = "er"
	DefaultNodes           = 200
	DefaultEdgeProb        = 0.05
	DefaultNeighbors       = 4
	DefaultRewire          = 0.1
	DefaultAttach          = 2
	DefaultBeta            = 0.05
	DefaultGamma           = 0.1
	DefaultInitialInfected = 5
	DefaultSISSteps        = 100
)

type Config struct {
	Size        int         `yaml:"size"`
	Temperature float64     `yaml:"temperature"`
	Steps       int         `yaml:"steps"`
	SampleEvery int         `yaml:"sample_every"`
	Seed        int64       `yaml:"seed"`
	Sweep       SweepConfig `yaml:"sweep"`
	SIS         SISConfig   `yaml:"sis"`
}

type SweepConfig struct {
	From    float64 `yaml:"from"`
	To      float64 `yaml:"to"`
	Points  int     `yaml:"points"`
	BurnIn  int     `yaml:"burn_in"`
	Steps   int     `yaml:"steps"`
	Workers int     `yaml:"workers"`
}

type SISConfig struct {
	Graph           string  `yaml:"graph"`
	Nodes           int     `yaml:"nodes"`
	P               float64 `yaml:"p"`
	K               int     `yaml:"k"`
	Rewire          float64 `yaml:"rewire"`
	M               int     `yaml:"m"`
	Beta            float64 `yaml:"beta"`
	Gamma           float64 `yaml:"gamma"`
	InitialInfected int     `yaml:"initial_infected"`
	Steps           int     `yaml:"steps"`
}

func DefaultConfig() *Config {
	return &Config{
		Size:        DefaultSize,
		Temperature: DefaultTemperature,
		Steps:       DefaultSteps,
		SampleEvery: DefaultSampleEvery,
		Seed:        DefaultSeed,
		Sweep: SweepConfig{
			From:   DefaultSweepFrom,
			To:     DefaultSweepTo,
			Points: DefaultSweepPoints,
			BurnIn: DefaultBurnIn,
			Steps:  DefaultSteps,
		},
		SIS: SISConfig{
			Graph:           DefaultGraph,
			Nodes:           DefaultNodes,
			P:               DefaultEdgeProb,
			K:               DefaultNeighbors,
			Rewire:          DefaultRewire,
			M:               DefaultAttach,
			Beta:            DefaultBeta,
			Gamma:           DefaultGamma,
			InitialInfected: DefaultInitialInfected,
			Steps:           DefaultSISSteps,
		},
	}
}

// Load reads a yaml file on top of DefaultConfig.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the Ising parameters. Sweep and SIS sections are checked by
// the packages that run them.
func (c *Config) Validate() error {
	if c.Size <= 0 {
		return fmt.Errorf("size must be positive, got %d", c.Size)
	}
	if c.Temperature <= 0 {
		return fmt.Errorf("temperature must be positive, got %f", c.Temperature)
	}
	if c.Steps < 0 {
		return fmt.Errorf("steps must be non-negative, got %d", c.Steps)
	}
	if c.SampleEvery <= 0 {
		return fmt.Errorf("sample_every must be positive, got %d", c.SampleEvery)
	}
	return nil
}

package automation

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/spinlab/internal/config"
	"github.com/san-kum/spinlab/internal/experiment"
)

func TestMain(m *testing.M) {
	if os.Getenv("DEBUG_TESTS") == "" {
		logrus.SetLevel(logrus.WarnLevel)
	}
	os.Exit(m.Run())
}

const scenarioYAML = `
name: quench
description: cold and hot lattices
steps:
  - name: cold
    size: 8
    temperature: 100
    steps: 500
    sample_every: 100
    seed: 7
    replicas: 3
  - preset: iron
    steps: 200
    metrics: [energy, magnetization]
`

func TestParseScenario(t *testing.T) {
	sc, err := ParseScenario([]byte(scenarioYAML))
	require.NoError(t, err)
	assert.Equal(t, "quench", sc.Name)
	require.Len(t, sc.Steps, 2)
	assert.Equal(t, 3, sc.Steps[0].Replicas)
	assert.Equal(t, []string{"energy", "magnetization"}, sc.Steps[1].Metrics)
}

func TestParseScenarioErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"no steps", "name: empty\n"},
		{"unknown preset", "steps:\n  - preset: plasma\n"},
		{"negative replicas", "steps:\n  - replicas: -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			assert.ErrorIs(t, err, ErrInvalidScenario)
		})
	}

	_, err := ParseScenario([]byte("steps: [unterminated"))
	assert.Error(t, err)
}

func TestLoadScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(scenarioYAML), 0644))

	sc, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Len(t, sc.Steps, 2)

	_, err = LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestResolve(t *testing.T) {
	iron := config.GetPreset("iron")

	cfg := ScenarioStep{Preset: "iron", Steps: 200}.Resolve()
	assert.Equal(t, iron.Size, cfg.Size)
	assert.Equal(t, iron.Temperature, cfg.Temperature)
	assert.Equal(t, 200, cfg.Steps)
	assert.Equal(t, iron.SampleEvery, cfg.SampleEvery)
	assert.Equal(t, int64(config.DefaultSeed), cfg.Seed)

	cfg = ScenarioStep{}.Resolve()
	assert.Equal(t, config.DefaultSize, cfg.Size)
	assert.Equal(t, config.DefaultTemperature, cfg.Temperature)
}

func TestRunScenario(t *testing.T) {
	sc, err := ParseScenario([]byte(scenarioYAML))
	require.NoError(t, err)

	results, err := RunScenario(context.Background(), sc, experiment.NewRegistry())
	require.NoError(t, err)
	require.Len(t, results, 4)

	for r := 0; r < 3; r++ {
		assert.Equal(t, "cold", results[r].Step)
		assert.Equal(t, r, results[r].Replica)
		assert.Equal(t, int64(7+r), results[r].Config.Seed)
		assert.Len(t, results[r].Result.Samples, 6)
	}
	assert.Equal(t, "step-2", results[3].Step)
	assert.Len(t, results[3].Result.Metrics, 2)

	ordered, disordered := OrderStats(results, 0)
	assert.Equal(t, 4, ordered)
	assert.Equal(t, 0, disordered)
}

func TestRunScenarioStopsOnError(t *testing.T) {
	sc := &Scenario{
		Name: "broken",
		Steps: []ScenarioStep{
			{Size: 4, Steps: 10, SampleEvery: 5, Temperature: 500},
			{Size: 4, Steps: 10, SampleEvery: 5, Temperature: 500, Metrics: []string{"entropy"}},
		},
	}

	results, err := RunScenario(context.Background(), sc, experiment.NewRegistry())
	assert.Error(t, err)
	assert.Len(t, results, 1)
}

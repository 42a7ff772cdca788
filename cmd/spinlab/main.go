package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/san-kum/spinlab/internal/config"
)

var (
	logLevel   string
	configFile string
	seed       int64

	size        int
	temperature float64
	steps       int
	sampleEvery int
	preset      string
	metricNames []string
	format      string
	plot        bool
	svgPath     string

	sweepFrom    float64
	sweepTo      float64
	sweepPoints  int
	sweepBurnIn  int
	sweepWorkers int

	stepsPerFrame int
	theme         string

	graphKind string
	nodes     int
	edgeProb  float64
	neighbors int
	rewire    float64
	attach    int
	beta      float64
	gamma     float64
	infected  int
	rounds    int
	threshold float64
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "spinlab",
		Short: "2D Ising model and network dynamics lab",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logrus.ParseLevel(logLevel)
			if err != nil {
				return fmt.Errorf("invalid log level: %s", logLevel)
			}
			logrus.SetLevel(level)
			return nil
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", config.DefaultSeed, "random seed")

	rootCmd.AddCommand(newRunCmd(), newSweepCmd(), newLiveCmd(), newSISCmd(), newBatchCmd(), newPresetsCmd())
	return rootCmd
}

func latticeFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&size, "size", config.DefaultSize, "lattice side length")
	cmd.Flags().Float64Var(&temperature, "temp", config.DefaultTemperature, "temperature in Kelvin")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// resolveConfig layers the config file, then the preset, then any flag the
// user set explicitly.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Lookup("preset") != nil && preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg.Size, cfg.Temperature = p.Size, p.Temperature
		cfg.Steps, cfg.SampleEvery = p.Steps, p.SampleEvery
	}

	changed := cmd.Flags().Changed
	if changed("seed") || configFile == "" {
		cfg.Seed = seed
	}
	if changed("size") {
		cfg.Size = size
	}
	if changed("temp") {
		cfg.Temperature = temperature
	}
	if changed("steps") {
		cfg.Steps = steps
	}
	if changed("sample") {
		cfg.SampleEvery = sampleEvery
	}

	if changed("from") {
		cfg.Sweep.From = sweepFrom
	}
	if changed("to") {
		cfg.Sweep.To = sweepTo
	}
	if changed("points") {
		cfg.Sweep.Points = sweepPoints
	}
	if changed("burn-in") {
		cfg.Sweep.BurnIn = sweepBurnIn
	}
	if changed("workers") {
		cfg.Sweep.Workers = sweepWorkers
	}
	if changed("graph") {
		cfg.SIS.Graph = graphKind
	}
	if changed("nodes") {
		cfg.SIS.Nodes = nodes
	}
	if changed("p") {
		cfg.SIS.P = edgeProb
	}
	if changed("k") {
		cfg.SIS.K = neighbors
	}
	if changed("rewire") {
		cfg.SIS.Rewire = rewire
	}
	if changed("m") {
		cfg.SIS.M = attach
	}
	if changed("beta") {
		cfg.SIS.Beta = beta
	}
	if changed("gamma") {
		cfg.SIS.Gamma = gamma
	}
	if changed("infected") {
		cfg.SIS.InitialInfected = infected
	}
	if changed("rounds") {
		cfg.SIS.Steps = rounds
	}

	logrus.Debugf("resolved config: %+v", *cfg)
	return cfg, nil
}

package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/san-kum/spinlab/internal/analysis"
	"github.com/san-kum/spinlab/internal/config"
	"github.com/san-kum/spinlab/internal/experiment"
	"github.com/san-kum/spinlab/internal/ising"
	"github.com/san-kum/spinlab/internal/report"
)

var headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "run a Metropolis simulation",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	latticeFlags(cmd)
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of Metropolis trials")
	cmd.Flags().IntVar(&sampleEvery, "sample", config.DefaultSampleEvery, "sample interval in trials")
	cmd.Flags().StringSliceVar(&metricNames, "metrics", nil, "metrics to compute (default all)")
	cmd.Flags().StringVar(&format, "format", "text", "output format: text, csv or json")
	cmd.Flags().BoolVar(&plot, "plot", false, "plot magnetization over the run")
	cmd.Flags().StringVar(&svgPath, "svg", "", "write the final lattice as SVG to this path")
	return cmd
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	expCfg := experiment.Config{
		Size:        cfg.Size,
		Temperature: cfg.Temperature,
		Steps:       cfg.Steps,
		SampleEvery: cfg.SampleEvery,
		Seed:        cfg.Seed,
		Metrics:     metricNames,
	}

	exp := experiment.New(expCfg)
	if err := exp.Setup(experiment.NewRegistry()); err != nil {
		return err
	}

	start := time.Now()
	result, runErr := exp.Run(cmd.Context())
	if runErr != nil {
		if result == nil {
			return runErr
		}
		logrus.Warnf("run stopped early: %v", runErr)
	}
	elapsed := time.Since(start)

	rep := report.New(expCfg, result)
	out := cmd.OutOrStdout()

	switch format {
	case "csv":
		err = rep.WriteCSV(out)
	case "json":
		err = rep.WriteJSON(out)
	case "text":
		err = printRunSummary(out, rep, elapsed)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}

	if svgPath != "" {
		if err := writeLatticeSVG(svgPath, exp.Simulator().Snapshot()); err != nil {
			return err
		}
		logrus.Infof("wrote lattice to %s", svgPath)
	}

	// The partial report is written, but the command still fails.
	if runErr != nil {
		return fmt.Errorf("run incomplete after %d steps: %w", result.StepsTaken, runErr)
	}
	return nil
}

func printRunSummary(out io.Writer, rep *report.Report, elapsed time.Duration) error {
	last := ising.Sample{}
	if len(rep.Samples) > 0 {
		last = rep.Samples[len(rep.Samples)-1]
	}
	spins := float64(rep.Size * rep.Size)

	fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("ising %dx%d @ %.1fK", rep.Size, rep.Size, rep.Temperature)))
	fmt.Fprintf(out, "run id: %s\n", rep.ID)
	fmt.Fprintf(out, "completed in %v\n", elapsed)
	fmt.Fprintf(out, "steps: %d (accepted %d)\n", rep.Steps, rep.Accepted)
	fmt.Fprintf(out, "T/Tc: %.3f\n", rep.Temperature/ising.CriticalTemperature)
	fmt.Fprintf(out, "final energy/spin: %.6f eV\n", last.Energy/spins)
	fmt.Fprintf(out, "final magnetism: %+.4f\n", last.Magnetization)
	if tau, err := analysis.IntegratedTime(absMagnetization(rep.Samples)); err == nil {
		fmt.Fprintf(out, "|m| integrated autocorrelation time (1/2 + Σρ): %.1f samples\n", tau)
	}

	fmt.Fprintln(out, "\nmetrics:")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, name := range rep.MetricNames() {
		fmt.Fprintf(w, "  %s\t%.6g\n", name, rep.Metrics[name])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if plot && len(rep.Samples) > 1 {
		mags := make([]float64, len(rep.Samples))
		for i, s := range rep.Samples {
			mags[i] = s.Magnetization
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, asciigraph.Plot(mags,
			asciigraph.Height(10),
			asciigraph.Width(60),
			asciigraph.Caption("magnetism per sample")))
	}
	return nil
}

func absMagnetization(samples []ising.Sample) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = math.Abs(s.Magnetization)
	}
	return out
}

func writeLatticeSVG(path string, l *ising.Lattice) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	scale := max(1, int(math.Ceil(400/float64(l.Size()))))
	if err := report.LatticeSVG(f, l, scale, "#ff00ff", "#0a0a0a"); err != nil {
		return err
	}
	return f.Close()
}

package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/spinlab/internal/config"
	"github.com/san-kum/spinlab/internal/experiment"
	"github.com/san-kum/spinlab/internal/ising"
	"github.com/san-kum/spinlab/internal/optim"
	"github.com/san-kum/spinlab/internal/report"
)

func newSweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "measure observables across a temperature range",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	cmd.Flags().IntVar(&size, "size", config.DefaultSize, "lattice side length")
	cmd.Flags().Float64Var(&sweepFrom, "from", config.DefaultSweepFrom, "lowest temperature")
	cmd.Flags().Float64Var(&sweepTo, "to", config.DefaultSweepTo, "highest temperature")
	cmd.Flags().IntVar(&sweepPoints, "points", config.DefaultSweepPoints, "number of temperatures")
	cmd.Flags().IntVar(&sweepBurnIn, "burn-in", config.DefaultBurnIn, "trials discarded before measuring")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "measured trials per temperature")
	cmd.Flags().IntVar(&sampleEvery, "sample", config.DefaultSampleEvery, "sample interval in trials")
	cmd.Flags().IntVar(&sweepWorkers, "workers", 0, "concurrent temperatures (0 = all CPUs)")
	cmd.Flags().StringVar(&format, "format", "text", "output format: text, csv or json")
	cmd.Flags().BoolVar(&plot, "plot", false, "plot magnetization against temperature")
	return cmd
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("steps") {
		cfg.Sweep.Steps = steps
	}

	points, err := experiment.Sweep(cmd.Context(), experiment.SweepConfig{
		Size:        cfg.Size,
		From:        cfg.Sweep.From,
		To:          cfg.Sweep.To,
		Points:      cfg.Sweep.Points,
		BurnIn:      cfg.Sweep.BurnIn,
		Steps:       cfg.Sweep.Steps,
		SampleEvery: cfg.SampleEvery,
		Seed:        cfg.Seed,
		Workers:     cfg.Sweep.Workers,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch format {
	case "csv":
		return report.WriteSweepCSV(out, points)
	case "json":
		return report.WriteSweepJSON(out, points)
	case "text":
		return printSweep(out, cfg.Size, points)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func printSweep(out io.Writer, n int, points []experiment.SweepPoint) error {
	fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("temperature sweep, %dx%d lattice", n, n)))

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "T(K)\t|m|\tE/spin(eV)\tC\tχ\tacc\tτ(½+Σρ)")
	for _, p := range points {
		fmt.Fprintf(w, "%.1f\t%.4f±%.4f\t%.5f±%.5f\t%.4g\t%.4g\t%.3f\t%.1f\n",
			p.Temperature, p.Magnetization, p.MagnetizationStd,
			p.Energy, p.EnergyStd, p.SpecificHeat, p.Susceptibility, p.AcceptanceRate, p.MagnetizationTau)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(points) >= 3 {
		temps := make([]float64, len(points))
		heat := make([]float64, len(points))
		chi := make([]float64, len(points))
		for i, p := range points {
			temps[i], heat[i], chi[i] = p.Temperature, p.SpecificHeat, p.Susceptibility
		}
		fromHeat, err := optim.Peak(temps, heat)
		if err != nil {
			return err
		}
		fromChi, err := optim.Peak(temps, chi)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\nTc estimate: %.0fK (C peak), %.0fK (χ peak), exact %.0fK\n",
			fromHeat.X, fromChi.X, ising.CriticalTemperature)
	}

	if plot && len(points) > 1 {
		mags := make([]float64, len(points))
		for i, p := range points {
			mags[i] = p.Magnetization
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, asciigraph.Plot(mags,
			asciigraph.Height(10),
			asciigraph.Width(60),
			asciigraph.Caption(fmt.Sprintf("|m| from %.0fK to %.0fK", points[0].Temperature, points[len(points)-1].Temperature))))
	}
	return nil
}

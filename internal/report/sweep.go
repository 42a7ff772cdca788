package report

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/san-kum/spinlab/internal/experiment"
)

var sweepHeader = []string{
	"temperature", "magnetization", "magnetization_std",
	"energy", "energy_std", "specific_heat", "susceptibility", "acceptance_rate", "magnetization_tau",
}

func WriteSweepCSV(w io.Writer, points []experiment.SweepPoint) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(sweepHeader); err != nil {
		return err
	}
	for _, p := range points {
		row := []string{
			formatFloat(p.Temperature),
			formatFloat(p.Magnetization),
			formatFloat(p.MagnetizationStd),
			formatFloat(p.Energy),
			formatFloat(p.EnergyStd),
			strconv.FormatFloat(p.SpecificHeat, 'g', 6, 64),
			strconv.FormatFloat(p.Susceptibility, 'g', 6, 64),
			formatFloat(p.AcceptanceRate),
			formatFloat(p.MagnetizationTau),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteSweepJSON(w io.Writer, points []experiment.SweepPoint) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(points)
}

// WriteCurveCSV writes a step-indexed series under the given column name.
func WriteCurveCSV(w io.Writer, column string, values []float64) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"step", column}); err != nil {
		return err
	}
	for i, v := range values {
		if err := cw.Write([]string{strconv.Itoa(i), formatFloat(v)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

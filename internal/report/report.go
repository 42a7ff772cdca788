// Package report serialises runs, sweeps and epidemic curves. Every writer
// takes an io.Writer; nothing here touches the filesystem.
package report

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/rs/xid"

	"github.com/san-kum/spinlab/internal/experiment"
	"github.com/san-kum/spinlab/internal/ising"
)

type Report struct {
	ID          string             `json:"id"`
	CreatedAt   time.Time          `json:"created_at"`
	Size        int                `json:"size"`
	Temperature float64            `json:"temperature"`
	Seed        int64              `json:"seed"`
	Steps       int                `json:"steps"`
	Accepted    int                `json:"accepted"`
	Metrics     map[string]float64 `json:"metrics"`
	Samples     []ising.Sample     `json:"samples"`
}

// New tags a finished run with a fresh id.
func New(cfg experiment.Config, res *experiment.Result) *Report {
	return &Report{
		ID:          xid.New().String(),
		CreatedAt:   time.Now().UTC(),
		Size:        cfg.Size,
		Temperature: cfg.Temperature,
		Seed:        cfg.Seed,
		Steps:       res.StepsTaken,
		Accepted:    res.Accepted,
		Metrics:     res.Metrics,
		Samples:     res.Samples,
	}
}

// MetricNames returns the metric keys in sorted order.
func (r *Report) MetricNames() []string {
	names := make([]string, 0, len(r.Metrics))
	for k := range r.Metrics {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteCSV writes one row per sample.
func (r *Report) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"step", "temperature", "energy", "magnetization", "accepted"}); err != nil {
		return err
	}
	for _, s := range r.Samples {
		row := []string{
			strconv.Itoa(s.Step),
			formatFloat(s.Temperature),
			formatFloat(s.Energy),
			formatFloat(s.Magnetization),
			strconv.Itoa(s.Accepted),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

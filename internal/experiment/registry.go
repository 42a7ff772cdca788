package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/spinlab/internal/ising"
	"github.com/san-kum/spinlab/internal/metrics"
)

type Registry struct {
	metrics map[string]func(size int) ising.Metric
}

func NewRegistry() *Registry {
	r := &Registry{
		metrics: make(map[string]func(size int) ising.Metric),
	}

	r.metrics["energy"] = func(size int) ising.Metric { return metrics.NewEnergy(size) }
	r.metrics["magnetization"] = func(int) ising.Metric { return metrics.NewMagnetization() }
	r.metrics["specific_heat"] = func(size int) ising.Metric { return metrics.NewSpecificHeat(size) }
	r.metrics["susceptibility"] = func(size int) ising.Metric { return metrics.NewSusceptibility(size) }
	r.metrics["acceptance_rate"] = func(int) ising.Metric { return metrics.NewAcceptanceRate() }

	return r
}

func (r *Registry) GetMetric(name string, size int) (ising.Metric, error) {
	fn, ok := r.metrics[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
	return fn(size), nil
}

func (r *Registry) ListMetrics() []string {
	names := make([]string, 0, len(r.metrics))
	for name := range r.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultMetrics returns one instance of every registered metric.
func (r *Registry) DefaultMetrics(size int) []ising.Metric {
	out := make([]ising.Metric, 0, len(r.metrics))
	for _, name := range r.ListMetrics() {
		out = append(out, r.metrics[name](size))
	}
	return out
}

package metrics

import "gonum.org/v1/gonum/stat"

// series accumulates observations for window statistics.
type series struct {
	values []float64
}

func (s *series) add(v float64) { s.values = append(s.values, v) }
func (s *series) reset()        { s.values = s.values[:0] }

func (s *series) mean() float64 {
	if len(s.values) == 0 {
		return 0
	}
	return stat.Mean(s.values, nil)
}

// variance is the unbiased sample variance, zero below two observations.
func (s *series) variance() float64 {
	if len(s.values) < 2 {
		return 0
	}
	return stat.Variance(s.values, nil)
}

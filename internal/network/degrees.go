package network

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/stat"
)

// Degrees returns the degree of every node, ordered by node ID.
func Degrees(g graph.Undirected) []int {
	ids := NodeIDs(g)
	out := make([]int, len(ids))
	for i, id := range ids {
		out[i] = g.From(id).Len()
	}
	return out
}

// NodeIDs returns the node IDs of g in ascending order.
func NodeIDs(g graph.Graph) []int64 {
	nodes := graph.NodesOf(g.Nodes())
	ids := make([]int64, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID()
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// DegreeStats summarises a degree sequence.
type DegreeStats struct {
	Mean      float64
	StdDev    float64
	Min, Max  int
	Histogram []float64 // Histogram[d] counts nodes of degree d
}

func Summarize(degrees []int) (DegreeStats, error) {
	if len(degrees) == 0 {
		return DegreeStats{}, fmt.Errorf("%w: empty degree sequence", ErrInvalidParams)
	}

	x := make([]float64, len(degrees))
	for i, d := range degrees {
		x[i] = float64(d)
	}
	sort.Float64s(x)

	s := DegreeStats{Min: int(x[0]), Max: int(x[len(x)-1])}
	if len(x) > 1 {
		s.Mean, s.StdDev = stat.MeanStdDev(x, nil)
	} else {
		s.Mean = x[0]
	}

	dividers := make([]float64, s.Max+2)
	for i := range dividers {
		dividers[i] = float64(i)
	}
	s.Histogram = stat.Histogram(nil, dividers, x, nil)
	return s, nil
}

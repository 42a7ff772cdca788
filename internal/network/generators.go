// Package network builds the random graphs the epidemic model runs on.
// Graphs are gonum simple.UndirectedGraph values with node IDs 0..n-1.
package network

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/graph/simple"
)

// ErrInvalidParams indicates generator parameters outside their valid range.
var ErrInvalidParams = errors.New("network: invalid generator parameters")

// Source is the random capability the generators draw from. *math/rand.Rand
// satisfies it.
type Source interface {
	Intn(n int) int
	Float64() float64
}

func withNodes(n int) *simple.UndirectedGraph {
	g := simple.NewUndirectedGraph()
	for i := 0; i < n; i++ {
		g.AddNode(simple.Node(i))
	}
	return g
}

func connect(g *simple.UndirectedGraph, u, v int) {
	g.SetEdge(g.NewEdge(simple.Node(u), simple.Node(v)))
}

// ErdosRenyi returns G(n, p): every unordered pair is joined independently
// with probability p. Pairs are visited in (u, v) order with u < v.
func ErdosRenyi(n int, p float64, src Source) (*simple.UndirectedGraph, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: n must be positive, got %d", ErrInvalidParams, n)
	}
	if p < 0 || p > 1 {
		return nil, fmt.Errorf("%w: p must be in [0,1], got %f", ErrInvalidParams, p)
	}

	g := withNodes(n)
	for u := 0; u < n; u++ {
		for v := u + 1; v < n; v++ {
			if src.Float64() < p {
				connect(g, u, v)
			}
		}
	}
	return g, nil
}

// WattsStrogatz returns a small-world graph: a ring where each node joins its
// k nearest neighbours (k/2 on each side), then each ring edge (u, u+j) is
// rewired with probability beta to (u, w) for a uniform w that is neither u
// nor already adjacent to u.
func WattsStrogatz(n, k int, beta float64, src Source) (*simple.UndirectedGraph, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: n must be positive, got %d", ErrInvalidParams, n)
	}
	if k < 0 || k%2 != 0 || k >= n {
		return nil, fmt.Errorf("%w: k must be even and in [0,n), got %d", ErrInvalidParams, k)
	}
	if beta < 0 || beta > 1 {
		return nil, fmt.Errorf("%w: beta must be in [0,1], got %f", ErrInvalidParams, beta)
	}

	g := withNodes(n)
	for u := 0; u < n; u++ {
		for j := 1; j <= k/2; j++ {
			connect(g, u, (u+j)%n)
		}
	}

	for j := 1; j <= k/2; j++ {
		for u := 0; u < n; u++ {
			if src.Float64() >= beta {
				continue
			}
			v := (u + j) % n
			if g.From(int64(u)).Len() >= n-1 {
				continue
			}
			w := src.Intn(n)
			for w == u || g.HasEdgeBetween(int64(u), int64(w)) {
				w = src.Intn(n)
			}
			g.RemoveEdge(int64(u), int64(v))
			connect(g, u, w)
		}
	}
	return g, nil
}

// BarabasiAlbert grows a graph by preferential attachment: starting from m
// isolated nodes, each new node joins m distinct existing nodes chosen with
// probability proportional to their degree.
func BarabasiAlbert(n, m int, src Source) (*simple.UndirectedGraph, error) {
	if m < 1 || m >= n {
		return nil, fmt.Errorf("%w: m must be in [1,n), got m=%d n=%d", ErrInvalidParams, m, n)
	}

	g := withNodes(n)
	targets := make([]int, m)
	for i := range targets {
		targets[i] = i
	}

	// every endpoint appears once per incident edge, so uniform picks from
	// repeated are degree-proportional
	repeated := make([]int, 0, 2*m*n)
	for source := m; source < n; source++ {
		for _, t := range targets {
			connect(g, source, t)
		}
		repeated = append(repeated, targets...)
		for i := 0; i < m; i++ {
			repeated = append(repeated, source)
		}
		targets = pickDistinct(repeated, m, src)
	}
	return g, nil
}

func pickDistinct(pool []int, m int, src Source) []int {
	seen := make(map[int]bool, m)
	out := make([]int, 0, m)
	for len(out) < m {
		x := pool[src.Intn(len(pool))]
		if seen[x] {
			continue
		}
		seen[x] = true
		out = append(out, x)
	}
	return out
}

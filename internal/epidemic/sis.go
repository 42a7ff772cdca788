// Package epidemic implements a synchronous SIS (susceptible-infected-
// susceptible) process on an undirected graph.
package epidemic

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/graph"
)

// ErrInvalidParams indicates rates outside [0,1] or an impossible initial
// infected count.
var ErrInvalidParams = errors.New("epidemic: invalid parameters")

type Status uint8

const (
	Susceptible Status = iota
	Infected
)

func (s Status) String() string {
	switch s {
	case Susceptible:
		return "S"
	case Infected:
		return "I"
	default:
		return "?"
	}
}

// Source is the random capability the model draws from. *math/rand.Rand
// satisfies it.
type Source interface {
	Float64() float64
	Perm(n int) []int
}

type Params struct {
	// Beta is the per-contact transmission probability per step.
	Beta float64
	// Gamma is the recovery probability per step.
	Gamma float64
	// InitialInfected nodes are chosen uniformly without replacement.
	InitialInfected int
}

func (p Params) validate(n int) error {
	if p.Beta < 0 || p.Beta > 1 {
		return fmt.Errorf("%w: beta must be in [0,1], got %f", ErrInvalidParams, p.Beta)
	}
	if p.Gamma < 0 || p.Gamma > 1 {
		return fmt.Errorf("%w: gamma must be in [0,1], got %f", ErrInvalidParams, p.Gamma)
	}
	if p.InitialInfected < 0 || p.InitialInfected > n {
		return fmt.Errorf("%w: initial infected must be in [0,%d], got %d", ErrInvalidParams, n, p.InitialInfected)
	}
	return nil
}

type Model struct {
	g      graph.Undirected
	params Params
	src    Source

	ids   []int64
	index map[int64]int
	cur   []Status
	nxt   []Status
	steps int
}

func New(g graph.Undirected, p Params, src Source) (*Model, error) {
	nodes := graph.NodesOf(g.Nodes())
	if len(nodes) == 0 {
		return nil, fmt.Errorf("%w: graph has no nodes", ErrInvalidParams)
	}
	if err := p.validate(len(nodes)); err != nil {
		return nil, err
	}

	ids := make([]int64, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID()
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	index := make(map[int64]int, len(ids))
	for i, id := range ids {
		index[id] = i
	}

	m := &Model{
		g:      g,
		params: p,
		src:    src,
		ids:    ids,
		index:  index,
		cur:    make([]Status, len(ids)),
		nxt:    make([]Status, len(ids)),
	}
	for _, i := range src.Perm(len(ids))[:p.InitialInfected] {
		m.cur[i] = Infected
	}
	return m, nil
}

// Step advances every node at once from the current snapshot. An infected
// node recovers with probability gamma; a susceptible node with k infected
// neighbours is infected with probability 1-(1-beta)^k. Nodes are visited in
// ascending ID order and a draw is only taken when an event is possible.
func (m *Model) Step() {
	for i, id := range m.ids {
		switch m.cur[i] {
		case Infected:
			if m.src.Float64() < m.params.Gamma {
				m.nxt[i] = Susceptible
			} else {
				m.nxt[i] = Infected
			}
		default:
			k := m.infectedNeighbors(id)
			m.nxt[i] = Susceptible
			if k > 0 && m.src.Float64() < 1-math.Pow(1-m.params.Beta, float64(k)) {
				m.nxt[i] = Infected
			}
		}
	}
	m.cur, m.nxt = m.nxt, m.cur
	m.steps++
}

func (m *Model) infectedNeighbors(id int64) int {
	k := 0
	it := m.g.From(id)
	for it.Next() {
		if m.cur[m.index[it.Node().ID()]] == Infected {
			k++
		}
	}
	return k
}

// Run performs steps updates and returns the infected fraction before the
// first update and after each one.
func (m *Model) Run(ctx context.Context, steps int) ([]float64, error) {
	if steps < 0 {
		return nil, fmt.Errorf("%w: steps must be non-negative, got %d", ErrInvalidParams, steps)
	}
	out := make([]float64, 0, steps+1)
	out = append(out, m.InfectedFraction())
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return out, ctx.Err()
		default:
		}
		m.Step()
		out = append(out, m.InfectedFraction())
	}
	return out, nil
}

func (m *Model) Infected() int {
	n := 0
	for _, s := range m.cur {
		if s == Infected {
			n++
		}
	}
	return n
}

func (m *Model) InfectedFraction() float64 {
	return float64(m.Infected()) / float64(len(m.cur))
}

// Status returns the state of node id, and false for unknown nodes.
func (m *Model) Status(id int64) (Status, bool) {
	i, ok := m.index[id]
	if !ok {
		return Susceptible, false
	}
	return m.cur[i], true
}

func (m *Model) Steps() int { return m.steps }
func (m *Model) Nodes() int { return len(m.ids) }

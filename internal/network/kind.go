package network

import (
	"fmt"

	"gonum.org/v1/gonum/graph/simple"
)

// Params carries the parameters of every generator; each kind reads only its
// own fields.
type Params struct {
	Nodes  int
	P      float64 // er
	K      int     // ws
	Rewire float64 // ws
	M      int     // ba
}

var generators = map[string]func(Params, Source) (*simple.UndirectedGraph, error){
	"er": func(p Params, src Source) (*simple.UndirectedGraph, error) { return ErdosRenyi(p.Nodes, p.P, src) },
	"ws": func(p Params, src Source) (*simple.UndirectedGraph, error) {
		return WattsStrogatz(p.Nodes, p.K, p.Rewire, src)
	},
	"ba": func(p Params, src Source) (*simple.UndirectedGraph, error) { return BarabasiAlbert(p.Nodes, p.M, src) },
}

// Generate builds a graph of the named kind: "er", "ws" or "ba".
func Generate(kind string, p Params, src Source) (*simple.UndirectedGraph, error) {
	fn, ok := generators[kind]
	if !ok {
		return nil, fmt.Errorf("unknown graph kind: %s", kind)
	}
	return fn(p, src)
}

func Kinds() []string { return []string{"ba", "er", "ws"} }

package automaton

import (
	"fmt"

	"github.com/katalvlaran/lvlath/core"
)

// ProductState decodes a product-automaton vertex back into the pair of
// component states it came from (spec §4.7): the model-BA index (as
// produced by LiftModel) and the formula-BA index (as produced by
// GBAToBA).
type ProductState struct {
	ModelIndex int
	AutoIndex  int
}

// vertexID encodes a product state as the string vertex ID lvlath/core
// needs. The encoding is deliberately unambiguous regardless of how large
// either component index grows.
func vertexID(modelIdx, autoIdx int) string {
	return fmt.Sprintf("%d:%d", modelIdx, autoIdx)
}

// Product is the synchronous product of a lifted model automaton and a
// formula automaton (spec §4.7, C7): a graph whose vertices are pairs
// (model state, formula-automaton state), built lazily by forward
// reachability from the combined initial states, with an edge whenever
// both components can make a matching move under the same symbol.
//
// The graph itself is an lvlath/core.Graph so the emptiness checker (C8)
// can walk it with the same graph-traversal primitives the rest of the
// module uses, rather than a bespoke adjacency structure.
type Product struct {
	Graph   *core.Graph
	Init    []string
	Accept  map[string]bool
	States  map[string]ProductState
}

// BuildProduct constructs the synchronous product of modelBA (from
// LiftModel) and formulaBA (from GBAToBA). A product state is accepting
// iff its formula-automaton component is accepting in formulaBA — modelBA
// is always-accepting by construction (spec §4.5), so it never restricts
// acceptance.
func BuildProduct(modelBA, formulaBA *BA) *Product {
	g := core.NewGraph(core.WithDirected(true), core.WithLoops(), core.WithMultiEdges())
	p := &Product{
		Graph:  g,
		Accept: make(map[string]bool),
		States: make(map[string]ProductState),
	}

	visited := make(map[string]bool)
	var queue []string

	addVertex := func(m, a int) string {
		id := vertexID(m, a)
		if visited[id] {
			return id
		}
		visited[id] = true
		_ = g.AddVertex(id)
		p.States[id] = ProductState{ModelIndex: m, AutoIndex: a}
		if formulaBA.Accept.Contains(a) {
			p.Accept[id] = true
		}
		queue = append(queue, id)
		return id
	}

	for _, m0 := range modelBA.Init {
		for _, a0 := range formulaBA.Init {
			p.Init = append(p.Init, addVertex(m0, a0))
		}
	}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		st := p.States[id]

		for _, me := range modelBA.Trans[st.ModelIndex] {
			for _, ae := range formulaBA.Trans[st.AutoIndex] {
				if me.Symbol != ae.Symbol {
					continue
				}
				toID := vertexID(me.To, ae.To)
				if !visited[toID] {
					addVertex(me.To, ae.To)
				}
				_, _ = g.AddEdge(id, toID, 0)
			}
		}
	}

	return p
}

// Successors returns the IDs reachable from vertex id in one product step.
func (p *Product) Successors(id string) []string {
	neighbors, err := p.Graph.Neighbors(id)
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(neighbors))
	for _, e := range neighbors {
		out = append(out, e.To)
	}
	return out
}

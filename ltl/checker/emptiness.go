package checker

import (
	"github.com/rfielding/ltlcheck/ltl/automaton"
)

// Node-visitation colors for nestedDFS's outer traversal. The nested-DFS
// and Tarjan SCC algorithms below need a two-phase (white/gray/black) and
// a low-link state machine respectively, neither of which lvlath/dfs's
// single-pass visitor exposes, so both are hand-written; these constants
// replace what was an unused import of its White/Gray/Black values.
const (
	white = 0
	gray  = 1
	black = 2
)

// Lasso is an accepting run witness in a product automaton (spec §4.8): a
// finite prefix from an initial state up to, but not including, a pivot
// state, followed by a cycle that starts at the pivot and whose last state
// has an edge back to it; Prefix followed by Cycle is a path of the
// product, and the pivot appears once. Both are sequences of product-graph
// vertex IDs ("model:auto" pairs, see automaton.BuildProduct); Checker
// projects them down to model states before handing them to a caller.
type Lasso struct {
	Prefix []string
	Cycle  []string
}

// FindAcceptingLasso decides whether p admits an accepting run and
// returns a witness if so (spec §4.8). It applies Strategy A (nested DFS)
// first; if that reports emptiness but accepting states exist in p, it
// cross-checks with Strategy B (Tarjan SCC) as the spec's fallback
// describes. Disagreement between the two is a ProcessingError — it can
// only mean a bug in one of them, never bad input.
func FindAcceptingLasso(p *automaton.Product) (*Lasso, error) {
	if lasso := edgeCaseAcceptingSink(p); lasso != nil {
		return lasso, nil
	}

	lasso, err := nestedDFS(p)
	if err != nil {
		return nil, err
	}
	if lasso != nil {
		return lasso, nil
	}

	anyAccepting := false
	for _, ok := range p.Accept {
		if ok {
			anyAccepting = true
			break
		}
	}
	if !anyAccepting {
		return nil, nil
	}

	fallback, err := sccFallback(p)
	if err != nil {
		return nil, err
	}
	if fallback != nil {
		return nil, newError(ProcessingError, "nested DFS reported emptiness but the SCC fallback found an accepting lasso")
	}
	return nil, nil
}

// edgeCaseAcceptingSink handles spec §4.8's named edge case: an initial
// state that is itself accepting and has no outgoing edges at all. No
// infinite run passes through such a state in general, but the spec
// defines this degenerate case as a witness in its own right, so it is
// checked before the general algorithms run.
func edgeCaseAcceptingSink(p *automaton.Product) *Lasso {
	for _, s0 := range p.Init {
		if !p.Accept[s0] {
			continue
		}
		if len(p.Successors(s0)) == 0 {
			return &Lasso{Prefix: nil, Cycle: []string{s0}}
		}
	}
	return nil
}

// nestedDFS implements Strategy A (spec §4.8): an outer DFS over the
// product graph, and — on post-order exit of each accepting state — an
// inner DFS searching for a path back to it.
func nestedDFS(p *automaton.Product) (*Lasso, error) {
	color := make(map[string]int)
	parent := make(map[string]string)
	var result *Lasso

	var visit func(u string) error
	visit = func(u string) error {
		color[u] = gray
		for _, v := range p.Successors(u) {
			if result != nil {
				return nil
			}
			if color[v] == white {
				parent[v] = u
				if err := visit(v); err != nil {
					return err
				}
			}
		}
		color[u] = black

		if result == nil && p.Accept[u] {
			cycle := findCycleFrom(p, u, nil)
			if cycle != nil {
				prefix, err := reconstructPrefix(parent, u)
				if err != nil {
					return err
				}
				// Drop the pivot from the prefix end and from the cycle end
				// so it appears once, as Cycle[0].
				result = &Lasso{Prefix: prefix[:len(prefix)-1], Cycle: cycle[:len(cycle)-1]}
			}
		}
		return nil
	}

	for _, s0 := range p.Init {
		if result != nil {
			break
		}
		if color[s0] == white {
			if err := visit(s0); err != nil {
				return nil, err
			}
		}
	}

	return result, nil
}

// findCycleFrom searches for a path from a back to a using a DFS confined
// to allowed (nil means "the whole graph"). It returns the cycle as
// [a, ..., a] (pivot repeated at both ends) or nil if a cannot reach
// itself.
func findCycleFrom(p *automaton.Product, a string, allowed map[string]bool) []string {
	parent := make(map[string]string)
	visited := map[string]bool{a: true}
	stack := []string{a}

	for len(stack) > 0 {
		u := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, v := range p.Successors(u) {
			if allowed != nil && !allowed[v] {
				continue
			}
			if v == a {
				chain := []string{}
				cur := u
				for cur != a {
					chain = append(chain, cur)
					cur = parent[cur]
				}
				path := []string{a}
				for i := len(chain) - 1; i >= 0; i-- {
					path = append(path, chain[i])
				}
				path = append(path, a)
				return path
			}
			if !visited[v] {
				visited[v] = true
				parent[v] = u
				stack = append(stack, v)
			}
		}
	}
	return nil
}

// reconstructPrefix walks parent pointers from node back to its DFS root
// (the first node on the chain with no recorded parent) and returns the
// path in root-to-node order.
func reconstructPrefix(parent map[string]string, node string) ([]string, error) {
	path := []string{node}
	cur := node
	for {
		p, ok := parent[cur]
		if !ok {
			break
		}
		path = append(path, p)
		cur = p
		if len(path) > len(parent)+1 {
			return nil, newError(ProcessingError, "prefix reconstruction did not terminate: parent-pointer cycle")
		}
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}

// tarjan computes strongly connected components of a product graph via
// Tarjan's algorithm: index/lowlink/on-stack bookkeeping that a single-pass
// DFS visitor has no hook for, so it is hand-written rather than built on
// top of one.
type tarjan struct {
	p       *automaton.Product
	index   map[string]int
	lowlink map[string]int
	onStack map[string]bool
	stack   []string
	counter int
	sccs    [][]string
}

func (t *tarjan) strongconnect(v string) {
	t.index[v] = t.counter
	t.lowlink[v] = t.counter
	t.counter++
	t.stack = append(t.stack, v)
	t.onStack[v] = true

	for _, w := range t.p.Successors(v) {
		if _, seen := t.index[w]; !seen {
			t.strongconnect(w)
			if t.lowlink[w] < t.lowlink[v] {
				t.lowlink[v] = t.lowlink[w]
			}
		} else if t.onStack[w] {
			if t.index[w] < t.lowlink[v] {
				t.lowlink[v] = t.index[w]
			}
		}
	}

	if t.lowlink[v] == t.index[v] {
		var scc []string
		for {
			n := len(t.stack) - 1
			w := t.stack[n]
			t.stack = t.stack[:n]
			t.onStack[w] = false
			scc = append(scc, w)
			if w == v {
				break
			}
		}
		t.sccs = append(t.sccs, scc)
	}
}

// sccFallback implements Strategy B (spec §4.8): find a non-trivial
// accepting SCC and reconstruct a lasso through it.
func sccFallback(p *automaton.Product) (*Lasso, error) {
	t := &tarjan{p: p, index: map[string]int{}, lowlink: map[string]int{}, onStack: map[string]bool{}}
	for _, s0 := range p.Init {
		if _, seen := t.index[s0]; !seen {
			t.strongconnect(s0)
		}
	}

	for _, scc := range t.sccs {
		sccSet := make(map[string]bool, len(scc))
		var pivot string
		for _, v := range scc {
			sccSet[v] = true
			if pivot == "" && p.Accept[v] {
				pivot = v
			}
		}
		if pivot == "" {
			continue
		}

		nonTrivial := len(scc) > 1
		if !nonTrivial {
			for _, w := range p.Successors(scc[0]) {
				if w == scc[0] {
					nonTrivial = true
					break
				}
			}
		}
		if !nonTrivial {
			continue
		}

		prefix, err := bfsPrefix(p, pivot)
		if err != nil {
			return nil, err
		}
		cycle := findCycleFrom(p, pivot, sccSet)
		if cycle == nil {
			return nil, newError(ProcessingError, "non-trivial accepting SCC has no internal cycle back to its pivot")
		}
		return &Lasso{Prefix: prefix[:len(prefix)-1], Cycle: cycle[:len(cycle)-1]}, nil
	}
	return nil, nil
}

// bfsPrefix finds a shortest path from any initial state of p to target,
// breadth-first.
func bfsPrefix(p *automaton.Product, target string) ([]string, error) {
	parent := make(map[string]string)
	visited := make(map[string]bool)
	var queue []string
	for _, s0 := range p.Init {
		if !visited[s0] {
			visited[s0] = true
			queue = append(queue, s0)
		}
	}

	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		if u == target {
			return reconstructPrefix(parent, u)
		}
		for _, v := range p.Successors(u) {
			if !visited[v] {
				visited[v] = true
				parent[v] = u
				queue = append(queue, v)
			}
		}
	}
	return nil, newError(ProcessingError, "accepting SCC state is unreachable from the product's initial states")
}

// Package tableau implements the tableau graph builder (C3) and the GBA
// acceptance-set generator (C4): the rewriting procedure that expands an
// NNF formula into a generalized Büchi automaton over tableau nodes, and
// the per-liveness-subformula acceptance sets that give runs over it
// their meaning.
package tableau

import (
	"errors"
	"fmt"
	"sort"

	"github.com/rfielding/ltlcheck/ltl"
	"github.com/rfielding/ltlcheck/ltl/automaton"
)

// ErrLimitExceeded is returned by Build when the tableau grows past the
// caller's maxNodes bound (spec §4.2 requires an implementation to cap
// node count and abort rather than expand unboundedly).
var ErrLimitExceeded = errors.New("tableau: node limit exceeded")

// Node is a tableau node (spec §3/§4.2): Current holds the elementary
// (literal) obligations decided for "now", Next holds the obligations
// deferred to the node reached one step later. Obligations additionally
// retains every formula — elementary or compound — resolved while
// building this node, the set the acceptance generator (C4) inspects; it
// plays the role the literature calls a node's "Old" set.
type Node struct {
	Current     map[string]ltl.Formula
	Next        map[string]ltl.Formula
	Obligations map[string]ltl.Formula
}

func (n *Node) key() string {
	return setKey(n.Current) + "|" + setKey(n.Next)
}

func setKey(m map[string]ltl.Formula) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := ""
	for i, k := range keys {
		if i > 0 {
			out += ","
		}
		out += k
	}
	return out
}

// outcome is one internally-consistent branch result from solve: the
// literal propositions decided true/false this step, the obligations
// deferred to the successor node, and the full processed set ("Old").
type outcome struct {
	pPlus     map[ltl.PID]ltl.Proposition
	pMinus    map[ltl.PID]ltl.Proposition
	next      map[string]ltl.Formula
	processed map[string]ltl.Formula
}

// Build expands nnfFormula into a GBA whose states are tableau nodes
// (spec §4.2). maxNodes <= 0 means unbounded.
func Build(nnfFormula ltl.Formula, alphabet automaton.Alphabet, maxNodes int) (*automaton.GBA, []*Node, error) {
	initial := &Node{
		Current:     map[string]ltl.Formula{},
		Next:        map[string]ltl.Formula{nnfFormula.Key(): nnfFormula},
		Obligations: map[string]ltl.Formula{},
	}

	nodes := []*Node{initial}
	nodeIndex := map[string]int{initial.key(): 0}

	type edgeKey struct {
		sym automaton.Symbol
		to  int
	}
	edgeSeen := map[int]map[edgeKey]bool{}
	edges := map[int][]edgeKey{}

	queue := []int{0}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		n := nodes[id]

		// Only the obligations deferred to this node (n.Next, populated by
		// the predecessor's expansion) seed the worklist; n.Current holds
		// literals already decided "now" by that expansion and must not be
		// re-asserted as a requirement on the node that follows it.
		worklist := make([]ltl.Formula, 0, len(n.Next))
		for _, f := range n.Next {
			worklist = append(worklist, f)
		}
		sort.Slice(worklist, func(i, j int) bool { return worklist[i].Key() < worklist[j].Key() })

		outs := solve(worklist, map[string]ltl.Formula{}, map[string]ltl.Formula{},
			map[ltl.PID]ltl.Proposition{}, map[ltl.PID]ltl.Proposition{})

		for _, o := range outs {
			if !internallyConsistent(o) {
				continue
			}
			for _, sym := range alphabet.Symbols() {
				if !compatible(alphabet, sym, o) {
					continue
				}

				succ := &Node{
					Current:     elementaryCurrent(o),
					Next:        o.next,
					Obligations: o.processed,
				}
				sKey := succ.key()

				toID, ok := nodeIndex[sKey]
				if !ok {
					if maxNodes > 0 && len(nodes) >= maxNodes {
						return nil, nil, ErrLimitExceeded
					}
					nodes = append(nodes, succ)
					toID = len(nodes) - 1
					nodeIndex[sKey] = toID
					queue = append(queue, toID)
				} else {
					mergeObligations(nodes[toID], o.processed)
				}

				ek := edgeKey{sym: sym, to: toID}
				if edgeSeen[id] == nil {
					edgeSeen[id] = map[edgeKey]bool{}
				}
				if !edgeSeen[id][ek] {
					edgeSeen[id][ek] = true
					edges[id] = append(edges[id], ek)
				}
			}
		}
	}

	gba := automaton.NewGBA(len(nodes), alphabet)
	gba.Init = []int{0}
	for id, es := range edges {
		for _, e := range es {
			gba.AddEdge(id, e.sym, e.to)
		}
	}
	for i, n := range nodes {
		gba.StateLabel[i] = describeNode(n)
	}

	return gba, nodes, nil
}

func mergeObligations(n *Node, processed map[string]ltl.Formula) {
	for k, f := range processed {
		if _, ok := n.Obligations[k]; !ok {
			n.Obligations[k] = f
		}
	}
}

// solve is the depth-first rewriter of spec §4.2: it threads worklist,
// processed, next, and the P+/P- literal sets through the rules table,
// forking the return slice whenever a rule named in the table forks.
func solve(
	worklist []ltl.Formula,
	processed map[string]ltl.Formula,
	next map[string]ltl.Formula,
	pPlus map[ltl.PID]ltl.Proposition,
	pMinus map[ltl.PID]ltl.Proposition,
) []outcome {
	if len(worklist) == 0 {
		return []outcome{{
			pPlus:     copyProps(pPlus),
			pMinus:    copyProps(pMinus),
			next:      copyFormulas(next),
			processed: copyFormulas(processed),
		}}
	}

	f := worklist[len(worklist)-1]
	rest := worklist[:len(worklist)-1]
	key := f.Key()

	if _, seen := processed[key]; seen {
		return solve(rest, processed, next, pPlus, pMinus)
	}

	newProcessed := copyFormulas(processed)
	newProcessed[key] = f

	switch f.Kind() {
	case ltl.KindBoolLit:
		v, _ := ltl.IsBoolLit(f)
		if !v {
			return nil // false: branch inconsistent, dropped entirely
		}
		return solve(rest, newProcessed, next, pPlus, pMinus)

	case ltl.KindAtom:
		p, _ := ltl.AsAtom(f)
		np := copyProps(pPlus)
		np[p.ID()] = p
		return solve(rest, newProcessed, next, np, pMinus)

	case ltl.KindNot:
		inner, _ := ltl.AsUnary(f)
		p, ok := ltl.AsAtom(inner)
		if !ok {
			panic(fmt.Sprintf("tableau: Not over non-atom %q after NNF", f.String()))
		}
		nm := copyProps(pMinus)
		nm[p.ID()] = p
		return solve(rest, newProcessed, next, pPlus, nm)

	case ltl.KindAnd:
		l, r, _ := ltl.AsBinary(f)
		nwl := appendAll(rest, l, r)
		return solve(nwl, newProcessed, next, pPlus, pMinus)

	case ltl.KindOr:
		l, r, _ := ltl.AsBinary(f)
		out := solve(appendAll(rest, l), newProcessed, next, pPlus, pMinus)
		out = append(out, solve(appendAll(rest, r), newProcessed, next, pPlus, pMinus)...)
		return out

	case ltl.KindNext:
		inner, _ := ltl.AsUnary(f)
		nn := copyFormulas(next)
		nn[inner.Key()] = inner
		return solve(rest, newProcessed, nn, pPlus, pMinus)

	case ltl.KindUntil:
		l, r, _ := ltl.AsBinary(f)
		// Branch 1: chi now.
		out := solve(appendAll(rest, r), newProcessed, next, pPlus, pMinus)
		// Branch 2: psi now, and X(psi U chi) carried to next.
		nn := copyFormulas(next)
		nn[f.Key()] = f
		out = append(out, solve(appendAll(rest, l), newProcessed, nn, pPlus, pMinus)...)
		return out

	case ltl.KindRelease:
		l, r, _ := ltl.AsBinary(f)
		// Branch 1: psi now and chi now.
		out := solve(appendAll(rest, l, r), newProcessed, next, pPlus, pMinus)
		// Branch 2: chi now, X(psi R chi) carried to next.
		nn := copyFormulas(next)
		nn[f.Key()] = f
		out = append(out, solve(appendAll(rest, r), newProcessed, nn, pPlus, pMinus)...)
		return out

	case ltl.KindEventually:
		inner, _ := ltl.AsUnary(f)
		// Branch 1: psi now.
		out := solve(appendAll(rest, inner), newProcessed, next, pPlus, pMinus)
		// Branch 2: X(F psi) carried to next.
		nn := copyFormulas(next)
		nn[f.Key()] = f
		out = append(out, solve(rest, newProcessed, nn, pPlus, pMinus)...)
		return out

	case ltl.KindGlobally:
		inner, _ := ltl.AsUnary(f)
		nn := copyFormulas(next)
		nn[f.Key()] = f
		return solve(appendAll(rest, inner), newProcessed, nn, pPlus, pMinus)
	}

	panic(fmt.Sprintf("tableau: unexpected formula kind for %q after NNF", f.String()))
}

func appendAll(base []ltl.Formula, more ...ltl.Formula) []ltl.Formula {
	out := make([]ltl.Formula, 0, len(base)+len(more))
	out = append(out, base...)
	out = append(out, more...)
	return out
}

func copyProps(m map[ltl.PID]ltl.Proposition) map[ltl.PID]ltl.Proposition {
	out := make(map[ltl.PID]ltl.Proposition, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copyFormulas(m map[string]ltl.Formula) map[string]ltl.Formula {
	out := make(map[string]ltl.Formula, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func internallyConsistent(o outcome) bool {
	for pid := range o.pPlus {
		if _, ok := o.pMinus[pid]; ok {
			return false
		}
	}
	return true
}

func compatible(alphabet automaton.Alphabet, sym automaton.Symbol, o outcome) bool {
	for pid := range o.pPlus {
		if !sym.Has(alphabet, pid) {
			return false
		}
	}
	for pid := range o.pMinus {
		if sym.Has(alphabet, pid) {
			return false
		}
	}
	return true
}

func elementaryCurrent(o outcome) map[string]ltl.Formula {
	m := make(map[string]ltl.Formula, len(o.pPlus)+len(o.pMinus))
	for _, p := range o.pPlus {
		f := ltl.Atom(p)
		m[f.Key()] = f
	}
	for _, p := range o.pMinus {
		f := ltl.Not(ltl.Atom(p))
		m[f.Key()] = f
	}
	return m
}

func describeNode(n *Node) string {
	cur := formulaStrings(n.Current)
	nxt := formulaStrings(n.Next)
	return fmt.Sprintf("cur=%v next=%v", cur, nxt)
}

func formulaStrings(m map[string]ltl.Formula) []string {
	out := make([]string, 0, len(m))
	for _, f := range m {
		out = append(out, f.String())
	}
	sort.Strings(out)
	return out
}

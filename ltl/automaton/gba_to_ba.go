package automaton

import "fmt"

// GBAToBA performs the counter-product construction of spec §4.4: a GBA
// with k acceptance sets becomes a BA over Q×{0,…,k-1}, with a counter that
// advances past F_i whenever the current state is a member of F_i, and
// accepts only when the counter wraps back through F_0.
//
// Edge case k=0 is interpreted as "all runs accepting" (spec §4.4): the GBA
// is copied verbatim with every state marked accepting.
//
// The ordering of g.Accept is fixed by the caller (C4) and must not change
// between calls for a single run — the counter semantics depends on it.
func GBAToBA(g *GBA) *BA {
	k := len(g.Accept)
	if k == 0 {
		return copyAllAccepting(g)
	}

	n := g.NumStates * k
	out := NewBA(n, g.Alphabet)
	idx := func(q, i int) int { return q*k + i }

	for _, q0 := range g.Init {
		out.Init = append(out.Init, idx(q0, 0))
	}

	for q := 0; q < g.NumStates; q++ {
		for i := 0; i < k; i++ {
			newCounter := i
			if g.Accept[i].Contains(q) {
				newCounter = (i + 1) % k
			}
			for _, e := range g.Trans[q] {
				out.AddEdge(idx(q, i), e.Symbol, idx(e.To, newCounter))
			}
			out.StateLabel[idx(q, i)] = fmt.Sprintf("%s#%d", g.StateLabel[q], i)
		}
	}

	for q := 0; q < g.NumStates; q++ {
		if g.Accept[0].Contains(q) {
			out.Accept[idx(q, 0)] = true
		}
	}

	return out
}

func copyAllAccepting(g *GBA) *BA {
	out := NewBA(g.NumStates, g.Alphabet)
	out.Init = append(out.Init, g.Init...)
	for q := 0; q < g.NumStates; q++ {
		out.Trans[q] = append(out.Trans[q], g.Trans[q]...)
		out.Accept[q] = true
		out.StateLabel[q] = g.StateLabel[q]
	}
	return out
}

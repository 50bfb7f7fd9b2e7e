package automaton

import (
	"fmt"

	"github.com/rfielding/ltlcheck/ltl/kripke"
)

// Lift is the result of lifting a Kripke structure into a Büchi automaton
// (spec §4.5): the BA itself, plus the bookkeeping needed to translate BA
// state indices back into the caller's own state type when reporting a
// counterexample.
type Lift[S comparable] struct {
	BA *BA

	// StateOf maps a BA state index back to the originating model state.
	// Index 0 is the synthetic pre-initial state (⊥_init) and has no
	// entry; IsBottom(0) reports true for it.
	StateOf map[int]S
	IndexOf map[S]int
}

// IsBottom reports whether BA state index i is the synthetic ⊥_init state.
func (l *Lift[S]) IsBottom(i int) bool { return i == 0 }

// ValidateModel checks the §4.6 structural contract: every initial state
// must be a member of the state set.
func ValidateModel[S comparable](m kripke.Model[S]) error {
	all := make(map[S]struct{})
	for _, s := range m.AllStates() {
		all[s] = struct{}{}
	}
	for _, s0 := range m.InitialStates() {
		if _, ok := all[s0]; !ok {
			return fmt.Errorf("automaton: initial state %v is not in the model's state set", s0)
		}
	}
	return nil
}

// LiftModel turns a Kripke structure into an always-accepting BA over the
// given alphabet (spec §4.5/C6). State 0 is the synthetic ⊥_init state;
// every other state corresponds 1:1 with a model state. A transition into
// a BA state is labeled by the destination's atomic-proposition labels,
// per the "label transitions by the target state" convention spec §4.5
// names as canonical. Terminal model states (no outgoing edges) receive a
// self-loop so T stays total.
func LiftModel[S comparable](m kripke.Model[S], alphabet Alphabet) (*Lift[S], error) {
	if err := ValidateModel[S](m); err != nil {
		return nil, err
	}

	states := m.AllStates()
	n := len(states) + 1
	ba := NewBA(n, alphabet)
	ba.StateLabel[0] = "⊥_init"
	ba.Init = []int{0}

	indexOf := make(map[S]int, len(states))
	stateOf := make(map[int]S, len(states))
	for i, s := range states {
		idx := i + 1
		indexOf[s] = idx
		stateOf[idx] = s
		ba.StateLabel[idx] = fmt.Sprintf("%v", s)
	}

	// BA_M accepts everything: the model imposes no liveness of its own
	// (spec §4.5). Index 0 (⊥_init) is marked accepting too: it is never
	// itself part of a cycle a real run lives in, so marking it accepting
	// is harmless since it only ever appears as the single initial state.
	for i := range ba.Accept {
		ba.Accept[i] = true
	}

	for _, s0 := range m.InitialStates() {
		sym := alphabet.FromLabels(m.AtomicPropsTrue(s0))
		ba.AddEdge(0, sym, indexOf[s0])
	}

	for _, s := range states {
		from := indexOf[s]
		succs := m.Successors(s)
		if len(succs) == 0 {
			// Padding per spec §4.5/§4.6: a dead end becomes a self-loop.
			sym := alphabet.FromLabels(m.AtomicPropsTrue(s))
			ba.AddEdge(from, sym, from)
			continue
		}
		for _, t := range succs {
			sym := alphabet.FromLabels(m.AtomicPropsTrue(t))
			ba.AddEdge(from, sym, indexOf[t])
		}
	}

	return &Lift[S]{BA: ba, StateOf: stateOf, IndexOf: indexOf}, nil
}

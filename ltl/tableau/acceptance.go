package tableau

import (
	"github.com/rfielding/ltlcheck/ltl"
	"github.com/rfielding/ltlcheck/ltl/automaton"
)

// GenerateAcceptance builds the GBA acceptance sets (spec §4.3): one F-set
// per distinct liveness subformula (Until, Release, Eventually, Globally)
// occurring in nnfFormula, ordered by Subformulas' deterministic walk so
// the ordering is fixed for the run (the GBA→BA counter construction,
// C5, depends on this). If nnfFormula has no liveness subformulas, the
// single all-states set is returned: every infinite run accepts.
func GenerateAcceptance(nnfFormula ltl.Formula, nodes []*Node) []automaton.AcceptanceSet {
	liveness := ltl.LivenessSubformulas(nnfFormula)
	if len(liveness) == 0 {
		all := make(automaton.AcceptanceSet, len(nodes))
		for i := range all {
			all[i] = true
		}
		return []automaton.AcceptanceSet{all}
	}

	sets := make([]automaton.AcceptanceSet, 0, len(liveness))
	for _, f := range liveness {
		fs := make(automaton.AcceptanceSet, len(nodes))
		for i, n := range nodes {
			fs[i] = satisfiesLiveness(f, n)
		}
		sets = append(sets, fs)
	}
	return sets
}

// satisfiesLiveness implements spec §4.3's per-kind membership test
// against a node's Obligations ("Old") set.
func satisfiesLiveness(f ltl.Formula, n *Node) bool {
	switch f.Kind() {
	case ltl.KindUntil:
		// psi U chi: accept if chi has been discharged, or the obligation
		// itself is no longer pending.
		_, chi, _ := ltl.AsBinary(f)
		if _, ok := n.Obligations[chi.Key()]; ok {
			return true
		}
		_, stillOwed := n.Obligations[f.Key()]
		return !stillOwed

	case ltl.KindEventually:
		// F psi === true U psi.
		psi, _ := ltl.AsUnary(f)
		if _, ok := n.Obligations[psi.Key()]; ok {
			return true
		}
		_, stillOwed := n.Obligations[f.Key()]
		return !stillOwed

	case ltl.KindRelease:
		// psi R chi is a safety obligation: accept unless its violation
		// (not-chi) has been witnessed at this node.
		_, chi, _ := ltl.AsBinary(f)
		notChi := ltl.NNF(ltl.Not(chi))
		_, violated := n.Obligations[notChi.Key()]
		return !violated

	case ltl.KindGlobally:
		// G psi === false R psi.
		psi, _ := ltl.AsUnary(f)
		notPsi := ltl.NNF(ltl.Not(psi))
		_, violated := n.Obligations[notPsi.Key()]
		return !violated

	default:
		return true
	}
}

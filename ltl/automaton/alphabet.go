// Package automaton implements the generalized and standard Büchi
// automaton value types (spec §3), the GBA→BA counter construction (C5),
// the Kripke→BA lifter (C6), and the synchronous product (C7).
package automaton

import (
	"sort"
	"strings"

	"github.com/rfielding/ltlcheck/ltl"
)

// Alphabet fixes the relevant propositions for a model-checking run: the
// atoms mentioned in the formula, plus (per spec §4.9 step 1) the atoms
// appearing in the model's state labels. Its Props slice is kept sorted so
// that Symbol enumeration and bit assignment are deterministic across runs
// (spec §4.2's "tie-breaks" and §5's "ordering" requirements).
type Alphabet struct {
	Props []ltl.PID
}

// NewAlphabet builds a deduplicated, sorted Alphabet from a set of PIDs.
// It panics if more than 63 distinct propositions are supplied: Symbol is a
// bitmask over a single uint64, which bounds the relevant-proposition count
// for this implementation. Real specifications rarely approach that size;
// callers with larger alphabets should partition the check.
func NewAlphabet(props map[ltl.PID]struct{}) Alphabet {
	out := make([]ltl.PID, 0, len(props))
	for p := range props {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	if len(out) > 63 {
		panic("automaton: alphabet exceeds 63 relevant propositions")
	}
	return Alphabet{Props: out}
}

// Index returns the bit position of p in the alphabet, or -1 if p is not
// relevant (in which case it is never true under any Symbol, consistent
// with spec §4.2's symbol-consistency rule P⁻ ∩ σ = ∅ for propositions the
// formula never mentions).
func (a Alphabet) Index(p ltl.PID) int {
	for i, q := range a.Props {
		if q == p {
			return i
		}
	}
	return -1
}

// Symbol denotes "exactly these propositions hold now; all others are
// false" (spec §3), encoded as a bitmask over Alphabet.Props.
type Symbol uint64

// Has reports whether p holds under symbol s, given alphabet a.
func (s Symbol) Has(a Alphabet, p ltl.PID) bool {
	idx := a.Index(p)
	if idx < 0 {
		return false
	}
	return s&(1<<uint(idx)) != 0
}

// Symbols enumerates every symbol over the alphabet (2^|Props| of them), in
// ascending bitmask order for determinism.
func (a Alphabet) Symbols() []Symbol {
	n := len(a.Props)
	out := make([]Symbol, 1<<uint(n))
	for i := range out {
		out[i] = Symbol(i)
	}
	return out
}

// String renders a symbol as the set of propositions it holds true.
func (s Symbol) String(a Alphabet) string {
	var held []string
	for i, p := range a.Props {
		if s&(1<<uint(i)) != 0 {
			held = append(held, string(p))
		}
	}
	if len(held) == 0 {
		return "{}"
	}
	return "{" + strings.Join(held, ",") + "}"
}

// FromLabels returns the set of model-state labels (atomic propositions true at
// that state) reinterpreted as the unique Symbol consistent with exactly
// those labels being true and every other relevant proposition false. This
// is how C6 turns L(s) into a transition symbol.
func (a Alphabet) FromLabels(labels map[ltl.PID]struct{}) Symbol {
	var s Symbol
	for i, p := range a.Props {
		if _, ok := labels[p]; ok {
			s |= 1 << uint(i)
		}
	}
	return s
}

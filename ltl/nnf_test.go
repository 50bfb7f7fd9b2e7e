package ltl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustProp(t *testing.T, id string) Proposition {
	t.Helper()
	pid, err := NewPID(id)
	require.NoError(t, err)
	return NewProposition(pid, id, nil)
}

func TestNNFIdempotent(t *testing.T) {
	p := Atom(mustProp(t, "p"))
	q := Atom(mustProp(t, "q"))

	cases := []Formula{
		Not(And(p, q)),
		Not(Or(p, q)),
		Not(Not(p)),
		Implies(p, q),
		Not(Implies(p, q)),
		Not(Next(p)),
		Not(Eventually(p)),
		Not(Globally(p)),
		Not(Until(p, q)),
		Not(Release(p, q)),
		WeakUntil(p, q),
		Not(WeakUntil(p, q)),
		And(Or(p, Not(q)), Until(p, Eventually(q))),
	}

	for _, f := range cases {
		once := NNF(f)
		twice := NNF(once)
		assert.Truef(t, Equal(once, twice), "NNF not idempotent for %s: %s vs %s", f, once, twice)
	}
}

func TestNNFPushesNegationToAtoms(t *testing.T) {
	p := Atom(mustProp(t, "p"))
	q := Atom(mustProp(t, "q"))

	got := NNF(Not(And(p, Not(q))))
	assertNoForbiddenNegation(t, got)

	got = NNF(Not(Until(p, q)))
	assertNoForbiddenNegation(t, got)

	got = NNF(Not(WeakUntil(p, q)))
	assertNoForbiddenNegation(t, got)
}

// assertNoForbiddenNegation walks f and fails if Not appears anywhere other
// than directly above an Atom.
func assertNoForbiddenNegation(t *testing.T, f Formula) {
	t.Helper()
	var walk func(Formula)
	walk = func(g Formula) {
		if g.Kind() == KindNot {
			inner, _ := AsUnary(g)
			assert.Equalf(t, KindAtom, inner.Kind(), "Not applied to non-atom %s in %s", inner, f)
			return
		}
		if l, r, ok := AsBinary(g); ok {
			walk(l)
			walk(r)
			return
		}
		if inner, ok := AsUnary(g); ok {
			walk(inner)
		}
	}
	walk(f)
}

func TestNNFEliminatesImpliesAndWeakUntil(t *testing.T) {
	p := Atom(mustProp(t, "p"))
	q := Atom(mustProp(t, "q"))

	got := NNF(Implies(p, q))
	assertNoKind(t, got, KindImplies)
	assertNoKind(t, got, KindWeakUntil)

	got = NNF(WeakUntil(p, q))
	assertNoKind(t, got, KindImplies)
	assertNoKind(t, got, KindWeakUntil)
}

func assertNoKind(t *testing.T, f Formula, forbidden Kind) {
	t.Helper()
	var walk func(Formula)
	walk = func(g Formula) {
		assert.NotEqual(t, forbidden, g.Kind())
		if l, r, ok := AsBinary(g); ok {
			walk(l)
			walk(r)
			return
		}
		if inner, ok := AsUnary(g); ok {
			walk(inner)
		}
	}
	walk(f)
}

// lassoWord is a finite representation of an infinite, ultimately periodic
// word: prefix positions followed by a cycle that repeats forever. Each
// position's labels are the set of atomic propositions true there.
type lassoWord struct {
	labels []map[PID]bool
	cycleAt int // index into labels where the repeating cycle begins
}

func (w lassoWord) succ(i int) int {
	if i+1 < len(w.labels) {
		return i + 1
	}
	return w.cycleAt
}

// satSet computes, via the same least/greatest-fixpoint-over-a-finite-graph
// technique a CTL EU/EG computation uses, the set of lassoWord positions at
// which f holds. The word's positions plus its deterministic succ relation
// form a finite graph with exactly one infinite path, so linear-time
// temporal operators collapse into ordinary reachability fixpoints.
func satSet(f Formula, w lassoWord) map[int]bool {
	n := len(w.labels)
	all := make(map[int]bool, n)
	for i := 0; i < n; i++ {
		all[i] = true
	}

	switch v := f.(type) {
	case boolLit:
		if v.v {
			return all
		}
		return map[int]bool{}
	case atomFormula:
		out := map[int]bool{}
		for i := 0; i < n; i++ {
			if w.labels[i][v.p.ID()] {
				out[i] = true
			}
		}
		return out
	case notFormula:
		inner := satSet(v.inner, w)
		out := map[int]bool{}
		for i := 0; i < n; i++ {
			if !inner[i] {
				out[i] = true
			}
		}
		return out
	case nextFormula:
		inner := satSet(v.inner, w)
		out := map[int]bool{}
		for i := 0; i < n; i++ {
			if inner[w.succ(i)] {
				out[i] = true
			}
		}
		return out
	case eventuallyFormula:
		return satSet(Until(BoolLit(true), v.inner), w)
	case globallyFormula:
		return satSet(Release(BoolLit(false), v.inner), w)
	case binFormula:
		switch v.kind {
		case KindAnd:
			l, r := satSet(v.left, w), satSet(v.right, w)
			out := map[int]bool{}
			for i := range l {
				if r[i] {
					out[i] = true
				}
			}
			return out
		case KindOr:
			l, r := satSet(v.left, w), satSet(v.right, w)
			out := map[int]bool{}
			for i := 0; i < n; i++ {
				if l[i] || r[i] {
					out[i] = true
				}
			}
			return out
		case KindImplies:
			return satSet(Or(Not(v.left), v.right), w)
		case KindUntil:
			// Least fixpoint: X = right | (left & pre(X)).
			left, right := satSet(v.left, w), satSet(v.right, w)
			x := map[int]bool{}
			for changed := true; changed; {
				changed = false
				for i := 0; i < n; i++ {
					if x[i] {
						continue
					}
					if right[i] || (left[i] && x[w.succ(i)]) {
						x[i] = true
						changed = true
					}
				}
			}
			return x
		case KindRelease:
			// Greatest fixpoint: Y = right & (left | pre(Y)), start from all.
			left, right := satSet(v.left, w), satSet(v.right, w)
			y := make(map[int]bool, n)
			for i := 0; i < n; i++ {
				y[i] = true
			}
			for changed := true; changed; {
				changed = false
				for i := 0; i < n; i++ {
					if !y[i] {
						continue
					}
					if !(right[i] && (left[i] || y[w.succ(i)])) {
						y[i] = false
						changed = true
					}
				}
			}
			return y
		case KindWeakUntil:
			return satSet(Or(Until(v.left, v.right), Globally(v.left)), w)
		}
	}
	return map[int]bool{}
}

// TestNNFPreservesSemanticsOnLassoWords is the spec §8 "NNF soundness"
// testable property: NNF(f) must agree with f on every position of every
// word, and NNF(Not(f)) must agree with !f. assertNoForbiddenNegation and
// idempotence (above) can't catch an argument swap in a duality rule; this
// evaluates both sides against concrete infinite words instead.
func TestNNFPreservesSemanticsOnLassoWords(t *testing.T) {
	p := Atom(mustProp(t, "p"))
	q := Atom(mustProp(t, "q"))

	pOnly := map[PID]bool{"p": true}
	qOnly := map[PID]bool{"q": true}
	neither := map[PID]bool{}
	both := map[PID]bool{"p": true, "q": true}

	words := []lassoWord{
		{labels: []map[PID]bool{pOnly}, cycleAt: 0},
		{labels: []map[PID]bool{neither}, cycleAt: 0},
		{labels: []map[PID]bool{pOnly, qOnly}, cycleAt: 0},
		{labels: []map[PID]bool{pOnly, neither, qOnly}, cycleAt: 0},
		{labels: []map[PID]bool{qOnly, pOnly}, cycleAt: 1},
		{labels: []map[PID]bool{both, neither}, cycleAt: 0},
	}

	formulas := []Formula{
		Until(p, q),
		Not(Until(p, q)),
		Release(p, q),
		Not(Release(p, q)),
		WeakUntil(p, q),
		Not(WeakUntil(p, q)),
		Implies(p, q),
		Not(Implies(p, q)),
		Eventually(q),
		Not(Eventually(q)),
		Globally(p),
		Not(Globally(p)),
		And(Until(p, q), Not(p)),
		Or(Release(Not(p), q), Next(p)),
	}

	for wi, w := range words {
		for _, f := range formulas {
			direct := satSet(f, w)
			rewritten := satSet(NNF(f), w)
			for i := 0; i < len(w.labels); i++ {
				assert.Equalf(t, direct[i], rewritten[i],
					"word %d, formula %s, position %d: direct=%v nnf=%v (nnf form: %s)",
					wi, f, i, direct[i], rewritten[i], NNF(f))
			}
		}
	}
}

func TestNNFUntilNegationConcreteCounterexample(t *testing.T) {
	// Word: p forever, q never. not(p U q) must hold (q never occurs), and
	// the NNF rewrite must agree — this is the exact case the swapped
	// Release(nnfNot(right), nnfNot(left)) bug got backwards.
	p := Atom(mustProp(t, "p"))
	q := Atom(mustProp(t, "q"))
	w := lassoWord{labels: []map[PID]bool{{"p": true}}, cycleAt: 0}

	f := Not(Until(p, q))
	assert.True(t, satSet(f, w)[0])
	assert.True(t, satSet(NNF(f), w)[0])
}

func TestPIDValidation(t *testing.T) {
	_, err := NewPID("")
	assert.Error(t, err)

	_, err = NewPID("has space")
	assert.Error(t, err)

	pid, err := NewPID("door_1.open-v2")
	assert.NoError(t, err)
	assert.Equal(t, PID("door_1.open-v2"), pid)
}

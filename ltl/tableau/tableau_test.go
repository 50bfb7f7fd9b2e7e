package tableau

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rfielding/ltlcheck/ltl"
	"github.com/rfielding/ltlcheck/ltl/automaton"
)

func mustPID(t *testing.T, s string) ltl.PID {
	t.Helper()
	p, err := ltl.NewPID(s)
	require.NoError(t, err)
	return p
}

func mustProp(t *testing.T, id string) ltl.Proposition {
	t.Helper()
	return ltl.NewProposition(mustPID(t, id), id, nil)
}

func TestBuildAtomInitialEdgesRequireP(t *testing.T) {
	p := mustProp(t, "p")
	alphabet := automaton.NewAlphabet(map[ltl.PID]struct{}{p.ID(): {}})

	gba, nodes, err := Build(ltl.Atom(p), alphabet, 0)
	require.NoError(t, err)
	assert.Len(t, gba.Init, 1)
	assert.GreaterOrEqual(t, len(nodes), 1)

	// Only the symbol with p held should have an outgoing edge from the
	// initial node; the other symbol should be dropped for inconsistency.
	initID := gba.Init[0]
	hasPSymbol := false
	for _, e := range gba.Trans[initID] {
		if e.Symbol.Has(alphabet, p.ID()) {
			hasPSymbol = true
		} else {
			t.Fatalf("unexpected transition on a symbol without p: %v", e)
		}
	}
	assert.True(t, hasPSymbol)
}

func TestBuildGloballyLoopsForever(t *testing.T) {
	p := mustProp(t, "p")
	alphabet := automaton.NewAlphabet(map[ltl.PID]struct{}{p.ID(): {}})

	gba, nodes, err := Build(ltl.Globally(ltl.Atom(p)), alphabet, 0)
	require.NoError(t, err)

	accept := GenerateAcceptance(ltl.Globally(ltl.Atom(p)), nodes)
	require.Len(t, accept, 1)

	// Every node reachable under the G p formula must have at least one
	// outgoing transition (the automaton never dead-ends while p keeps
	// holding).
	reachable := map[int]bool{}
	var walk func(int)
	walk = func(q int) {
		if reachable[q] {
			return
		}
		reachable[q] = true
		for _, e := range gba.Trans[q] {
			walk(e.To)
		}
	}
	for _, q0 := range gba.Init {
		walk(q0)
	}
	assert.NotEmpty(t, reachable)
	for q := range reachable {
		assert.NotEmptyf(t, gba.Trans[q], "reachable node %d has no outgoing transition", q)
	}
}

func TestBuildRespectsNodeLimit(t *testing.T) {
	p := mustProp(t, "p")
	q := mustProp(t, "q")
	alphabet := automaton.NewAlphabet(map[ltl.PID]struct{}{p.ID(): {}, q.ID(): {}})

	formula := ltl.Until(ltl.Atom(p), ltl.Globally(ltl.Or(ltl.Atom(p), ltl.Atom(q))))
	_, _, err := Build(formula, alphabet, 1)
	assert.ErrorIs(t, err, ErrLimitExceeded)
}

func TestGenerateAcceptanceAllStatesWhenNoLiveness(t *testing.T) {
	p := mustProp(t, "p")
	alphabet := automaton.NewAlphabet(map[ltl.PID]struct{}{p.ID(): {}})
	formula := ltl.Atom(p)

	_, nodes, err := Build(formula, alphabet, 0)
	require.NoError(t, err)

	sets := GenerateAcceptance(formula, nodes)
	require.Len(t, sets, 1)
	for i := range nodes {
		assert.True(t, sets[0][i])
	}
}

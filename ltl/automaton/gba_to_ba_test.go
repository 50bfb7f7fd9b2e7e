package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGBAToBAZeroAcceptanceSetsAcceptsAll(t *testing.T) {
	alphabet := NewAlphabet(nil)
	g := NewGBA(2, alphabet)
	g.Init = []int{0}
	g.AddEdge(0, 0, 1)
	g.AddEdge(1, 0, 0)

	ba := GBAToBA(g)
	require.Equal(t, 2, ba.NumStates)
	assert.True(t, ba.Accept[0])
	assert.True(t, ba.Accept[1])
	assert.ElementsMatch(t, []int{0}, ba.Init)
}

func TestGBAToBACounterAdvancesOnAcceptingSource(t *testing.T) {
	alphabet := NewAlphabet(nil)
	g := NewGBA(2, alphabet)
	g.Init = []int{0}
	g.AddEdge(0, 0, 1)
	g.AddEdge(1, 0, 0)
	// Two acceptance sets: F0 = {0}, F1 = {1}.
	g.Accept = []AcceptanceSet{{true, false}, {false, true}}

	ba := GBAToBA(g)
	require.Equal(t, 4, ba.NumStates) // 2 states * 2 counters

	idx := func(q, i int) int { return q*2 + i }

	// From (0,0): 0 is in F0, so the counter advances to 1 on leaving 0.
	require.Len(t, ba.Trans[idx(0, 0)], 1)
	assert.Equal(t, idx(1, 1), ba.Trans[idx(0, 0)][0].To)

	// From (1,1): state 1 is a member of F1, the current counter's set, so
	// the counter wraps back to 0 on leaving it.
	require.Len(t, ba.Trans[idx(1, 1)], 1)
	assert.Equal(t, idx(0, 0), ba.Trans[idx(1, 1)][0].To)

	assert.True(t, ba.Accept[idx(0, 0)]) // 0 in F0
	assert.False(t, ba.Accept[idx(1, 0)])
}

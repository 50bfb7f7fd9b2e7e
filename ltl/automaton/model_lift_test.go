package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rfielding/ltlcheck/ltl"
	"github.com/rfielding/ltlcheck/ltl/kripke"
)

func buildTwoStateLoop(t *testing.T) (*kripke.Graph, ltl.PID, ltl.PID) {
	t.Helper()
	p := mustPID(t, "p")
	q := mustPID(t, "q")
	g := kripke.NewGraph()
	g.AddState("s0", p)
	g.AddState("s1", q)
	g.AddEdge("s0", "s1")
	g.AddEdge("s1", "s0")
	g.SetInitial("s0")
	return g, p, q
}

func TestLiftModelBottomStateAndInitialEdges(t *testing.T) {
	g, p, q := buildTwoStateLoop(t)
	alphabet := NewAlphabet(map[ltl.PID]struct{}{p: {}, q: {}})

	lift, err := LiftModel[kripke.StateID](g, alphabet)
	require.NoError(t, err)

	require.Len(t, lift.BA.Init, 1)
	assert.True(t, lift.IsBottom(lift.BA.Init[0]))

	// ⊥_init has exactly one outgoing edge, into s0, labeled by s0's props.
	bottom := lift.BA.Init[0]
	require.Len(t, lift.BA.Trans[bottom], 1)
	edge := lift.BA.Trans[bottom][0]
	s0, ok := g.IDOf("s0")
	require.True(t, ok)
	assert.Equal(t, lift.IndexOf[s0], edge.To)
	assert.True(t, edge.Symbol.Has(alphabet, p))
	assert.False(t, edge.Symbol.Has(alphabet, q))

	for i := range lift.BA.Accept {
		assert.True(t, lift.BA.Accept[i], "model automaton must accept every state")
	}
}

func TestLiftModelTerminalStateGetsSelfLoop(t *testing.T) {
	g := kripke.NewGraph()
	g.AddState("lonely")
	g.SetInitial("lonely")
	alphabet := NewAlphabet(nil)

	lift, err := LiftModel[kripke.StateID](g, alphabet)
	require.NoError(t, err)

	s, _ := g.IDOf("lonely")
	idx := lift.IndexOf[s]
	require.Len(t, lift.BA.Trans[idx], 1)
	assert.Equal(t, idx, lift.BA.Trans[idx][0].To)
}

// danglingModel is a minimal kripke.Model[int] whose initial state is not
// a member of its own state set, used to exercise ValidateModel's
// rejection path without reaching into kripke.Graph's internals.
type danglingModel struct{}

func (danglingModel) AllStates() []int                         { return []int{0, 1} }
func (danglingModel) InitialStates() []int                     { return []int{99} }
func (danglingModel) Successors(s int) []int                   { return []int{s} }
func (danglingModel) AtomicPropsTrue(s int) map[ltl.PID]struct{} { return nil }

func TestValidateModelRejectsDanglingInitial(t *testing.T) {
	assert.Error(t, ValidateModel[int](danglingModel{}))
}

func TestValidateModelAcceptsWellFormedModel(t *testing.T) {
	g, _, _ := buildTwoStateLoop(t)
	assert.NoError(t, ValidateModel[kripke.StateID](g))
}

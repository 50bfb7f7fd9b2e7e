package diagram

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rfielding/ltlcheck/ltl"
	"github.com/rfielding/ltlcheck/ltl/kripke"
)

func buildLoop(t *testing.T) *kripke.Graph {
	t.Helper()
	p, err := ltl.NewPID("p")
	require.NoError(t, err)
	g := kripke.NewGraph()
	g.AddState("s0", p)
	g.AddState("s1")
	g.AddEdge("s0", "s1")
	g.AddEdge("s1", "s0")
	g.SetInitial("s0")
	return g
}

func TestWriteGraphvizIncludesStatesAndEdges(t *testing.T) {
	g := buildLoop(t)
	var sb strings.Builder
	require.NoError(t, WriteGraphviz(&sb, g))
	out := sb.String()
	assert.Contains(t, out, "digraph KripkeStructure")
	assert.Contains(t, out, `"s0" -> "s1"`)
	assert.Contains(t, out, `start -> "s0"`)
}

func TestWriteMermaidIncludesTransitions(t *testing.T) {
	g := buildLoop(t)
	var sb strings.Builder
	require.NoError(t, WriteMermaid(&sb, g))
	out := sb.String()
	assert.Contains(t, out, "stateDiagram-v2")
	assert.Contains(t, out, "[*] --> s0")
	assert.Contains(t, out, "s1 --> s0")
}

func TestWriteLassoClosesTheCycle(t *testing.T) {
	var sb strings.Builder
	prefix := []string{"s0"}
	cycle := []string{"s1", "s2"}
	require.NoError(t, WriteLasso(&sb, prefix, cycle, func(s string) string { return s }))
	out := sb.String()
	assert.Contains(t, out, "[*] --> s0")
	assert.Contains(t, out, "s0 --> s1")
	assert.Contains(t, out, "s1 --> s2")
	assert.Contains(t, out, "s2 --> s1 : closes cycle")
}

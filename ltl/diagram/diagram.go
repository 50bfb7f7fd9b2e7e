// Package diagram renders Kripke structures and counterexample lassos as
// Graphviz DOT and Mermaid stateDiagram-v2 text, for the ambient
// diagnostics layer around the core checker. It is adapted from the
// teacher repo's root-level graphviz.go and kripke/diagram.go, kept
// narrow and generic so it has no dependency on the checker package
// itself — callers hand it a model and, optionally, a lasso's state
// sequences.
package diagram

import (
	"fmt"
	"io"
	"strings"

	"github.com/rfielding/ltlcheck/ltl/kripke"
)

// WriteGraphviz renders g as a Graphviz DOT digraph, one node per state
// labeled with its atomic propositions, edges per RawSuccessors (the
// padded self-loop on terminal states is suppressed here so dead ends
// read as dead ends, not "it loops forever").
func WriteGraphviz(w io.Writer, g *kripke.Graph) error {
	fmt.Fprintln(w, "digraph KripkeStructure {")
	fmt.Fprintln(w, "  rankdir=LR;")
	fmt.Fprintln(w, "  node [shape=circle];")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "  start [shape=point];")
	for _, s0 := range g.InitialStates() {
		fmt.Fprintf(w, "  start -> %q [label=\"start\"];\n", g.NameOf(s0))
	}
	fmt.Fprintln(w)

	for _, s := range g.AllStates() {
		name := g.NameOf(s)
		labels := propNames(g, s)
		if len(labels) > 0 {
			fmt.Fprintf(w, "  %q [label=\"%s\\n{%s}\"];\n", name, name, strings.Join(labels, ", "))
		} else {
			fmt.Fprintf(w, "  %q [label=\"%s\"];\n", name, name)
		}
	}
	fmt.Fprintln(w)

	for _, s := range g.AllStates() {
		for _, to := range g.RawSuccessors(s) {
			fmt.Fprintf(w, "  %q -> %q;\n", g.NameOf(s), g.NameOf(to))
		}
	}

	fmt.Fprintln(w, "}")
	return nil
}

// WriteMermaid renders g as a Mermaid stateDiagram-v2 block.
func WriteMermaid(w io.Writer, g *kripke.Graph) error {
	fmt.Fprintln(w, "stateDiagram-v2")
	for _, s0 := range g.InitialStates() {
		fmt.Fprintf(w, "  [*] --> %s\n", g.NameOf(s0))
	}
	fmt.Fprintln(w)

	seen := make(map[string]bool)
	for _, s := range g.AllStates() {
		for _, to := range g.RawSuccessors(s) {
			key := g.NameOf(s) + "->" + g.NameOf(to)
			if seen[key] {
				continue
			}
			seen[key] = true
			fmt.Fprintf(w, "  %s --> %s\n", g.NameOf(s), g.NameOf(to))
		}
	}
	return nil
}

// WriteLasso renders a counterexample lasso (a finite prefix followed by a
// repeating cycle, spec §4.8/§4.9) as a Mermaid stateDiagram-v2 block. name
// converts a model state into its diagram label; callers typically pass
// (*kripke.Graph).NameOf bound to their model, or a closure around
// fmt.Sprint for ad-hoc state types.
func WriteLasso[S any](w io.Writer, prefix, cycle []S, name func(S) string) error {
	fmt.Fprintln(w, "stateDiagram-v2")
	if len(prefix) == 0 && len(cycle) == 0 {
		fmt.Fprintln(w, "  [*] --> [*]")
		return nil
	}

	seq := make([]string, 0, len(prefix)+len(cycle))
	for _, s := range prefix {
		seq = append(seq, name(s))
	}
	for _, s := range cycle {
		seq = append(seq, name(s))
	}

	fmt.Fprintf(w, "  [*] --> %s\n", seq[0])
	for i := 0; i+1 < len(seq); i++ {
		fmt.Fprintf(w, "  %s --> %s\n", seq[i], seq[i+1])
	}
	if len(cycle) > 0 {
		cycleStart := seq[len(prefix)]
		fmt.Fprintf(w, "  %s --> %s : closes cycle\n", seq[len(seq)-1], cycleStart)
	}
	return nil
}

func propNames(g *kripke.Graph, s kripke.StateID) []string {
	labels := g.AtomicPropsTrue(s)
	out := make([]string, 0, len(labels))
	for p := range labels {
		out = append(out, string(p))
	}
	return out
}

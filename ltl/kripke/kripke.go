// Package kripke implements the Kripke-structure contract consumed by the
// model checker (spec §6) and a concrete in-memory Graph that satisfies it.
//
// Graph is a direct descendant of the teacher repo's CTL tableau Graph
// (rfielding/kripke-ctl's kripke/ctl.go): the state/edge/labeling bookkeeping
// is kept, generalized from ad-hoc string propositions to ltl.PID, and
// extended with the transition-totality padding spec §4.6/§4.5 requires
// before a Kripke structure can be lifted into a Büchi automaton.
package kripke

import (
	"fmt"

	"github.com/rfielding/ltlcheck/ltl"
)

// StateID names a state inside a Graph.
type StateID int

// Model is the contract the checker consumes (spec §6): a finite state
// space, a subset of initial states, a successor relation, and a labeling
// by atomic proposition identity. Implementations need not use StateID —
// any comparable type works, which lets callers lift their own domain
// objects directly instead of importing Graph.
type Model[S comparable] interface {
	AllStates() []S
	InitialStates() []S
	Successors(s S) []S
	AtomicPropsTrue(s S) map[ltl.PID]struct{}
}

// Graph is a finite Kripke structure: states, initial states, successor
// edges, and atomic-proposition labels. It implements Model[StateID].
type Graph struct {
	nextID   int
	nameToID map[string]StateID
	idToName map[StateID]string
	labels   map[StateID]map[ltl.PID]struct{}
	succ     map[StateID][]StateID
	init     []StateID
}

// NewGraph constructs an empty Graph.
func NewGraph() *Graph {
	return &Graph{
		nameToID: make(map[string]StateID),
		idToName: make(map[StateID]string),
		labels:   make(map[StateID]map[ltl.PID]struct{}),
		succ:     make(map[StateID][]StateID),
	}
}

// AddState adds a state with the given name and AP labels, returning its ID.
// Re-adding an existing name adds any new labels to that state and returns
// the existing ID — this
// relaxes the teacher's panic-on-duplicate behavior so builders can call
// AddState defensively before AddEdge without tracking what they've seen.
func (g *Graph) AddState(name string, labels ...ltl.PID) StateID {
	if id, ok := g.nameToID[name]; ok {
		for _, p := range labels {
			g.labels[id][p] = struct{}{}
		}
		return id
	}
	id := StateID(g.nextID)
	g.nextID++
	g.nameToID[name] = id
	g.idToName[id] = name
	set := make(map[ltl.PID]struct{}, len(labels))
	for _, p := range labels {
		set[p] = struct{}{}
	}
	g.labels[id] = set
	return id
}

func (g *Graph) ensure(name string) StateID { return g.AddState(name) }

// AddEdge adds a transition from fromName to toName, auto-creating states.
func (g *Graph) AddEdge(fromName, toName string) {
	from := g.ensure(fromName)
	to := g.ensure(toName)
	g.succ[from] = append(g.succ[from], to)
}

// SetInitial marks a named state as initial.
func (g *Graph) SetInitial(name string) {
	id := g.ensure(name)
	for _, existing := range g.init {
		if existing == id {
			return
		}
	}
	g.init = append(g.init, id)
}

// NameOf returns the human-readable name of a state.
func (g *Graph) NameOf(s StateID) string { return g.idToName[s] }

// IDOf returns the StateID for a previously-added name.
func (g *Graph) IDOf(name string) (StateID, bool) {
	id, ok := g.nameToID[name]
	return id, ok
}

// AllStates returns every defined state, in insertion order.
func (g *Graph) AllStates() []StateID {
	out := make([]StateID, g.nextID)
	for i := range out {
		out[i] = StateID(i)
	}
	return out
}

// InitialStates returns the initial state IDs.
func (g *Graph) InitialStates() []StateID {
	out := make([]StateID, len(g.init))
	copy(out, g.init)
	return out
}

// Successors returns the successors of a state, after the §4.5/§4.6 padding
// convention: a state with no outgoing edges receives an implicit self-loop
// so that T is total and every finite path can be extended to an infinite
// one.
func (g *Graph) Successors(s StateID) []StateID {
	succs := g.succ[s]
	if len(succs) == 0 {
		return []StateID{s}
	}
	out := make([]StateID, len(succs))
	copy(out, succs)
	return out
}

// RawSuccessors returns the successors as added, without the terminal-state
// self-loop padding. Used by diagram rendering, which wants to distinguish "really has a self-loop" from "padded because
// terminal".
func (g *Graph) RawSuccessors(s StateID) []StateID {
	return g.succ[s]
}

// AtomicPropsTrue returns the set of proposition ids labeling state s.
func (g *Graph) AtomicPropsTrue(s StateID) map[ltl.PID]struct{} {
	return g.labels[s]
}

// HasLabel reports whether state s carries proposition p.
func (g *Graph) HasLabel(s StateID, p ltl.PID) bool {
	_, ok := g.labels[s][p]
	return ok
}

// Validate checks the structural contract from spec §4.6: every initial
// state must be a member of the state set. Graph's own bookkeeping makes
// this invariant hard to violate internally, but callers that construct a
// Graph via lower-level field access (or a future alternate builder) should
// still call Validate before handing it to the checker.
func (g *Graph) Validate() error {
	all := make(map[StateID]struct{}, g.nextID)
	for _, s := range g.AllStates() {
		all[s] = struct{}{}
	}
	for _, s := range g.init {
		if _, ok := all[s]; !ok {
			return fmt.Errorf("kripke: initial state %d not in state set", s)
		}
	}
	return nil
}

// String renders a debug summary of the structure.
func (g *Graph) String() string {
	s := fmt.Sprintf("Graph(%d states, %d initial)", g.nextID, len(g.init))
	return s
}

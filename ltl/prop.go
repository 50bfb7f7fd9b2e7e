// Package ltl implements the linear temporal logic term language: atomic
// propositions, the recursive formula AST, and negation-normal-form
// conversion. It has no knowledge of Kripke structures or automata; those
// live in the sibling ltl/tableau, ltl/automaton, and ltl/kripke packages.
package ltl

import (
	"fmt"
	"regexp"
	"strings"
)

// pidPattern matches the allowed byte sequence for a PID: letters, digits,
// underscore, hyphen, and dot. No whitespace, never empty.
var pidPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// PID is an opaque proposition identifier. Identity is the exact byte
// sequence; ordering follows the underlying bytes.
type PID string

// NewPID validates and constructs a PID from raw text.
func NewPID(s string) (PID, error) {
	if s == "" {
		return "", fmt.Errorf("ltl: empty proposition id")
	}
	if !pidPattern.MatchString(s) {
		return "", fmt.Errorf("ltl: invalid proposition id %q: must match [A-Za-z0-9_.-]+", s)
	}
	return PID(s), nil
}

// Less gives the total order induced by the underlying bytes.
func (p PID) Less(other PID) bool {
	return strings.Compare(string(p), string(other)) < 0
}

// EvalFunc evaluates a proposition against a model state. It is the only
// part of Proposition the core checker ignores entirely: §6 of the design
// reserves evaluate() for the out-of-core step evaluator (see ltl/step).
type EvalFunc func(state any) (bool, error)

// Proposition is an atomic fact about a state: a stable id, a diagnostic
// name, and a predicate used only by the trace-level evaluator.
type Proposition struct {
	id       PID
	name     string
	evaluate EvalFunc
}

// NewProposition constructs a Proposition. evaluate may be nil for
// propositions that are only ever checked against a Kripke labeling
// (never against a runtime state).
func NewProposition(id PID, name string, evaluate EvalFunc) Proposition {
	return Proposition{id: id, name: name, evaluate: evaluate}
}

// ID returns the proposition's stable identity.
func (p Proposition) ID() PID { return p.id }

// Name returns the diagnostic name.
func (p Proposition) Name() string { return p.name }

// Evaluate runs the user-supplied predicate, if any, against state.
func (p Proposition) Evaluate(state any) (bool, error) {
	if p.evaluate == nil {
		return false, fmt.Errorf("ltl: proposition %q has no evaluator", p.id)
	}
	return p.evaluate(state)
}

// Equal compares two propositions by id alone, per the data model.
func (p Proposition) Equal(other Proposition) bool {
	return p.id == other.id
}

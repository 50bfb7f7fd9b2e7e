// Package checker implements the Büchi emptiness check (C8) and the
// model-checking orchestrator (C9): the entry point that turns an LTL
// formula and a Kripke structure into a Holds/Fails verdict.
package checker

import "fmt"

// Kind classifies why a check could not be completed, or why the input
// was rejected outright.
type Kind int

const (
	// InvalidModel means the Kripke structure failed structural
	// validation (spec §4.6) — e.g. an initial state outside S.
	InvalidModel Kind = iota

	// InvalidFormula means the formula tree failed a structural
	// precondition. No path in Check returns this kind: proposition
	// collection accepts every formula.
	InvalidFormula

	// LimitExceeded means a configured resource Limits bound (tableau
	// node count, product state count) was hit before the check could
	// complete.
	LimitExceeded

	// ProcessingError means an internal invariant was violated — e.g. a
	// counterexample's parent-pointer chain looped, or the two
	// emptiness-check strategies disagreed with each other — or a panic
	// raised inside the pipeline was recovered by CheckWithLimits. Apart
	// from a panic from automaton.NewAlphabet's 63-proposition cap, this
	// indicates a bug in this package, not a problem with the caller's
	// input.
	ProcessingError

	// PropositionEvaluation means a caller-supplied evaluation function
	// misbehaved (spec §6). No path in Check returns this kind: the
	// checker reads Kripke labels and never calls a proposition's
	// evaluation function.
	PropositionEvaluation
)

func (k Kind) String() string {
	switch k {
	case InvalidModel:
		return "InvalidModel"
	case InvalidFormula:
		return "InvalidFormula"
	case LimitExceeded:
		return "LimitExceeded"
	case ProcessingError:
		return "ProcessingError"
	case PropositionEvaluation:
		return "PropositionEvaluation"
	default:
		return "Unknown"
	}
}

// Error is the sum-type error this package returns: every failure is
// tagged with a Kind so callers can branch on cause (reject bad input vs.
// retry with higher limits vs. report a bug) without string matching.
type Error struct {
	Kind Kind
	Msg  string
	Err  error // wrapped cause, if any
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("checker: %s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("checker: %s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func wrapError(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// Package step is the narrow, out-of-core collaborator named in spec §1/§6:
// a bounded trace-at-a-time evaluator for the propositional fragment of a
// formula, for runtime monitors that want "does φ hold at this point in the
// trace I've already seen" without invoking the tableau/automaton pipeline.
// It deliberately does not attempt temporal semantics (X/F/G/U/W/R need a
// suffix of the trace the core checker reasons about globally); callers
// needing the full verdict go through ltl/checker instead.
package step

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/rfielding/ltlcheck/ltl"
)

// Context provides typed retrieval of the current state and its position in
// a bounded trace, per spec §6's "evaluation context" collaborator. Each
// Context is stamped with a stable TraceID so a monitor can correlate
// evaluations taken against the same run.
type Context[S any] interface {
	State() S
	Index() int
	TraceID() uuid.UUID
}

// traceContext is the default Context implementation: a fixed-length trace
// with a cursor into it.
type traceContext[S any] struct {
	trace []S
	index int
	id    uuid.UUID
}

// NewTrace wraps trace and positions the cursor at index 0, stamping a fresh
// TraceID for the run.
func NewTrace[S any](trace []S) (*traceContext[S], error) {
	if len(trace) == 0 {
		return nil, fmt.Errorf("ltl/step: trace must have at least one state")
	}
	return &traceContext[S]{trace: trace, index: 0, id: uuid.New()}, nil
}

// State returns the state at the current index.
func (c *traceContext[S]) State() S { return c.trace[c.index] }

// Index returns the current cursor position.
func (c *traceContext[S]) Index() int { return c.index }

// TraceID returns the identifier stamped when the trace was created; it is
// stable across Advance calls on the same trace.
func (c *traceContext[S]) TraceID() uuid.UUID { return c.id }

// Advance returns a Context positioned one step further into the trace, or
// an error if the trace is exhausted.
func (c *traceContext[S]) Advance() (*traceContext[S], error) {
	if c.index+1 >= len(c.trace) {
		return nil, fmt.Errorf("ltl/step: trace exhausted at index %d", c.index)
	}
	return &traceContext[S]{trace: c.trace, index: c.index + 1, id: c.id}, nil
}

// Len reports the total number of states in the underlying trace.
func (c *traceContext[S]) Len() int { return len(c.trace) }

// Evaluator checks the propositional fragment of a formula (BoolLit, Atom,
// Not, And, Or, Implies) against a single Context, resolving atoms by PID
// against a fixed set of propositions supplied at construction time.
type Evaluator struct {
	props map[ltl.PID]ltl.Proposition
}

// NewEvaluator builds an Evaluator that can resolve atoms among props.
func NewEvaluator(props ...ltl.Proposition) *Evaluator {
	m := make(map[ltl.PID]ltl.Proposition, len(props))
	for _, p := range props {
		m[p.ID()] = p
	}
	return &Evaluator{props: m}
}

// ErrTemporalOperator is returned by Evaluate when formula contains a
// temporal connective (X, F, G, U, W, R); those require reasoning over a
// trace suffix this package does not attempt.
var ErrTemporalOperator = fmt.Errorf("ltl/step: temporal operators require the full checker, not step evaluation")

// Evaluate checks formula's propositional fragment against ctx.State().
func Evaluate[S any](formula ltl.Formula, ctx Context[S], e *Evaluator) (bool, error) {
	switch formula.Kind() {
	case ltl.KindBoolLit:
		v, _ := ltl.IsBoolLit(formula)
		return v, nil
	case ltl.KindAtom:
		p, _ := ltl.AsAtom(formula)
		known, ok := e.props[p.ID()]
		if !ok {
			return false, fmt.Errorf("ltl/step: no proposition registered for %q", p.ID())
		}
		return known.Evaluate(ctx.State())
	case ltl.KindNot:
		inner, _ := ltl.AsUnary(formula)
		v, err := Evaluate(inner, ctx, e)
		if err != nil {
			return false, err
		}
		return !v, nil
	case ltl.KindAnd:
		l, r, _ := ltl.AsBinary(formula)
		lv, err := Evaluate(l, ctx, e)
		if err != nil {
			return false, err
		}
		if !lv {
			return false, nil
		}
		return Evaluate(r, ctx, e)
	case ltl.KindOr:
		l, r, _ := ltl.AsBinary(formula)
		lv, err := Evaluate(l, ctx, e)
		if err != nil {
			return false, err
		}
		if lv {
			return true, nil
		}
		return Evaluate(r, ctx, e)
	case ltl.KindImplies:
		l, r, _ := ltl.AsBinary(formula)
		lv, err := Evaluate(l, ctx, e)
		if err != nil {
			return false, err
		}
		if !lv {
			return true, nil
		}
		return Evaluate(r, ctx, e)
	default:
		return false, ErrTemporalOperator
	}
}

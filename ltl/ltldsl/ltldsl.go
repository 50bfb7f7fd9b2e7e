// Package ltldsl is the surface-syntax collaborator named in spec §1's
// carve-out: a tiny fluent builder over ltl.Formula plus a pretty-printer
// using the teacher's operator-symbol convention (ctl.go's String()
// methods use ∧/∨/¬/→; this package generalizes that table from CTL's
// eight path operators to LTL's X/F/G/U/W/R).
package ltldsl

import "github.com/rfielding/ltlcheck/ltl"

// Formula wraps an ltl.Formula so operators can be chained fluently:
//
//	ltldsl.Atom(p).And(ltldsl.Atom(q)).Globally().Build()
type Formula struct {
	f ltl.Formula
}

// Build unwraps the fluent chain into the underlying ltl.Formula, ready for
// NNF conversion, tableau construction, or checker.Check.
func (b Formula) Build() ltl.Formula { return b.f }

// Atom lifts a Proposition into a fluent Formula.
func Atom(p ltl.Proposition) Formula { return Formula{f: ltl.Atom(p)} }

// True constructs the fluent constant true.
func True() Formula { return Formula{f: ltl.BoolLit(true)} }

// False constructs the fluent constant false.
func False() Formula { return Formula{f: ltl.BoolLit(false)} }

// Not negates the receiver.
func (b Formula) Not() Formula { return Formula{f: ltl.Not(b.f)} }

// And conjoins the receiver with other.
func (b Formula) And(other Formula) Formula { return Formula{f: ltl.And(b.f, other.f)} }

// Or disjoins the receiver with other.
func (b Formula) Or(other Formula) Formula { return Formula{f: ltl.Or(b.f, other.f)} }

// Implies builds "receiver -> other".
func (b Formula) Implies(other Formula) Formula { return Formula{f: ltl.Implies(b.f, other.f)} }

// Next wraps the receiver in the X operator.
func (b Formula) Next() Formula { return Formula{f: ltl.Next(b.f)} }

// Eventually wraps the receiver in the F operator.
func (b Formula) Eventually() Formula { return Formula{f: ltl.Eventually(b.f)} }

// Globally wraps the receiver in the G operator.
func (b Formula) Globally() Formula { return Formula{f: ltl.Globally(b.f)} }

// Until builds "receiver U other".
func (b Formula) Until(other Formula) Formula { return Formula{f: ltl.Until(b.f, other.f)} }

// WeakUntil builds "receiver W other".
func (b Formula) WeakUntil(other Formula) Formula { return Formula{f: ltl.WeakUntil(b.f, other.f)} }

// Release builds "receiver R other".
func (b Formula) Release(other Formula) Formula { return Formula{f: ltl.Release(b.f, other.f)} }

// Pretty renders f using the symbolic operator table, matching the
// teacher's CTLFormula.String() convention of one case per operator kind
// rather than ltl.Formula's plain-ASCII String().
func Pretty(f ltl.Formula) string {
	switch f.Kind() {
	case ltl.KindBoolLit:
		if v, _ := ltl.IsBoolLit(f); v {
			return "⊤"
		}
		return "⊥"
	case ltl.KindAtom:
		p, _ := ltl.AsAtom(f)
		return p.Name()
	case ltl.KindNot:
		inner, _ := ltl.AsUnary(f)
		return "¬" + prettyWrap(inner)
	case ltl.KindNext:
		inner, _ := ltl.AsUnary(f)
		return "X " + prettyWrap(inner)
	case ltl.KindEventually:
		inner, _ := ltl.AsUnary(f)
		return "F " + prettyWrap(inner)
	case ltl.KindGlobally:
		inner, _ := ltl.AsUnary(f)
		return "G " + prettyWrap(inner)
	case ltl.KindAnd:
		l, r, _ := ltl.AsBinary(f)
		return "(" + Pretty(l) + " ∧ " + Pretty(r) + ")"
	case ltl.KindOr:
		l, r, _ := ltl.AsBinary(f)
		return "(" + Pretty(l) + " ∨ " + Pretty(r) + ")"
	case ltl.KindImplies:
		l, r, _ := ltl.AsBinary(f)
		return "(" + Pretty(l) + " → " + Pretty(r) + ")"
	case ltl.KindUntil:
		l, r, _ := ltl.AsBinary(f)
		return "[" + Pretty(l) + " U " + Pretty(r) + "]"
	case ltl.KindWeakUntil:
		l, r, _ := ltl.AsBinary(f)
		return "[" + Pretty(l) + " W " + Pretty(r) + "]"
	case ltl.KindRelease:
		l, r, _ := ltl.AsBinary(f)
		return "[" + Pretty(l) + " R " + Pretty(r) + "]"
	default:
		return f.String()
	}
}

func prettyWrap(f ltl.Formula) string {
	switch f.Kind() {
	case ltl.KindBoolLit, ltl.KindAtom:
		return Pretty(f)
	default:
		return "(" + Pretty(f) + ")"
	}
}

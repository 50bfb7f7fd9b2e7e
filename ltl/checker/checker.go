package checker

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rfielding/ltlcheck/ltl"
	"github.com/rfielding/ltlcheck/ltl/automaton"
	"github.com/rfielding/ltlcheck/ltl/kripke"
	"github.com/rfielding/ltlcheck/ltl/tableau"
)

// Check decides whether model satisfies formula, using DefaultLimits.
// logger may be nil, in which case diagnostics are discarded.
func Check[S comparable](formula ltl.Formula, model kripke.Model[S], logger *zerolog.Logger) (Result[S], error) {
	return CheckWithLimits(formula, model, DefaultLimits(), logger)
}

// CheckWithLimits is Check with an explicit resource budget (spec §5).
// A panic raised inside the pipeline is recovered and returned as a
// ProcessingError.
func CheckWithLimits[S comparable](formula ltl.Formula, model kripke.Model[S], limits Limits, logger *zerolog.Logger) (res Result[S], err error) {
	defer func() {
		if r := recover(); r != nil {
			res, err = Result[S]{}, newError(ProcessingError, fmt.Sprintf("internal invariant violated: %v", r))
		}
	}()

	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	props := collectPropositions(formula, model)
	alphabet := automaton.NewAlphabet(props)

	if v, ok := ltl.IsBoolLit(formula); ok {
		if v {
			logger.Debug().Msg("fast path: formula is the literal true")
			return Result[S]{Verdict: Holds}, nil
		}
		logger.Debug().Msg("fast path: formula is the literal false")
		return falseCounterexample[S](model), nil
	}

	if p, ok := ltl.AsAtom(formula); ok {
		return atomFastPath[S](model, p, false, logger)
	}
	if formula.Kind() == ltl.KindNot {
		if inner, ok := ltl.AsUnary(formula); ok {
			if p, ok := ltl.AsAtom(inner); ok {
				return atomFastPath[S](model, p, true, logger)
			}
		}
	}

	return generalCase[S](formula, model, alphabet, limits, logger)
}

func collectPropositions[S comparable](formula ltl.Formula, model kripke.Model[S]) map[ltl.PID]struct{} {
	props := make(map[ltl.PID]struct{})
	for _, sf := range ltl.Subformulas(formula) {
		if p, ok := ltl.AsAtom(sf); ok {
			props[p.ID()] = struct{}{}
		}
	}
	for _, s := range model.AllStates() {
		for pid := range model.AtomicPropsTrue(s) {
			props[pid] = struct{}{}
		}
	}
	return props
}

func falseCounterexample[S comparable](model kripke.Model[S]) Result[S] {
	inits := model.InitialStates()
	if len(inits) == 0 {
		return Result[S]{Verdict: Fails, Counterexample: &Counterexample[S]{}}
	}
	return Result[S]{Verdict: Fails, Counterexample: &Counterexample[S]{Cycle: []S{inits[0]}}}
}

func atomFastPath[S comparable](model kripke.Model[S], p ltl.Proposition, negate bool, logger *zerolog.Logger) (Result[S], error) {
	inits := model.InitialStates()
	if len(inits) == 0 {
		if negate {
			logger.Debug().Str("proposition", string(p.ID())).Msg("fast path: no-atom formula, no initial states to witness the negation")
			return Result[S]{Verdict: Fails, Counterexample: &Counterexample[S]{}}, nil
		}
		logger.Debug().Str("proposition", string(p.ID())).Msg("fast path: atom formula holds vacuously, no initial states")
		return Result[S]{Verdict: Holds}, nil
	}
	for _, s0 := range inits {
		labels := model.AtomicPropsTrue(s0)
		_, held := labels[p.ID()]
		ok := held
		if negate {
			ok = !held
		}
		if !ok {
			return Result[S]{Verdict: Fails, Counterexample: &Counterexample[S]{Cycle: []S{s0}}}, nil
		}
	}
	return Result[S]{Verdict: Holds}, nil
}

func generalCase[S comparable](formula ltl.Formula, model kripke.Model[S], alphabet automaton.Alphabet, limits Limits, logger *zerolog.Logger) (Result[S], error) {
	psi := ltl.NNF(ltl.Not(formula))
	logger.Debug().Str("psi", psi.String()).Msg("general case: building tableau for NNF(not(formula))")

	gba, nodes, err := tableau.Build(psi, alphabet, limits.tableauNodeLimit())
	if err != nil {
		return Result[S]{}, wrapError(LimitExceeded, "tableau expansion exceeded its node limit", err)
	}
	gba.Accept = tableau.GenerateAcceptance(psi, nodes)

	ba := automaton.GBAToBA(gba)

	lift, err := automaton.LiftModel[S](model, alphabet)
	if err != nil {
		return Result[S]{}, wrapError(InvalidModel, "model failed structural validation", err)
	}

	product := automaton.BuildProduct(lift.BA, ba)
	if limit := limits.productStateLimit(); limit > 0 && len(product.States) > limit {
		return Result[S]{}, newError(LimitExceeded, fmt.Sprintf("product automaton exceeded the configured limit of %d states", limit))
	}
	logger.Debug().Int("nodes", len(nodes)).Int("product_states", len(product.States)).Msg("product automaton built")

	lasso, err := FindAcceptingLasso(product)
	if err != nil {
		return Result[S]{}, err
	}
	if lasso == nil {
		logger.Debug().Str("formula", formula.String()).Msg("no accepting lasso: property holds")
		return Result[S]{Verdict: Holds}, nil
	}

	cex, err := projectCounterexample[S](lasso, product, lift)
	if err != nil {
		return Result[S]{}, err
	}
	logger.Debug().
		Str("formula", formula.String()).
		Int("prefix_len", len(cex.Prefix)).
		Int("cycle_len", len(cex.Cycle)).
		Msg("accepting lasso found: property fails")
	return Result[S]{Verdict: Fails, Counterexample: cex}, nil
}

// projectCounterexample turns a product-graph lasso into the model-state
// sequences spec §4.9 step 4 defines: drop ⊥_init, drop the formula
// automaton's component of each pair.
func projectCounterexample[S comparable](lasso *Lasso, product *automaton.Product, lift *automaton.Lift[S]) (*Counterexample[S], error) {
	project := func(ids []string) ([]S, error) {
		out := make([]S, 0, len(ids))
		for _, id := range ids {
			st, ok := product.States[id]
			if !ok {
				return nil, newError(ProcessingError, "counterexample references a vertex absent from the product")
			}
			if lift.IsBottom(st.ModelIndex) {
				continue
			}
			s, ok := lift.StateOf[st.ModelIndex]
			if !ok {
				return nil, newError(ProcessingError, "counterexample references a model index with no originating state")
			}
			out = append(out, s)
		}
		return out, nil
	}

	prefix, err := project(lasso.Prefix)
	if err != nil {
		return nil, err
	}
	cycle, err := project(lasso.Cycle)
	if err != nil {
		return nil, err
	}
	return &Counterexample[S]{Prefix: prefix, Cycle: cycle}, nil
}

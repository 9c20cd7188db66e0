// Package cpsat is the thin abstraction the model builder targets instead
// of a concrete solver package. It exposes exactly the primitives the
// generator needs — Boolean variables, weighted linear constraints, a
// min-sum objective, and a timed solve — so that the engine behind it can
// be swapped without touching internal/planning.
package cpsat

import (
	"context"
	"time"
)

// Var is an opaque Boolean decision variable handle. It carries no
// behaviour of its own; it is only ever passed back into the Model that
// produced it, or into a Solution to read its value.
type Var interface{}

// Term is one addend of a weighted linear expression: Coef * Var.
type Term struct {
	Var  Var
	Coef int64
}

// Sum builds a slice of unit-weight terms from a set of variables, the
// common case for the exactly-one and at-most constraints.
func Sum(vars ...Var) []Term {
	terms := make([]Term, len(vars))
	for i, v := range vars {
		terms[i] = Term{Var: v, Coef: 1}
	}
	return terms
}

// Model accumulates variables, constraints and an objective before a single
// Solve call. Implementations are not safe for concurrent use.
type Model interface {
	// NewBoolVar creates a fresh Boolean variable. name is solver-internal
	// bookkeeping only (useful in solver logs); it carries no semantics.
	NewBoolVar(name string) Var

	// AddLinearInRange posts lb <= sum(terms) <= ub.
	AddLinearInRange(terms []Term, lb, ub int64)

	// AddEquality posts sum(terms) == value.
	AddEquality(terms []Term, value int64)

	// AddAtMost posts sum(terms) <= limit.
	AddAtMost(terms []Term, limit int64)

	// AddExactlyOne posts sum(vars) == 1.
	AddExactlyOne(vars []Var)

	// Minimize sets (or replaces) the objective to minimise sum(terms).
	// Calling it with no terms leaves the model unconstrained by cost;
	// the solver then returns the first feasible solution it finds.
	Minimize(terms []Term)
}

// Status mirrors the four outcomes a CP-SAT engine can report.
type Status int

const (
	StatusUnknown Status = iota
	StatusInfeasible
	StatusFeasible
	StatusOptimal
)

func (s Status) Accepted() bool {
	return s == StatusOptimal || s == StatusFeasible
}

// SolveOptions bounds one Solve call.
type SolveOptions struct {
	TimeLimit time.Duration
	Workers   int
}

// Solution answers variable values once a solve has returned a status that
// Accepted().
type Solution interface {
	Status() Status
	BoolValue(v Var) bool
}

// Engine builds fresh models and solves them. Production code obtains one
// concrete Engine (see the ortools subpackage) and threads it through the
// model builder; tests can substitute a fake.
type Engine interface {
	NewModel() Model
	Solve(ctx context.Context, model Model, opts SolveOptions) (Solution, error)
}

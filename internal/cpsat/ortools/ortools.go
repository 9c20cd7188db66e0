// Package ortools adapts github.com/google/or-tools/sat to the cpsat.Engine
// interface. It is the only package in the module that imports the sat
// package directly.
package ortools

import (
	"context"
	"fmt"

	"github.com/google/or-tools/sat"

	"github.com/noah-isme/campus-scheduler/internal/cpsat"
)

// Engine is the production cpsat.Engine backed by or-tools' CP-SAT solver.
type Engine struct{}

// New returns the or-tools backed engine. There is no configuration: every
// knob the generator needs travels through cpsat.SolveOptions instead.
func New() Engine {
	return Engine{}
}

func (Engine) NewModel() cpsat.Model {
	return &model{cp: sat.NewCpModel(), vars: make(map[string]*sat.BoolVar)}
}

func (Engine) Solve(ctx context.Context, m cpsat.Model, opts cpsat.SolveOptions) (cpsat.Solution, error) {
	impl, ok := m.(*model)
	if !ok {
		return nil, fmt.Errorf("cpsat/ortools: model was not built by this engine")
	}

	solver := sat.NewCpSolver()
	solver.Parameters.MaxTimeInSeconds = opts.TimeLimit.Seconds()
	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}
	solver.Parameters.NumSearchWorkers = int32(workers)
	solver.Parameters.LogSearchProgress = false

	status := solver.Solve(impl.cp)
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	return &solution{solver: solver, status: translateStatus(status), vars: impl.vars}, nil
}

func translateStatus(s sat.CpSolverStatus) cpsat.Status {
	switch s {
	case sat.Optimal:
		return cpsat.StatusOptimal
	case sat.Feasible:
		return cpsat.StatusFeasible
	case sat.Infeasible:
		return cpsat.StatusInfeasible
	default:
		return cpsat.StatusUnknown
	}
}

// model wraps a *sat.CpModel and remembers every variable it minted, keyed
// by the name it was created with. Solutions answer BoolValue from the
// *sat.BoolVar handle carried inside each boolVar, not from this map.
type model struct {
	cp   *sat.CpModel
	vars map[string]*sat.BoolVar
}

func (m *model) NewBoolVar(name string) cpsat.Var {
	v := m.cp.NewBoolVar(name)
	m.vars[name] = v
	return boolVar{name: name, v: v}
}

func (m *model) AddLinearInRange(terms []cpsat.Term, lb, ub int64) {
	expr := m.exprOf(terms)
	m.cp.AddLinearExpressionInRange(expr, lb, ub)
}

func (m *model) AddEquality(terms []cpsat.Term, value int64) {
	m.AddLinearInRange(terms, value, value)
}

func (m *model) AddAtMost(terms []cpsat.Term, limit int64) {
	m.AddLinearInRange(terms, 0, limit)
}

func (m *model) AddExactlyOne(vars []cpsat.Var) {
	m.AddEquality(cpsat.Sum(vars...), 1)
}

func (m *model) Minimize(terms []cpsat.Term) {
	if len(terms) == 0 {
		return
	}
	m.cp.Minimise(m.exprOf(terms))
}

func (m *model) exprOf(terms []cpsat.Term) *sat.LinearExpr {
	expr := m.cp.NewLinearExpr()
	for _, t := range terms {
		expr.AddTerm(t.Var.(boolVar).v, t.Coef)
	}
	return expr
}

// boolVar is the concrete cpsat.Var this adapter hands back: the or-tools
// handle plus the name it was registered under, so solution lookups don't
// need a second map keyed by *sat.BoolVar.
type boolVar struct {
	name string
	v    *sat.BoolVar
}

type solution struct {
	solver *sat.CpSolver
	status cpsat.Status
	vars   map[string]*sat.BoolVar
}

func (s *solution) Status() cpsat.Status { return s.status }

func (s *solution) BoolValue(v cpsat.Var) bool {
	bv, ok := v.(boolVar)
	if !ok {
		return false
	}
	return s.solver.BooleanValue(bv.v)
}

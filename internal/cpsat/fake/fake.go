// Package fake provides an in-memory cpsat.Engine for tests: a pruned
// backtracking search over the Boolean variables the generator's
// end-to-end test fixtures produce. It is never wired into production —
// only the tests of internal/planning and internal/handler import it.
package fake

import (
	"context"

	"github.com/noah-isme/campus-scheduler/internal/cpsat"
)

type Engine struct{}

func New() Engine { return Engine{} }

func (Engine) NewModel() cpsat.Model {
	return &model{}
}

type varID int

type constraint struct {
	terms []cpsat.Term
	lb    int64
	ub    int64
}

type model struct {
	numVars     int
	constraints []constraint
	byVar       [][]int // var id -> indices into constraints
	objective   []cpsat.Term
}

func (m *model) NewBoolVar(name string) cpsat.Var {
	id := varID(m.numVars)
	m.numVars++
	m.byVar = append(m.byVar, nil)
	return id
}

func (m *model) AddLinearInRange(terms []cpsat.Term, lb, ub int64) {
	idx := len(m.constraints)
	m.constraints = append(m.constraints, constraint{terms: terms, lb: lb, ub: ub})
	for _, t := range terms {
		v := int(t.Var.(varID))
		m.byVar[v] = append(m.byVar[v], idx)
	}
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
	m.objective = terms
}

// Solve performs a depth-first search over the model's Boolean variables,
// pruning a branch the moment any constraint touching the just-assigned
// variable can no longer reach its [lb, ub] range. It keeps the best
// (lowest-cost) complete assignment it finds. This is tractable for the
// small, heavily constrained fixtures the core's own tests build — it is
// not a general-purpose solver.
func (Engine) Solve(ctx context.Context, m cpsat.Model, _ cpsat.SolveOptions) (cpsat.Solution, error) {
	impl := m.(*model)
	n := impl.numVars

	bounds := make([]struct{ min, max int64 }, len(impl.constraints))
	for i, c := range impl.constraints {
		var max int64
		for _, t := range c.terms {
			if t.Coef > 0 {
				max += t.Coef
			}
		}
		bounds[i].max = max
		var min int64
		for _, t := range c.terms {
			if t.Coef < 0 {
				min += t.Coef
			}
		}
		bounds[i].min = min
	}

	assignment := make([]int8, n) // -1 unassigned, 0/1 assigned
	for i := range assignment {
		assignment[i] = -1
	}
	partial := make([]int64, len(impl.constraints))
	remainingMin := make([]int64, len(impl.constraints))
	remainingMax := make([]int64, len(impl.constraints))
	copy(remainingMin, boundsMin(bounds))
	copy(remainingMax, boundsMax(bounds))

	var best []int8
	var bestCost int64
	hasBest := false

	var search func(i int)
	search = func(i int) {
		if i == n {
			cost := impl.cost(assignment)
			if !hasBest || cost < bestCost {
				best = append([]int8(nil), assignment...)
				bestCost = cost
				hasBest = true
			}
			return
		}
		for _, v := range [2]int8{0, 1} {
			assignment[i] = v
			ok := true
			var touched []int
			for _, ci := range impl.byVar[i] {
				coef := coefOf(impl.constraints[ci], varID(i))
				if v == 1 {
					partial[ci] += coef
				}
				if coef > 0 {
					remainingMax[ci] -= coef
				} else if coef < 0 {
					remainingMin[ci] -= coef
				}
				touched = append(touched, ci)

				c := impl.constraints[ci]
				if partial[ci]+remainingMin[ci] > c.ub || partial[ci]+remainingMax[ci] < c.lb {
					ok = false
				}
			}
			if ok {
				search(i + 1)
			}
			for _, ci := range touched {
				coef := coefOf(impl.constraints[ci], varID(i))
				if v == 1 {
					partial[ci] -= coef
				}
				if coef > 0 {
					remainingMax[ci] += coef
				} else if coef < 0 {
					remainingMin[ci] += coef
				}
			}
			assignment[i] = -1
		}
	}
	search(0)

	if !hasBest {
		return &solution{status: cpsat.StatusInfeasible}, nil
	}
	values := make([]bool, n)
	for i, v := range best {
		values[i] = v == 1
	}
	return &solution{status: cpsat.StatusOptimal, values: values}, nil
}

func coefOf(c constraint, v varID) int64 {
	for _, t := range c.terms {
		if t.Var.(varID) == v {
			return t.Coef
		}
	}
	return 0
}

func boundsMin(bounds []struct{ min, max int64 }) []int64 {
	out := make([]int64, len(bounds))
	for i, b := range bounds {
		out[i] = b.min
	}
	return out
}

func boundsMax(bounds []struct{ min, max int64 }) []int64 {
	out := make([]int64, len(bounds))
	for i, b := range bounds {
		out[i] = b.max
	}
	return out
}

func (m *model) cost(assignment []int8) int64 {
	var sum int64
	for _, t := range m.objective {
		if assignment[int(t.Var.(varID))] == 1 {
			sum += t.Coef
		}
	}
	return sum
}

type solution struct {
	status cpsat.Status
	values []bool
}

func (s *solution) Status() cpsat.Status { return s.status }

func (s *solution) BoolValue(v cpsat.Var) bool {
	id := int(v.(varID))
	if id < 0 || id >= len(s.values) {
		return false
	}
	return s.values[id]
}

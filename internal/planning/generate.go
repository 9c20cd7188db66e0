// Package planning implements the timetable generator core: the
// validator, session expander, candidate builder, CP-SAT model builder,
// solver driver and decoder described by the generator's design. It
// performs no I/O and holds no process-wide state — Generate is a
// synchronous pure function from a domain.World to a sorted list of
// domain.ScheduleEntry.
package planning

import (
	"context"
	"time"

	"github.com/noah-isme/campus-scheduler/internal/cpsat"
	"github.com/noah-isme/campus-scheduler/internal/domain"
)

// Options configures one Generate call. A zero-value Options falls back to
// the documented defaults (12s time limit, 8 workers, the default penalty
// weight table).
type Options struct {
	TimeLimit time.Duration
	Workers   int
	Policy    *PenaltyPolicy
}

// Generate runs the full pipeline — validate, expand, build candidates,
// build the CP-SAT model, solve within the time budget, decode — and
// returns the schedule sorted by (day, slot, assignment_id). Every failure
// path returns a *PlanningError; nothing is ever partially produced.
func Generate(ctx context.Context, engine cpsat.Engine, world domain.World, opts Options) ([]domain.ScheduleEntry, error) {
	rw, err := validate(world)
	if err != nil {
		return nil, err
	}

	sessions := expand(world)
	if len(sessions) == 0 {
		return []domain.ScheduleEntry{}, nil
	}

	cands, err := buildCandidates(rw, sessions)
	if err != nil {
		return nil, err
	}

	policy := DefaultPenaltyPolicy()
	if opts.Policy != nil {
		policy = *opts.Policy
	}
	bm := buildModel(engine, rw, sessions, cands, policy)

	sol, err := solve(ctx, engine, bm, opts.TimeLimit, opts.Workers)
	if err != nil {
		return nil, err
	}

	return decode(rw, sessions, cands, bm, sol)
}

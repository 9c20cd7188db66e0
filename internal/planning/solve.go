package planning

import (
	"context"
	"time"

	"github.com/noah-isme/campus-scheduler/internal/cpsat"
)

// DefaultTimeLimit and DefaultWorkers match §4.6 and §5: a 12-second wall
// clock budget and up to 8 parallel search workers.
const (
	DefaultTimeLimit = 12 * time.Second
	DefaultWorkers   = 8
)

// solve runs the engine within the given time budget and returns the
// solution once it reports optimal or feasible. Any other outcome — most
// commonly a timeout with no incumbent, or a proven infeasibility — becomes
// an Infeasible PlanningError; partial results are never returned.
func solve(ctx context.Context, engine cpsat.Engine, bm *builtModel, timeLimit time.Duration, workers int) (cpsat.Solution, error) {
	if timeLimit <= 0 {
		timeLimit = DefaultTimeLimit
	}
	if workers <= 0 {
		workers = DefaultWorkers
	}

	sol, err := engine.Solve(ctx, bm.model, cpsat.SolveOptions{TimeLimit: timeLimit, Workers: workers})
	if err != nil {
		return nil, internalError(err.Error())
	}
	if !sol.Status().Accepted() {
		return nil, infeasibleError("cannot build schedule with current constraints; relax or substitute resources")
	}
	return sol, nil
}

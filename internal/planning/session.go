package planning

import (
	"fmt"

	"github.com/noah-isme/campus-scheduler/internal/domain"
)

// session is one of the sessionsPerWeek abstract instances an assignment
// expands into. Sessions from the same assignment are indistinguishable to
// the constraint model except that they must land on distinct cells.
type session struct {
	AssignmentID string
	Index        int
}

// key is the stable identifier used to name solver variables and to index
// the candidate tables: "<assignment-id>:<index>".
func (s session) key() string {
	return fmt.Sprintf("%s:%d", s.AssignmentID, s.Index)
}

// expand produces A#0..A#n-1 for every assignment in deterministic input
// order, the order validate() does not disturb.
func expand(w domain.World) []session {
	sessions := make([]session, 0)
	for _, a := range w.Assignments {
		for idx := 0; idx < a.SessionsPerWeek; idx++ {
			sessions = append(sessions, session{AssignmentID: a.ID, Index: idx})
		}
	}
	return sessions
}

// cell is a (day, slot) pair.
type cell struct {
	Day  int
	Slot int
}

// groupIDsOf returns the sorted effective group set for an assignment. It
// recomputes the set from the resolved maps on every call, the same way
// validation does; the candidate builder, model builder and decoder all use it.
func groupIDsOf(rw *resolvedWorld, assignmentID string) []string {
	a := rw.assignments[assignmentID]
	ids, _ := effectiveGroupIDs(rw, a)
	return ids
}

package planning

import (
	"fmt"

	"github.com/noah-isme/campus-scheduler/internal/domain"
)

// candidateSet holds, per session key, the feasible timeslots T(s) and
// feasible rooms R(s) the model builder is allowed to materialise
// variables for. Pre-filtering here keeps the variable count tight, which
// is the chief driver of solver time.
type candidateSet struct {
	timeslots map[string][]cell
	rooms     map[string][]string
}

// buildCandidates computes T(s) and R(s) for every session. It fails fast
// with NoCandidates on the first session that has no feasible timeslot or
// room, matching the generator's all-or-nothing error policy.
func buildCandidates(rw *resolvedWorld, sessions []session) (*candidateSet, error) {
	cs := &candidateSet{
		timeslots: make(map[string][]cell, len(sessions)),
		rooms:     make(map[string][]string, len(sessions)),
	}

	for _, s := range sessions {
		a := rw.assignments[s.AssignmentID]
		teacher := rw.teachers[a.TeacherID]
		discipline := rw.disciplines[a.DisciplineID]
		groupIDs := groupIDsOf(rw, a.ID)

		slots := timeslotCandidates(rw, a, teacher, groupIDs)
		if len(slots) == 0 {
			return nil, noCandidatesError(fmt.Sprintf(
				"assignment %s: no available slots (work days/blocks/group shift)", a.ID,
			))
		}

		rooms, err := roomCandidates(rw, a, discipline, groupIDs)
		if err != nil {
			return nil, err
		}
		if len(rooms) == 0 {
			return nil, noCandidatesError(fmt.Sprintf(
				"assignment %s: no feasible room (capacity/features/fixed room)", a.ID,
			))
		}

		cs.timeslots[s.key()] = slots
		cs.rooms[s.key()] = rooms
	}

	return cs, nil
}

// timeslotCandidates computes T(s) per §4.2: the full (day, slot) grid,
// narrowed to a single locked cell when the assignment is locked, then
// filtered by teacher availability and every effective group's window.
func timeslotCandidates(rw *resolvedWorld, a domain.Assignment, teacher domain.Teacher, groupIDs []string) []cell {
	locked := a.Locked()
	cells := make([]cell, 0, domain.DayCount*(domain.LastSlot-domain.FirstSlot+1))

	for day := 0; day < domain.DayCount; day++ {
		for _, slot := range domain.Slots() {
			if locked && (day != *a.LockDay || slot != *a.LockSlot) {
				continue
			}
			if !teacher.WorksOn(day) {
				continue
			}
			if teacher.IsBlocked(day, slot) {
				continue
			}

			allowed := true
			for _, groupID := range groupIDs {
				g := rw.groups[groupID]
				if g.DayBlocked(day) || !g.InShift(slot) || g.CellBlocked(day, slot) {
					allowed = false
					break
				}
			}
			if !allowed {
				continue
			}

			cells = append(cells, cell{Day: day, Slot: slot})
		}
	}
	return cells
}

// roomCandidates computes R(s) per §4.2: the first non-empty of
// lock_room_id, room_id, discipline.fixed_room_id, stream.preferred_room_id
// pins the set to that single room (if feasible, else empty); otherwise
// every feasible room qualifies.
func roomCandidates(rw *resolvedWorld, a domain.Assignment, d domain.Discipline, groupIDs []string) ([]string, error) {
	requested := a.LockRoomID
	if requested == "" {
		requested = a.RoomID
	}
	if requested == "" {
		requested = d.FixedRoomID
	}
	if requested == "" && a.StreamID != "" {
		if stream, ok := rw.streams[a.StreamID]; ok {
			requested = stream.PreferredRoomID
		}
	}

	if requested != "" {
		room, ok := rw.rooms[requested]
		if !ok {
			return nil, internalError(fmt.Sprintf("assignment %s: requested room %s vanished after validation", a.ID, requested))
		}
		if roomFits(rw, room, d, groupIDs) {
			return []string{requested}, nil
		}
		return nil, nil
	}

	rooms := make([]string, 0)
	for _, room := range rw.rooms {
		if roomFits(rw, room, d, groupIDs) {
			rooms = append(rooms, room.ID)
		}
	}
	return rooms, nil
}

// roomFits implements room feasibility: capacity must cover the summed
// group sizes, and every required feature must be present.
func roomFits(rw *resolvedWorld, room domain.Room, d domain.Discipline, groupIDs []string) bool {
	total := 0
	for _, groupID := range groupIDs {
		total += rw.groups[groupID].Size
	}
	if room.Capacity < total {
		return false
	}
	return room.HasFeatures(d.RequiredRoomFeatures)
}

package planning

import (
	"strconv"

	"github.com/noah-isme/campus-scheduler/internal/cpsat"
)

// yKey and xKey address a y or x variable: y is keyed by (session, cell); x
// by (session, cell, room).
type yKey struct {
	session string
	cell    cell
}

type xKey struct {
	session string
	cell    cell
	room    string
}

// builtModel is the materialised CP-SAT model plus the variable tables the
// decoder needs to read back a solution.
type builtModel struct {
	model cpsat.Model
	y     map[yKey]cpsat.Var
	x     map[xKey]cpsat.Var
}

// buildModel implements §4.3 (variables + channeling + exactly-one) and
// §4.4 (hard constraints), then posts the §4.5 objective, directly mirroring
// the variable naming and constraint posting order of the reference
// implementation this core replaces.
func buildModel(engine cpsat.Engine, rw *resolvedWorld, sessions []session, cands *candidateSet, policy PenaltyPolicy) *builtModel {
	m := engine.NewModel()
	bm := &builtModel{
		model: m,
		y:     make(map[yKey]cpsat.Var),
		x:     make(map[xKey]cpsat.Var),
	}

	for _, s := range sessions {
		skey := s.key()
		var slotChoices []cpsat.Var

		for _, c := range cands.timeslots[skey] {
			y := m.NewBoolVar("y_" + skey + "_" + cellSuffix(c))
			bm.y[yKey{session: skey, cell: c}] = y
			slotChoices = append(slotChoices, y)

			var roomChoices []cpsat.Var
			for _, roomID := range cands.rooms[skey] {
				x := m.NewBoolVar("x_" + skey + "_" + cellSuffix(c) + "_" + roomID)
				bm.x[xKey{session: skey, cell: c, room: roomID}] = x
				roomChoices = append(roomChoices, x)
			}

			// Channeling: sum(x over rooms) == y.
			terms := cpsat.Sum(roomChoices...)
			terms = append(terms, cpsat.Term{Var: y, Coef: -1})
			m.AddEquality(terms, 0)
		}

		// Exactly-one timeslot per session.
		m.AddExactlyOne(slotChoices)
	}

	postHardConstraints(m, rw, sessions, cands, bm)
	postObjective(m, rw, sessions, cands, bm, policy)

	return bm
}

// cellSuffix renders a cell the way the reference implementation's
// variable names do: "<day>_<slot>".
func cellSuffix(c cell) string {
	return strconv.Itoa(c.Day) + "_" + strconv.Itoa(c.Slot)
}

// postHardConstraints posts, per active week, the teacher/group/room
// single-booking constraints and the teacher daily/weekly load caps.
func postHardConstraints(m cpsat.Model, rw *resolvedWorld, sessions []session, cands *candidateSet, bm *builtModel) {
	type dayTeacherKey struct {
		week, day int
		teacher   string
	}
	type weekTeacherKey struct {
		week      int
		teacher   string
	}
	type slotTeacherKey struct {
		week, day, slot int
		teacher         string
	}
	type slotGroupKey struct {
		week, day, slot int
		group           string
	}
	type slotRoomKey struct {
		week, day, slot int
		room            string
	}

	byDayTeacher := map[dayTeacherKey][]cpsat.Var{}
	byWeekTeacher := map[weekTeacherKey][]cpsat.Var{}
	bySlotTeacher := map[slotTeacherKey][]cpsat.Var{}
	bySlotGroup := map[slotGroupKey][]cpsat.Var{}
	bySlotRoom := map[slotRoomKey][]cpsat.Var{}

	for _, s := range sessions {
		a := rw.assignments[s.AssignmentID]
		skey := s.key()
		groupIDs := groupIDsOf(rw, a.ID)

		for week := a.StartWeek; week <= a.EndWeek; week++ {
			for _, c := range cands.timeslots[skey] {
				y := bm.y[yKey{session: skey, cell: c}]

				byDayTeacher[dayTeacherKey{week, c.Day, a.TeacherID}] = append(byDayTeacher[dayTeacherKey{week, c.Day, a.TeacherID}], y)
				byWeekTeacher[weekTeacherKey{week, a.TeacherID}] = append(byWeekTeacher[weekTeacherKey{week, a.TeacherID}], y)
				bySlotTeacher[slotTeacherKey{week, c.Day, c.Slot, a.TeacherID}] = append(bySlotTeacher[slotTeacherKey{week, c.Day, c.Slot, a.TeacherID}], y)

				for _, groupID := range groupIDs {
					k := slotGroupKey{week, c.Day, c.Slot, groupID}
					bySlotGroup[k] = append(bySlotGroup[k], y)
				}

				for _, roomID := range cands.rooms[skey] {
					x := bm.x[xKey{session: skey, cell: c, room: roomID}]
					k := slotRoomKey{week, c.Day, c.Slot, roomID}
					bySlotRoom[k] = append(bySlotRoom[k], x)
				}
			}
		}
	}

	for _, vars := range bySlotTeacher {
		m.AddAtMost(cpsat.Sum(vars...), 1)
	}
	for _, vars := range bySlotGroup {
		m.AddAtMost(cpsat.Sum(vars...), 1)
	}
	for _, vars := range bySlotRoom {
		m.AddAtMost(cpsat.Sum(vars...), 1)
	}
	for key, vars := range byDayTeacher {
		teacher := rw.teachers[key.teacher]
		m.AddAtMost(cpsat.Sum(vars...), int64(teacher.MaxClassesPerDay))
	}
	for key, vars := range byWeekTeacher {
		teacher := rw.teachers[key.teacher]
		m.AddAtMost(cpsat.Sum(vars...), int64(teacher.MaxClassesPerWeek))
	}
}

// postObjective posts the §4.5 weighted-sum minimisation over x variables.
func postObjective(m cpsat.Model, rw *resolvedWorld, sessions []session, cands *candidateSet, bm *builtModel, policy PenaltyPolicy) {
	var terms []cpsat.Term

	for _, s := range sessions {
		a := rw.assignments[s.AssignmentID]
		d := rw.disciplines[a.DisciplineID]
		teacher := rw.teachers[a.TeacherID]
		groupIDs := groupIDsOf(rw, a.ID)
		skey := s.key()

		for _, c := range cands.timeslots[skey] {
			for _, roomID := range cands.rooms[skey] {
				weight := policy.weight(rw, a, d, teacher, groupIDs, c.Slot, roomID)
				if weight == 0 {
					continue
				}
				x := bm.x[xKey{session: skey, cell: c, room: roomID}]
				terms = append(terms, cpsat.Term{Var: x, Coef: weight})
			}
		}
	}

	m.Minimize(terms)
}

package planning

import (
	"fmt"
	"sort"

	"github.com/noah-isme/campus-scheduler/internal/domain"
)

// resolvedWorld is the World plus the id -> entity maps built once per run.
// Every lookup past validation goes through these maps; the only later walk
// of a slice is expand, which reads the assignment list for its order.
type resolvedWorld struct {
	teachers    map[string]domain.Teacher
	rooms       map[string]domain.Room
	groups      map[string]domain.Group
	streams     map[string]domain.Stream
	disciplines map[string]domain.Discipline
	assignments map[string]domain.Assignment
}

// validate checks referential integrity, numeric sanity and contract/program
// windows of the world, returning the resolved id maps for later stages. It
// is the first thing Generate does, and every failure here is final: nothing
// is partially produced.
func validate(w domain.World) (*resolvedWorld, error) {
	rw := &resolvedWorld{
		teachers:    map[string]domain.Teacher{},
		rooms:       map[string]domain.Room{},
		groups:      map[string]domain.Group{},
		streams:     map[string]domain.Stream{},
		disciplines: map[string]domain.Discipline{},
		assignments: map[string]domain.Assignment{},
	}
	for _, t := range w.Teachers {
		rw.teachers[t.ID] = t
	}
	for _, r := range w.Rooms {
		rw.rooms[r.ID] = r
	}
	for _, g := range w.Groups {
		rw.groups[g.ID] = g
	}
	for _, s := range w.Streams {
		rw.streams[s.ID] = s
	}
	for _, d := range w.Disciplines {
		rw.disciplines[d.ID] = d
	}
	for _, a := range w.Assignments {
		rw.assignments[a.ID] = a
	}

	for _, stream := range w.Streams {
		for _, groupID := range stream.GroupIDs {
			if _, ok := rw.groups[groupID]; !ok {
				return nil, referentialError(fmt.Sprintf("stream %s: unknown group %s", stream.ID, groupID))
			}
		}
		if stream.PreferredRoomID != "" {
			if _, ok := rw.rooms[stream.PreferredRoomID]; !ok {
				return nil, referentialError(fmt.Sprintf("stream %s: unknown room %s", stream.ID, stream.PreferredRoomID))
			}
		}
	}

	for _, a := range w.Assignments {
		teacher, ok := rw.teachers[a.TeacherID]
		if !ok {
			return nil, referentialError(fmt.Sprintf("assignment %s: unknown teacher %s", a.ID, a.TeacherID))
		}
		if _, ok := rw.disciplines[a.DisciplineID]; !ok {
			return nil, referentialError(fmt.Sprintf("assignment %s: unknown discipline %s", a.ID, a.DisciplineID))
		}
		if a.StreamID != "" {
			if _, ok := rw.streams[a.StreamID]; !ok {
				return nil, referentialError(fmt.Sprintf("assignment %s: unknown stream %s", a.ID, a.StreamID))
			}
		}
		for _, groupID := range a.GroupIDs {
			if _, ok := rw.groups[groupID]; !ok {
				return nil, referentialError(fmt.Sprintf("assignment %s: unknown group %s", a.ID, groupID))
			}
		}
		if a.RoomID != "" {
			if _, ok := rw.rooms[a.RoomID]; !ok {
				return nil, referentialError(fmt.Sprintf("assignment %s: unknown room %s", a.ID, a.RoomID))
			}
		}
		if a.LockRoomID != "" {
			if _, ok := rw.rooms[a.LockRoomID]; !ok {
				return nil, referentialError(fmt.Sprintf("assignment %s: lock_room_id %s not found", a.ID, a.LockRoomID))
			}
		}
		if a.LockTeacherID != "" && a.LockTeacherID != a.TeacherID {
			return nil, referentialError(fmt.Sprintf("assignment %s: lock_teacher_id disagrees with teacher_id", a.ID))
		}
		if a.SessionsPerWeek <= 0 {
			return nil, numericError(fmt.Sprintf("assignment %s: sessions_per_week must be > 0", a.ID))
		}
		if a.StartWeek > a.EndWeek {
			return nil, numericError(fmt.Sprintf("assignment %s: start_week greater than end_week", a.ID))
		}
		if a.StartWeek <= 0 {
			return nil, numericError(fmt.Sprintf("assignment %s: start_week must be > 0", a.ID))
		}

		groupIDs, err := effectiveGroupIDs(rw, a)
		if err != nil {
			return nil, err
		}

		if a.StartWeek < teacher.ContractStartWeek || a.EndWeek > teacher.ContractEndWeek {
			return nil, windowError(fmt.Sprintf(
				"assignment %s: period %d-%d outside teacher %s contract %d-%d",
				a.ID, a.StartWeek, a.EndWeek, teacher.ID, teacher.ContractStartWeek, teacher.ContractEndWeek,
			))
		}
		for _, groupID := range groupIDs {
			group := rw.groups[groupID]
			if a.StartWeek < group.ProgramStartWeek || a.EndWeek > group.ProgramEndWeek {
				return nil, windowError(fmt.Sprintf(
					"assignment %s: period %d-%d outside group %s program %d-%d",
					a.ID, a.StartWeek, a.EndWeek, group.ID, group.ProgramStartWeek, group.ProgramEndWeek,
				))
			}
		}

		if a.Locked() {
			if *a.LockDay < 0 || *a.LockDay >= domain.DayCount {
				return nil, numericError(fmt.Sprintf("assignment %s: lock_day out of range", a.ID))
			}
			if *a.LockSlot < domain.FirstSlot || *a.LockSlot > domain.LastSlot {
				return nil, numericError(fmt.Sprintf("assignment %s: lock_slot out of range", a.ID))
			}
		}
	}

	return rw, nil
}

// effectiveGroupIDs resolves groups(A) = sorted(set(A.group_ids ∪
// A.stream.group_ids)). Validation fails if the result is empty: an
// assignment with no resolvable groups cannot be placed.
func effectiveGroupIDs(rw *resolvedWorld, a domain.Assignment) ([]string, error) {
	seen := map[string]struct{}{}
	for _, id := range a.GroupIDs {
		seen[id] = struct{}{}
	}
	if a.StreamID != "" {
		if stream, ok := rw.streams[a.StreamID]; ok {
			for _, id := range stream.GroupIDs {
				seen[id] = struct{}{}
			}
		}
	}
	if len(seen) == 0 {
		return nil, referentialError(fmt.Sprintf("assignment %s: no groups (neither group_ids nor stream_id resolve)", a.ID))
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

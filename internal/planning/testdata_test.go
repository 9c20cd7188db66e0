package planning

import "github.com/noah-isme/campus-scheduler/internal/domain"

// baseWorld returns the "tiny feasible" fixture from the end-to-end
// scenarios: 1 teacher, 1 room, 1 group, 1 lecture discipline, and an
// assignment with 2 sessions/week in week 1 only. Tests mutate a copy of
// this to build the other scenarios.
func baseWorld() domain.World {
	return domain.World{
		Teachers: []domain.Teacher{{
			ID:                "t1",
			Name:              "Ada",
			WorkDays:          []int{0, 1, 2, 3, 4, 5},
			MaxClassesPerDay:  4,
			MaxClassesPerWeek: 20,
			ContractStartWeek: 1,
			ContractEndWeek:   15,
		}},
		Rooms: []domain.Room{{
			ID:       "r1",
			Name:     "Main hall",
			Capacity: 30,
			Features: []string{"lecture"},
		}},
		Groups: []domain.Group{{
			ID:               "g1",
			Name:             "CS-101",
			Size:             20,
			ShiftStartSlot:   1,
			ShiftEndSlot:     8,
			ProgramStartWeek: 1,
			ProgramEndWeek:   15,
		}},
		Disciplines: []domain.Discipline{{
			ID:                   "d1",
			Name:                 "Algorithms",
			Kind:                 domain.DisciplineKindLecture,
			RequiredRoomFeatures: []string{"lecture"},
		}},
		Assignments: []domain.Assignment{{
			ID:              "a1",
			DisciplineID:    "d1",
			TeacherID:       "t1",
			GroupIDs:        []string{"g1"},
			StartWeek:       1,
			EndWeek:         1,
			SessionsPerWeek: 2,
		}},
	}
}

func intPtr(v int) *int { return &v }

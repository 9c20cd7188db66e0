package planning

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-scheduler/internal/cpsat/fake"
	"github.com/noah-isme/campus-scheduler/internal/domain"
)

func testOptions() Options {
	return Options{TimeLimit: 5 * time.Second, Workers: 1}
}

// Scenario 1: tiny feasible — 2 sessions land on distinct cells.
func TestGenerate_TinyFeasible(t *testing.T) {
	entries, err := Generate(context.Background(), fake.New(), baseWorld(), testOptions())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.False(t, entries[0].Day == entries[1].Day && entries[0].Slot == entries[1].Slot,
		"two sessions of the same assignment must not share a cell (same teacher)")
	for _, e := range entries {
		assert.Equal(t, "a1", e.AssignmentID)
		assert.Equal(t, []string{"g1"}, e.GroupIDs)
		assert.Equal(t, "r1", e.RoomID)
	}
}

// Scenario 2: a lock pins exactly one cell.
func TestGenerate_LockPinsCell(t *testing.T) {
	w := baseWorld()
	w.Assignments[0].SessionsPerWeek = 1
	w.Assignments[0].LockDay = intPtr(2)
	w.Assignments[0].LockSlot = intPtr(3)

	entries, err := Generate(context.Background(), fake.New(), w, testOptions())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 2, entries[0].Day)
	assert.Equal(t, 3, entries[0].Slot)
}

// Scenario 3: infeasible by capacity surfaces NoCandidates.
func TestGenerate_InfeasibleByCapacity(t *testing.T) {
	w := baseWorld()
	w.Groups[0].Size = 40

	_, err := Generate(context.Background(), fake.New(), w, testOptions())
	require.Error(t, err)
	var pe *PlanningError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, CategoryNoCandidates, pe.Category)
}

// Scenario 4: stream union of groups resolves to the sorted group set.
func TestGenerate_StreamUnionOfGroups(t *testing.T) {
	w := baseWorld()
	w.Groups = append(w.Groups, domain.Group{
		ID:               "g2",
		Name:             "CS-102",
		Size:             5,
		ShiftStartSlot:   1,
		ShiftEndSlot:     8,
		ProgramStartWeek: 1,
		ProgramEndWeek:   15,
	})
	w.Rooms[0].Capacity = 30
	w.Streams = []domain.Stream{{
		ID:       "s1",
		Name:     "Lecture stream",
		GroupIDs: []string{"g2", "g1"},
	}}
	w.Assignments[0].GroupIDs = nil
	w.Assignments[0].StreamID = "s1"
	w.Assignments[0].SessionsPerWeek = 1

	entries, err := Generate(context.Background(), fake.New(), w, testOptions())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, []string{"g1", "g2"}, entries[0].GroupIDs)
}

// Scenario 5: a daily cap of 1 pushes 3 weekly sessions across 3 distinct days.
func TestGenerate_DailyCapSpreadsAcrossDays(t *testing.T) {
	w := baseWorld()
	w.Teachers[0].MaxClassesPerDay = 1
	w.Assignments[0].SessionsPerWeek = 3

	entries, err := Generate(context.Background(), fake.New(), w, testOptions())
	require.NoError(t, err)
	require.Len(t, entries, 3)

	days := map[int]struct{}{}
	for _, e := range entries {
		days[e.Day] = struct{}{}
	}
	assert.Len(t, days, 3, "daily cap of 1 must force each session onto its own day")
}

// Scenario 6: room preference is a preference, not a rule. a1's teacher
// prefers r1 (a soft penalty, not a candidate restriction — unlike
// room_id/fixed_room_id/lock_room_id, default_room_id never narrows R(s)),
// and a1 is itself locked to the one cell a2 has already locked r1 to. The
// solver must place a1 in a different feasible room rather than fail.
func TestGenerate_RoomPreferenceYieldsToLockedConflict(t *testing.T) {
	w := baseWorld()
	w.Rooms = append(w.Rooms, domain.Room{
		ID:       "r2",
		Name:     "Annex",
		Capacity: 30,
		Features: []string{"lecture"},
	})
	w.Teachers[0].DefaultRoomID = "r1"
	w.Assignments[0].SessionsPerWeek = 1
	w.Assignments[0].LockDay = intPtr(0)
	w.Assignments[0].LockSlot = intPtr(1)

	w.Groups = append(w.Groups, domain.Group{
		ID:               "g2",
		Name:             "CS-102",
		Size:             20,
		ShiftStartSlot:   1,
		ShiftEndSlot:     8,
		ProgramStartWeek: 1,
		ProgramEndWeek:   15,
	})
	w.Teachers = append(w.Teachers, domain.Teacher{
		ID:                "t2",
		Name:              "Grace",
		WorkDays:          []int{0, 1, 2, 3, 4, 5},
		MaxClassesPerDay:  4,
		MaxClassesPerWeek: 20,
		ContractStartWeek: 1,
		ContractEndWeek:   15,
	})
	w.Assignments = append(w.Assignments, domain.Assignment{
		ID:              "a2",
		DisciplineID:    "d1",
		TeacherID:       "t2",
		GroupIDs:        []string{"g2"},
		StartWeek:       1,
		EndWeek:         1,
		SessionsPerWeek: 1,
		LockDay:         intPtr(0),
		LockSlot:        intPtr(1),
		LockRoomID:      "r1",
	})

	entries, err := Generate(context.Background(), fake.New(), w, testOptions())
	require.NoError(t, err)
	require.Len(t, entries, 2)

	var a1Room string
	for _, e := range entries {
		if e.AssignmentID == "a1" {
			a1Room = e.RoomID
		}
	}
	assert.Equal(t, "r2", a1Room, "a1 should yield its preferred room r1, which a2 locks at the same cell")
}

func TestGenerate_EmptyWorldYieldsEmptySchedule(t *testing.T) {
	entries, err := Generate(context.Background(), fake.New(), domain.World{}, testOptions())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

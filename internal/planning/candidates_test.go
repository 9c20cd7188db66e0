package planning

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCandidates_HappyPath(t *testing.T) {
	w := baseWorld()
	rw, err := validate(w)
	require.NoError(t, err)

	sessions := expand(w)
	require.Len(t, sessions, 2)

	cands, err := buildCandidates(rw, sessions)
	require.NoError(t, err)

	for _, s := range sessions {
		assert.Len(t, cands.timeslots[s.key()], 6*8)
		assert.Equal(t, []string{"r1"}, cands.rooms[s.key()])
	}
}

func TestBuildCandidates_NoRoomFitsCapacity(t *testing.T) {
	w := baseWorld()
	w.Groups[0].Size = 40 // exceeds room capacity of 30

	rw, err := validate(w)
	require.NoError(t, err)
	sessions := expand(w)

	_, err = buildCandidates(rw, sessions)
	require.Error(t, err)
	var pe *PlanningError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, CategoryNoCandidates, pe.Category)
}

func TestBuildCandidates_LockRestrictsToSingleCell(t *testing.T) {
	w := baseWorld()
	w.Assignments[0].SessionsPerWeek = 1
	w.Assignments[0].LockDay = intPtr(2)
	w.Assignments[0].LockSlot = intPtr(3)

	rw, err := validate(w)
	require.NoError(t, err)
	sessions := expand(w)

	cands, err := buildCandidates(rw, sessions)
	require.NoError(t, err)

	require.Len(t, cands.timeslots[sessions[0].key()], 1)
	assert.Equal(t, cell{Day: 2, Slot: 3}, cands.timeslots[sessions[0].key()][0])
}

func TestBuildCandidates_RequestedRoomMustFit(t *testing.T) {
	w := baseWorld()
	w.Assignments[0].RoomID = "r1"
	w.Groups[0].Size = 40 // r1 no longer fits

	rw, err := validate(w)
	require.NoError(t, err)
	sessions := expand(w)

	_, err = buildCandidates(rw, sessions)
	require.Error(t, err)
	var pe *PlanningError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, CategoryNoCandidates, pe.Category)
}

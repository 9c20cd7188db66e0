package planning

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-scheduler/internal/domain"
)

func TestValidate_HappyPath(t *testing.T) {
	rw, err := validate(baseWorld())
	require.NoError(t, err)
	assert.Len(t, rw.teachers, 1)
	assert.Len(t, rw.assignments, 1)
}

func TestValidate_UnknownTeacher(t *testing.T) {
	w := baseWorld()
	w.Assignments[0].TeacherID = "ghost"

	_, err := validate(w)
	require.Error(t, err)
	var pe *PlanningError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, CategoryReferential, pe.Category)
}

func TestValidate_SessionsPerWeekMustBePositive(t *testing.T) {
	w := baseWorld()
	w.Assignments[0].SessionsPerWeek = 0

	_, err := validate(w)
	require.Error(t, err)
	var pe *PlanningError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, CategoryNumeric, pe.Category)
}

func TestValidate_StartWeekAfterEndWeek(t *testing.T) {
	w := baseWorld()
	w.Assignments[0].StartWeek = 5
	w.Assignments[0].EndWeek = 1

	_, err := validate(w)
	require.Error(t, err)
	var pe *PlanningError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, CategoryNumeric, pe.Category)
}

func TestValidate_OutsideTeacherContractWindow(t *testing.T) {
	w := baseWorld()
	w.Teachers[0].ContractStartWeek = 20
	w.Teachers[0].ContractEndWeek = 30

	_, err := validate(w)
	require.Error(t, err)
	var pe *PlanningError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, CategoryWindow, pe.Category)
}

func TestValidate_OutsideGroupProgramWindow(t *testing.T) {
	w := baseWorld()
	w.Groups[0].ProgramStartWeek = 20
	w.Groups[0].ProgramEndWeek = 30

	_, err := validate(w)
	require.Error(t, err)
	var pe *PlanningError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, CategoryWindow, pe.Category)
}

func TestValidate_AssignmentWithNoGroups(t *testing.T) {
	w := baseWorld()
	w.Assignments[0].GroupIDs = nil
	w.Assignments[0].StreamID = ""

	_, err := validate(w)
	require.Error(t, err)
	var pe *PlanningError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, CategoryReferential, pe.Category)
}

func TestValidate_LockTeacherIDMismatch(t *testing.T) {
	w := baseWorld()
	w.Assignments[0].LockTeacherID = "someone-else"

	_, err := validate(w)
	require.Error(t, err)
	var pe *PlanningError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, CategoryReferential, pe.Category)
}

func TestValidate_StreamUnknownGroup(t *testing.T) {
	w := baseWorld()
	w.Streams = append(w.Streams, domain.Stream{
		ID:       "s1",
		Name:     "Lecture stream",
		GroupIDs: []string{"ghost-group"},
	})

	_, err := validate(w)
	require.Error(t, err)
	var pe *PlanningError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, CategoryReferential, pe.Category)
}

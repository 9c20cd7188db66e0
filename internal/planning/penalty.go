package planning

import "github.com/noah-isme/campus-scheduler/internal/domain"

// PenaltyPolicy names the soft-preference weights the objective minimises.
// §9 leaves the weight table as unconfigured constants; this type makes it
// a named, overridable policy instead, while DefaultPenaltyPolicy matches
// the constants the weight table specifies.
type PenaltyPolicy struct {
	NotTeacherDefaultRoom int64
	NotAssignmentRoom     int64
	NotFixedRoom          int64
	LateSlot              int64
	GroupShiftMismatch    int64
	LateSlotThreshold     int
}

// DefaultPenaltyPolicy is the weight table in §4.5, in preference order:
// fixed room > explicit room > default room > late-slot avoidance > shift
// fit.
func DefaultPenaltyPolicy() PenaltyPolicy {
	return PenaltyPolicy{
		NotTeacherDefaultRoom: 2,
		NotAssignmentRoom:     5,
		NotFixedRoom:          7,
		LateSlot:              1,
		GroupShiftMismatch:    4,
		LateSlotThreshold:     6,
	}
}

// weight computes the penalty for placing session s of assignment a in
// (day, slot, room). The group-shift terms are defensive: T(s) already
// excludes out-of-shift cells, so they contribute 0 at any candidate cell
// and exist only to keep the cost function total-ordered under future
// relaxations of the candidate builder.
func (p PenaltyPolicy) weight(rw *resolvedWorld, a domain.Assignment, d domain.Discipline, teacher domain.Teacher, groupIDs []string, slot int, roomID string) int64 {
	var w int64

	if teacher.DefaultRoomID != "" && roomID != teacher.DefaultRoomID {
		w += p.NotTeacherDefaultRoom
	}
	if a.RoomID != "" && roomID != a.RoomID {
		w += p.NotAssignmentRoom
	}
	if d.FixedRoomID != "" && roomID != d.FixedRoomID {
		w += p.NotFixedRoom
	}
	if slot >= p.LateSlotThreshold {
		w += p.LateSlot
	}

	for _, groupID := range groupIDs {
		g := rw.groups[groupID]
		if slot > g.ShiftEndSlot {
			w += p.GroupShiftMismatch
		}
		if slot < g.ShiftStartSlot {
			w += p.GroupShiftMismatch
		}
	}

	return w
}

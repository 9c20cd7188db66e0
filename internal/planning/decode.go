package planning

import (
	"fmt"
	"sort"

	"github.com/noah-isme/campus-scheduler/internal/cpsat"
	"github.com/noah-isme/campus-scheduler/internal/domain"
)

// decode implements §4.7: for every session, find the single chosen cell
// and room, and emit the corresponding ScheduleEntry. A session with no
// chosen cell/room despite an accepted solve is an Internal error — the
// channeling and exactly-one constraints make this impossible, so it can
// only mean the model builder and decoder have drifted apart.
func decode(rw *resolvedWorld, sessions []session, cands *candidateSet, bm *builtModel, sol cpsat.Solution) ([]domain.ScheduleEntry, error) {
	entries := make([]domain.ScheduleEntry, 0, len(sessions))

	for _, s := range sessions {
		a := rw.assignments[s.AssignmentID]
		skey := s.key()

		var chosen *cell
		var chosenRoom string

		for _, c := range cands.timeslots[skey] {
			y := bm.y[yKey{session: skey, cell: c}]
			if !sol.BoolValue(y) {
				continue
			}
			cc := c
			chosen = &cc
			for _, roomID := range cands.rooms[skey] {
				x := bm.x[xKey{session: skey, cell: c, room: roomID}]
				if sol.BoolValue(x) {
					chosenRoom = roomID
					break
				}
			}
			break
		}

		if chosen == nil || chosenRoom == "" {
			return nil, internalError(fmt.Sprintf("no chosen cell/room decoded for session %s", skey))
		}

		entries = append(entries, domain.ScheduleEntry{
			AssignmentID: a.ID,
			DisciplineID: a.DisciplineID,
			TeacherID:    a.TeacherID,
			GroupIDs:     groupIDsOf(rw, a.ID),
			Day:          chosen.Day,
			Slot:         chosen.Slot,
			RoomID:       chosenRoom,
			StartWeek:    a.StartWeek,
			EndWeek:      a.EndWeek,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Day != b.Day {
			return a.Day < b.Day
		}
		if a.Slot != b.Slot {
			return a.Slot < b.Slot
		}
		return a.AssignmentID < b.AssignmentID
	})

	return entries, nil
}

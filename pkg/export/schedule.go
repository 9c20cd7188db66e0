package export

import (
	"fmt"
	"strings"

	"github.com/noah-isme/campus-scheduler/internal/domain"
)

var scheduleHeaders = []string{"day", "slot", "assignment_id", "discipline_id", "teacher_id", "group_ids", "room_id", "weeks"}

var dayNames = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// ScheduleDataset projects a generated schedule into the tabular Dataset
// shape CSVExporter and PDFExporter already know how to render.
func ScheduleDataset(entries []domain.ScheduleEntry) Dataset {
	rows := make([]map[string]string, 0, len(entries))
	for _, e := range entries {
		dayName := fmt.Sprintf("%d", e.Day)
		if e.Day >= 0 && e.Day < len(dayNames) {
			dayName = dayNames[e.Day]
		}
		rows = append(rows, map[string]string{
			"day":            dayName,
			"slot":           fmt.Sprintf("%d", e.Slot),
			"assignment_id":  e.AssignmentID,
			"discipline_id":  e.DisciplineID,
			"teacher_id":     e.TeacherID,
			"group_ids":      strings.Join(e.GroupIDs, ","),
			"room_id":        e.RoomID,
			"weeks":          fmt.Sprintf("%d-%d", e.StartWeek, e.EndWeek),
		})
	}
	return Dataset{Headers: scheduleHeaders, Rows: rows}
}

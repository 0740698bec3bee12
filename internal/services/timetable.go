package services

import (
	"time"

	"github.com/jmoiron/sqlx"

	"schooldesk-backend-go/internal/models"
)

// AddTimetableEntry stores the entry as given. Times are HH:MM strings and
// no overlap or validity checking is performed on them.
func AddTimetableEntry(db *sqlx.DB, entry models.TimetableEntry) (int64, error) {
	if entry.DayOfWeek < 0 || entry.DayOfWeek > 6 {
		return 0, ErrBadRequest("Day of week must be between 0 and 6.")
	}
	var id int64
	err := db.Get(&id, `
INSERT INTO timetable_entries (day_of_week, title, start_time, end_time, teacher, location, notes)
VALUES ($1,$2,$3,$4,$5,$6,$7)
RETURNING id
`, entry.DayOfWeek, entry.Title, entry.StartTime, entry.EndTime, entry.Teacher, entry.Location, entry.Notes)
	return id, err
}

// DeleteTimetableEntry is idempotent; deleting a missing id is a no-op.
func DeleteTimetableEntry(db *sqlx.DB, entryID int64) error {
	_, err := db.Exec(`DELETE FROM timetable_entries WHERE id = $1`, entryID)
	return err
}

// ListTimetableForWeek orders by day then start time. The start_time sort is
// lexical, which is only correct because the stored values are zero-padded
// HH:MM strings.
func ListTimetableForWeek(db *sqlx.DB) ([]models.TimetableEntry, error) {
	rows := []models.TimetableEntry{}
	err := db.Select(&rows, `
SELECT id, day_of_week, title, start_time, end_time, teacher, location, notes
FROM timetable_entries
ORDER BY day_of_week, start_time
`)
	return rows, err
}

// ProjectWeek buckets the entries per day index and computes the seven
// calendar dates (Monday..Sunday) of the week containing today, used purely
// for display labeling.
func ProjectWeek(entries []models.TimetableEntry, today time.Time) (map[int][]models.TimetableEntry, []time.Time) {
	byDay := map[int][]models.TimetableEntry{}
	for _, entry := range entries {
		byDay[entry.DayOfWeek] = append(byDay[entry.DayOfWeek], entry)
	}
	offset := (int(today.Weekday()) + 6) % 7
	monday := today.AddDate(0, 0, -offset)
	dates := make([]time.Time, 7)
	for i := range dates {
		dates[i] = monday.AddDate(0, 0, i)
	}
	return byDay, dates
}

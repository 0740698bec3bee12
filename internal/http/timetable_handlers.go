package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"schooldesk-backend-go/internal/models"
	"schooldesk-backend-go/internal/services"

	"github.com/go-chi/chi/v5"
)

type TimetableForm struct {
	DayOfWeek int    `validate:"min=0,max=6"`
	Title     string `validate:"required"`
	StartTime string `validate:"required"`
	EndTime   string `validate:"required"`
}

type TimetableEntryDTO struct {
	ID        int64  `json:"id"`
	DayOfWeek int    `json:"dayOfWeek"`
	Title     string `json:"title"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Teacher   string `json:"teacher,omitempty"`
	Location  string `json:"location,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

type TimetableDayDTO struct {
	DayOfWeek int                 `json:"dayOfWeek"`
	Date      string              `json:"date"`
	Entries   []TimetableEntryDTO `json:"entries"`
}

func timetableEntryDTO(entry models.TimetableEntry) TimetableEntryDTO {
	return TimetableEntryDTO{
		ID:        entry.ID,
		DayOfWeek: entry.DayOfWeek,
		Title:     entry.Title,
		StartTime: entry.StartTime,
		EndTime:   entry.EndTime,
		Teacher:   entry.Teacher,
		Location:  entry.Location,
		Notes:     entry.Notes,
	}
}

func (s *Server) AdminTimetable(w http.ResponseWriter, r *http.Request) {
	entries, err := services.ListTimetableForWeek(s.DB)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	items := make([]TimetableEntryDTO, 0, len(entries))
	for _, entry := range entries {
		items = append(items, timetableEntryDTO(entry))
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"page":    "admin_timetable",
		"flash":   PopFlash(w, r),
		"entries": items,
	})
}

func (s *Server) AddTimetableEntry(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		flashAndRedirect(w, r, "Invalid form submission.", "/admin/timetable")
		return
	}
	day, err := strconv.Atoi(r.PostFormValue("day_of_week"))
	if err != nil {
		flashAndRedirect(w, r, "Day of week must be between 0 and 6.", "/admin/timetable")
		return
	}
	form := TimetableForm{
		DayOfWeek: day,
		Title:     r.PostFormValue("title"),
		StartTime: r.PostFormValue("start_time"),
		EndTime:   r.PostFormValue("end_time"),
	}
	if err := s.Validate.Struct(form); err != nil {
		flashAndRedirect(w, r, "Day, title, start time and end time are required.", "/admin/timetable")
		return
	}
	entry := models.TimetableEntry{
		DayOfWeek: form.DayOfWeek,
		Title:     form.Title,
		StartTime: form.StartTime,
		EndTime:   form.EndTime,
		Teacher:   r.PostFormValue("teacher"),
		Location:  r.PostFormValue("location"),
		Notes:     r.PostFormValue("notes"),
	}
	if _, err := services.AddTimetableEntry(s.DB, entry); err != nil {
		flashAndRedirect(w, r, serviceMessage(err), "/admin/timetable")
		return
	}
	flashAndRedirect(w, r, "Timetable entry added.", "/admin/timetable")
}

func (s *Server) DeleteTimetableEntry(w http.ResponseWriter, r *http.Request) {
	entryID, ok := parseID(chi.URLParam(r, "entryID"))
	if ok {
		if err := services.DeleteTimetableEntry(s.DB, entryID); err != nil {
			flashAndRedirect(w, r, serviceMessage(err), "/admin/timetable")
			return
		}
	}
	http.Redirect(w, r, "/admin/timetable", http.StatusFound)
}

// PublicTimetable projects the weekly entries onto the calendar dates of the
// current week for display labeling.
func (s *Server) PublicTimetable(w http.ResponseWriter, r *http.Request) {
	entries, err := services.ListTimetableForWeek(s.DB)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	byDay, dates := services.ProjectWeek(entries, time.Now())
	days := make([]TimetableDayDTO, 0, 7)
	for i := 0; i < 7; i++ {
		dayEntries := make([]TimetableEntryDTO, 0, len(byDay[i]))
		for _, entry := range byDay[i] {
			dayEntries = append(dayEntries, timetableEntryDTO(entry))
		}
		days = append(days, TimetableDayDTO{
			DayOfWeek: i,
			Date:      dates[i].Format("2006-01-02"),
			Entries:   dayEntries,
		})
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"page": "timetable",
		"days": days,
	})
}

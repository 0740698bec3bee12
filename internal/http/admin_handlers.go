package httpapi

import (
	"net/http"
	"time"

	"schooldesk-backend-go/internal/services"

	"github.com/go-chi/chi/v5"
)

type PendingTeacherDTO struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

func (s *Server) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	pending, err := services.ListPendingTeachers(s.DB)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	items := make([]PendingTeacherDTO, 0, len(pending))
	for _, teacher := range pending {
		items = append(items, PendingTeacherDTO{
			ID:        teacher.ID,
			Name:      teacher.Name,
			Email:     teacher.Email,
			CreatedAt: teacher.CreatedAt,
		})
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"page":            "admin",
		"flash":           PopFlash(w, r),
		"pendingTeachers": items,
	})
}

func (s *Server) ApproveTeacher(w http.ResponseWriter, r *http.Request) {
	teacherID, ok := parseID(chi.URLParam(r, "teacherID"))
	if !ok {
		http.Redirect(w, r, "/admin", http.StatusFound)
		return
	}
	if err := services.ApproveTeacher(s.DB, teacherID); err != nil {
		flashAndRedirect(w, r, serviceMessage(err), "/admin")
		return
	}
	http.Redirect(w, r, "/admin", http.StatusFound)
}

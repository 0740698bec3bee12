package httpapi

import (
	"net/http"

	"schooldesk-backend-go/internal/services"

	"github.com/go-chi/chi/v5"
)

func (s *Server) CreateFolder(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		flashAndRedirect(w, r, "Invalid form submission.", "/teacher/files")
		return
	}
	principal := CurrentPrincipal(r)
	var parentID *int64
	if raw := r.PostFormValue("parent_id"); raw != "" {
		if id, ok := parseID(raw); ok {
			parentID = &id
		}
	}
	if _, err := services.CreateFolder(s.DB, principal.TeacherID, r.PostFormValue("name"), parentID); err != nil {
		flashAndRedirect(w, r, serviceMessage(err), "/teacher/files")
		return
	}
	flashAndRedirect(w, r, "Folder created.", "/teacher/files")
}

// RenameFolder keeps the permissive behavior: a rename against someone
// else's folder updates zero rows and still reports success.
func (s *Server) RenameFolder(w http.ResponseWriter, r *http.Request) {
	folderID, ok := parseID(chi.URLParam(r, "folderID"))
	if !ok {
		http.Redirect(w, r, "/teacher/files", http.StatusFound)
		return
	}
	if err := r.ParseForm(); err != nil {
		flashAndRedirect(w, r, "Invalid form submission.", "/teacher/files")
		return
	}
	principal := CurrentPrincipal(r)
	if err := services.RenameFolder(s.DB, principal.TeacherID, folderID, r.PostFormValue("name")); err != nil {
		flashAndRedirect(w, r, serviceMessage(err), "/teacher/files")
		return
	}
	flashAndRedirect(w, r, "Folder renamed.", "/teacher/files")
}

func (s *Server) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	folderID, ok := parseID(chi.URLParam(r, "folderID"))
	if !ok {
		http.Redirect(w, r, "/teacher/files", http.StatusFound)
		return
	}
	principal := CurrentPrincipal(r)
	if err := services.DeleteFolder(s.DB, principal.TeacherID, folderID); err != nil {
		flashAndRedirect(w, r, serviceMessage(err), "/teacher/files")
		return
	}
	flashAndRedirect(w, r, "Folder deleted.", "/teacher/files")
}

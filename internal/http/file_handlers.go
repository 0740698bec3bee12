package httpapi

import (
	"io"
	"net/http"
	"path"
	"time"

	"schooldesk-backend-go/internal/services"

	"github.com/go-chi/chi/v5"
)

const maxUploadBytes = 32 << 20

type PublicFileDTO struct {
	ID          int64     `json:"id"`
	FileName    string    `json:"fileName"`
	Subject     string    `json:"subject"`
	TeacherName string    `json:"teacherName"`
	FolderName  *string   `json:"folderName,omitempty"`
	DownloadURL string    `json:"downloadUrl"`
	UploadDate  time.Time `json:"uploadDate"`
}

type FolderDTO struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	ParentID *int64 `json:"parentId,omitempty"`
}

type OwnFileDTO struct {
	ID          int64     `json:"id"`
	FileName    string    `json:"fileName"`
	Subject     string    `json:"subject"`
	FolderID    *int64    `json:"folderId,omitempty"`
	DownloadURL string    `json:"downloadUrl"`
	UploadDate  time.Time `json:"uploadDate"`
}

// Index is the public home listing: every file, newest first, with resolved
// teacher and folder names.
func (s *Server) Index(w http.ResponseWriter, r *http.Request) {
	files, err := s.Files.ListPublic()
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	items := make([]PublicFileDTO, 0, len(files))
	for _, file := range files {
		items = append(items, PublicFileDTO{
			ID:          file.ID,
			FileName:    file.FileName,
			Subject:     file.Subject,
			TeacherName: file.TeacherName,
			FolderName:  file.FolderName,
			DownloadURL: "/uploads/" + file.FilePath,
			UploadDate:  file.UploadDate,
		})
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"page":  "index",
		"flash": PopFlash(w, r),
		"files": items,
	})
}

func (s *Server) TeacherFiles(w http.ResponseWriter, r *http.Request) {
	principal := CurrentPrincipal(r)
	folders, err := services.ListFoldersForOwner(s.DB, principal.TeacherID)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	files, err := s.Files.ListForOwner(principal.TeacherID)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	folderItems := make([]FolderDTO, 0, len(folders))
	for _, folder := range folders {
		folderItems = append(folderItems, FolderDTO{ID: folder.ID, Name: folder.Name, ParentID: folder.ParentID})
	}
	fileItems := make([]OwnFileDTO, 0, len(files))
	for _, file := range files {
		fileItems = append(fileItems, OwnFileDTO{
			ID:          file.ID,
			FileName:    file.FileName,
			Subject:     file.Subject,
			FolderID:    file.FolderID,
			DownloadURL: "/uploads/" + file.FilePath,
			UploadDate:  file.UploadDate,
		})
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"page":    "teacher_files",
		"flash":   PopFlash(w, r),
		"teacher": principal.TeacherName,
		"folders": folderItems,
		"files":   fileItems,
	})
}

func (s *Server) UploadPage(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"page":              "upload",
		"flash":             PopFlash(w, r),
		"allowedExtensions": s.Config.AllowedExtensions,
	})
}

func (s *Server) UploadFile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		flashAndRedirect(w, r, "Invalid file upload form.", "/upload")
		return
	}
	principal := CurrentPrincipal(r)
	subject := r.PostFormValue("subject")
	if subject == "" {
		flashAndRedirect(w, r, "Subject is required.", "/upload")
		return
	}
	var folderID *int64
	if raw := r.PostFormValue("folder_id"); raw != "" {
		if id, ok := parseID(raw); ok {
			folderID = &id
		}
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		flashAndRedirect(w, r, "A file is required.", "/upload")
		return
	}
	defer file.Close()

	_, degraded, err := s.Files.Upload(r.Context(), principal.TeacherID, subject, folderID, header.Filename, file)
	if err != nil {
		flashAndRedirect(w, r, serviceMessage(err), "/upload")
		return
	}
	if degraded {
		flashAndRedirect(w, r, "File uploaded (remote storage unavailable, kept a local copy).", "/upload")
		return
	}
	flashAndRedirect(w, r, "File uploaded successfully!", "/upload")
}

// DeleteFile surfaces a flash on an ownership mismatch, unlike the folder
// routes which stay silent.
func (s *Server) DeleteFile(w http.ResponseWriter, r *http.Request) {
	fileID, ok := parseID(chi.URLParam(r, "fileID"))
	if !ok {
		http.Redirect(w, r, "/teacher/files", http.StatusFound)
		return
	}
	principal := CurrentPrincipal(r)
	if err := s.Files.Delete(r.Context(), principal.TeacherID, fileID); err != nil {
		flashAndRedirect(w, r, serviceMessage(err), "/teacher/files")
		return
	}
	flashAndRedirect(w, r, "File deleted.", "/teacher/files")
}

func (s *Server) Download(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "*")
	if key == "" {
		WriteError(w, http.StatusNotFound, "File not found")
		return
	}
	body, err := s.Files.Open(r.Context(), key)
	if err != nil {
		WriteError(w, http.StatusNotFound, "File not found")
		return
	}
	defer body.Close()
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", `attachment; filename="`+path.Base(key)+`"`)
	_, _ = io.Copy(w, body)
}

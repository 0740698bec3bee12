package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"schooldesk-backend-go/internal/models"
	"schooldesk-backend-go/internal/storage"
)

// FileService owns upload metadata and the byte stores behind it. Remote is
// nil when no object-store endpoint is configured; Local always exists and
// doubles as the fallback copy when the remote write fails.
type FileService struct {
	DB                *sqlx.DB
	Remote            storage.Store
	Local             storage.Store
	AllowedExtensions []string
}

// PublicFile is a file row joined with its uploader and folder names for the
// public listing.
type PublicFile struct {
	ID          int64     `db:"id"`
	FileName    string    `db:"file_name"`
	FilePath    string    `db:"file_path"`
	Subject     string    `db:"subject"`
	UploadDate  time.Time `db:"upload_date"`
	TeacherName string    `db:"teacher_name"`
	FolderName  *string   `db:"folder_name"`
}

// AllowedFile matches the substring after the last period, case-insensitively.
// A filename without a period is rejected.
func (s FileService) AllowedFile(filename string) bool {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 {
		return false
	}
	ext := strings.ToLower(filename[idx+1:])
	for _, allowed := range s.AllowedExtensions {
		if ext == strings.ToLower(allowed) {
			return true
		}
	}
	return false
}

// SanitizeFilename strips path separators and anything outside
// [A-Za-z0-9._-], so the display name is safe to embed in a storage key.
func SanitizeFilename(name string) string {
	if idx := strings.LastIndexAny(name, `/\`); idx >= 0 {
		name = name[idx+1:]
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '_' || r == '-':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	cleaned := strings.TrimLeft(b.String(), ".")
	if cleaned == "" {
		return "file"
	}
	return cleaned
}

// StorageKey namespaces the object by teacher id and a timestamp prefix so
// identically named uploads never collide.
func StorageKey(teacherID int64, now time.Time, sanitized string) string {
	return fmt.Sprintf("%d/%d_%s", teacherID, now.Unix(), sanitized)
}

// Upload validates the filename, writes the bytes, and persists the metadata
// row. A remote write failure downgrades to a local-fallback success; the
// returned degraded flag tells the caller to show the degraded message. Only
// a failure of the last usable store aborts the upload.
func (s FileService) Upload(ctx context.Context, teacherID int64, subject string, folderID *int64, filename string, body io.Reader) (int64, bool, error) {
	if strings.TrimSpace(filename) == "" {
		return 0, false, ErrBadRequest("A file is required.")
	}
	if !s.AllowedFile(filename) {
		return 0, false, ErrBadRequest("File type not allowed.")
	}
	raw, err := io.ReadAll(body)
	if err != nil {
		return 0, false, err
	}
	now := time.Now().UTC()
	key := StorageKey(teacherID, now, SanitizeFilename(filename))

	degraded := false
	if s.Remote != nil {
		if err := s.Remote.Put(ctx, key, bytes.NewReader(raw)); err != nil {
			log.Printf("remote put %s: %v, falling back to local copy", key, err)
			degraded = true
		}
	}
	if s.Remote == nil || degraded {
		if err := s.Local.Put(ctx, key, bytes.NewReader(raw)); err != nil {
			return 0, false, WrapError(err, "store upload")
		}
	}

	var fileID int64
	err = s.DB.Get(&fileID, `
INSERT INTO files (file_name, file_path, uploader_id, folder_id, subject, upload_date)
VALUES ($1,$2,$3,$4,$5,$6)
RETURNING id
`, SanitizeFilename(filename), key, teacherID, folderID, strings.TrimSpace(subject), now)
	if err != nil {
		return 0, false, err
	}
	return fileID, degraded, nil
}

// Delete removes the metadata row only when both the id and the uploader
// match. Byte removal from both stores is best effort; failures are logged
// and swallowed.
func (s FileService) Delete(ctx context.Context, teacherID, fileID int64) error {
	var key string
	err := s.DB.Get(&key, `SELECT file_path FROM files WHERE id = $1 AND uploader_id = $2`, fileID, teacherID)
	if err != nil {
		return ErrNotFound("File not found.")
	}
	if _, err := s.DB.Exec(`DELETE FROM files WHERE id = $1 AND uploader_id = $2`, fileID, teacherID); err != nil {
		return err
	}
	if s.Remote != nil {
		if err := s.Remote.Remove(ctx, key); err != nil {
			log.Printf("remote remove %s: %v", key, err)
		}
	}
	if err := s.Local.Remove(ctx, key); err != nil {
		log.Printf("local remove %s: %v", key, err)
	}
	return nil
}

// Open streams the bytes under the key, preferring the remote copy and
// falling back to the local one.
func (s FileService) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	if s.Remote != nil {
		body, err := s.Remote.Get(ctx, key)
		if err == nil {
			return body, nil
		}
	}
	body, err := s.Local.Get(ctx, key)
	if err == storage.ErrNotFound {
		return nil, ErrNotFound("File not found.")
	}
	return body, err
}

func (s FileService) ListForOwner(teacherID int64) ([]models.File, error) {
	rows := []models.File{}
	err := s.DB.Select(&rows, `
SELECT id, file_name, file_path, uploader_id, folder_id, subject, upload_date
FROM files
WHERE uploader_id = $1
ORDER BY upload_date DESC
`, teacherID)
	return rows, err
}

func (s FileService) ListPublic() ([]PublicFile, error) {
	rows := []PublicFile{}
	err := s.DB.Select(&rows, `
SELECT f.id, f.file_name, f.file_path, f.subject, f.upload_date,
       t.name AS teacher_name, fo.name AS folder_name
FROM files f
JOIN teachers t ON t.id = f.uploader_id
LEFT JOIN folders fo ON fo.id = f.folder_id
ORDER BY f.upload_date DESC
`)
	return rows, err
}

package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"schooldesk-backend-go/internal/storage"
)

var testExtensions = []string{"pdf", "docx", "pptx", "txt", "xlsx", "zip", "png", "jpg"}

func newFileService(t *testing.T, remote storage.Store) FileService {
	t.Helper()
	db := newTestDB(t)
	mustRegisterApproved(t, db, "Alice", "a@x.com")
	local, err := storage.NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return FileService{
		DB:                db,
		Remote:            remote,
		Local:             local,
		AllowedExtensions: testExtensions,
	}
}

func TestAllowedFile(t *testing.T) {
	svc := FileService{AllowedExtensions: testExtensions}
	cases := []struct {
		name    string
		allowed bool
	}{
		{"notes.pdf", true},
		{"notes.PDF", true},
		{"slides.pptx", true},
		{"archive.tar.zip", true},
		{"notes.exe", false},
		{"noextension", false},
		{"trailingdot.", false},
	}
	for _, tc := range cases {
		if got := svc.AllowedFile(tc.name); got != tc.allowed {
			t.Errorf("AllowedFile(%q) = %v, want %v", tc.name, got, tc.allowed)
		}
	}
}

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"notes.pdf":              "notes.pdf",
		"../../etc/passwd":       "passwd",
		`..\..\evil.txt`:         "evil.txt",
		"my report (final).docx": "my_report_final.docx",
		"......":                 "file",
		".hidden":                "hidden",
	}
	for in, want := range cases {
		if got := SanitizeFilename(in); got != want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestStorageKeyNamespacesByTeacherAndTime(t *testing.T) {
	now := time.Unix(1700000000, 0)
	key := StorageKey(7, now, "notes.pdf")
	if key != "7/1700000000_notes.pdf" {
		t.Fatalf("key = %q", key)
	}
}

func TestUploadRejectsDisallowedExtension(t *testing.T) {
	svc := newFileService(t, nil)

	_, _, err := svc.Upload(context.Background(), 1, "Math", nil, "notes.exe", strings.NewReader("x"))
	serr, ok := err.(ServiceError)
	if !ok || serr.Status != 400 {
		t.Fatalf("expected validation error, got %v", err)
	}
	var count int
	if err := svc.DB.Get(&count, `SELECT count(*) FROM files`); err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Fatal("rejected upload left a metadata row")
	}
}

func TestUploadListDeleteRoundTrip(t *testing.T) {
	svc := newFileService(t, nil)
	ctx := context.Background()

	fileID, degraded, err := svc.Upload(ctx, 1, "Math", nil, "notes.PDF", strings.NewReader("lecture notes"))
	if err != nil {
		t.Fatal(err)
	}
	if degraded {
		t.Fatal("local-only upload reported degraded")
	}

	files, err := svc.ListForOwner(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || files[0].ID != fileID || files[0].UploaderID != 1 {
		t.Fatalf("unexpected listing %+v", files)
	}

	body, err := svc.Open(ctx, files[0].FilePath)
	if err != nil {
		t.Fatal(err)
	}
	data, _ := io.ReadAll(body)
	_ = body.Close()
	if string(data) != "lecture notes" {
		t.Fatalf("bytes = %q", data)
	}

	key := files[0].FilePath
	if err := svc.Delete(ctx, 1, fileID); err != nil {
		t.Fatal(err)
	}
	files, err = svc.ListForOwner(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 0 {
		t.Fatal("file still listed after delete")
	}
	if _, err := svc.Local.Get(ctx, key); err != storage.ErrNotFound {
		t.Fatalf("expected local bytes gone, got %v", err)
	}
}

func TestDeleteScopedByUploader(t *testing.T) {
	svc := newFileService(t, nil)
	mustRegisterApproved(t, svc.DB, "Bob", "b@x.com")
	ctx := context.Background()

	fileID, _, err := svc.Upload(ctx, 1, "Math", nil, "notes.txt", strings.NewReader("x"))
	if err != nil {
		t.Fatal(err)
	}
	err = svc.Delete(ctx, 2, fileID)
	serr, ok := err.(ServiceError)
	if !ok || serr.Status != 404 {
		t.Fatalf("expected not-found for foreign delete, got %v", err)
	}
	var count int
	if err := svc.DB.Get(&count, `SELECT count(*) FROM files`); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Fatal("foreign delete removed the row")
	}
}

// failingStore always errors, standing in for an unreachable object store.
type failingStore struct{}

func (failingStore) Put(ctx context.Context, key string, body io.Reader) error {
	return errors.New("endpoint unreachable")
}

func (failingStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	return nil, errors.New("endpoint unreachable")
}

func (failingStore) Remove(ctx context.Context, key string) error {
	return errors.New("endpoint unreachable")
}

func TestUploadFallsBackToLocalWhenRemoteFails(t *testing.T) {
	svc := newFileService(t, failingStore{})
	ctx := context.Background()

	fileID, degraded, err := svc.Upload(ctx, 1, "Math", nil, "notes.pdf", strings.NewReader("payload"))
	if err != nil {
		t.Fatalf("remote failure aborted the upload: %v", err)
	}
	if !degraded {
		t.Fatal("fallback upload not reported as degraded")
	}

	var key string
	if err := svc.DB.Get(&key, `SELECT file_path FROM files WHERE id = $1`, fileID); err != nil {
		t.Fatal(err)
	}
	body, err := svc.Open(ctx, key)
	if err != nil {
		t.Fatalf("local fallback copy missing: %v", err)
	}
	data, _ := io.ReadAll(body)
	_ = body.Close()
	if string(data) != "payload" {
		t.Fatalf("bytes = %q", data)
	}

	// delete swallows the remote removal failure
	if err := svc.Delete(ctx, 1, fileID); err != nil {
		t.Fatalf("delete surfaced storage error: %v", err)
	}
}

func TestListPublicResolvesNames(t *testing.T) {
	svc := newFileService(t, nil)
	ctx := context.Background()

	folderID, err := CreateFolder(svc.DB, 1, "Homework", nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := svc.Upload(ctx, 1, "Math", &folderID, "a.txt", strings.NewReader("a")); err != nil {
		t.Fatal(err)
	}
	if _, _, err := svc.Upload(ctx, 1, "Physics", nil, "b.txt", strings.NewReader("b")); err != nil {
		t.Fatal(err)
	}

	files, err := svc.ListPublic()
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 public files, got %d", len(files))
	}
	for _, file := range files {
		if file.TeacherName != "Alice" {
			t.Fatalf("teacher name not resolved: %+v", file)
		}
	}
	var withFolder int
	for _, file := range files {
		if file.FolderName != nil && *file.FolderName == "Homework" {
			withFolder++
		}
	}
	if withFolder != 1 {
		t.Fatalf("folder name resolution wrong, got %d with folder", withFolder)
	}
}

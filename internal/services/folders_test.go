package services

import (
	"testing"
	"time"
)

func TestCreateAndListFolders(t *testing.T) {
	db := newTestDB(t)
	mustRegisterApproved(t, db, "Alice", "a@x.com")

	id, err := CreateFolder(db, 1, "Homework", nil)
	if err != nil {
		t.Fatal(err)
	}
	child, err := CreateFolder(db, 1, "Week 1", &id)
	if err != nil {
		t.Fatal(err)
	}

	folders, err := ListFoldersForOwner(db, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(folders) != 2 {
		t.Fatalf("expected 2 folders, got %d", len(folders))
	}
	if folders[1].ID != child || folders[1].ParentID == nil || *folders[1].ParentID != id {
		t.Fatalf("child folder not nested: %+v", folders[1])
	}
}

func TestCreateFolderRequiresName(t *testing.T) {
	db := newTestDB(t)
	mustRegisterApproved(t, db, "Alice", "a@x.com")

	if _, err := CreateFolder(db, 1, "   ", nil); err == nil {
		t.Fatal("blank name accepted")
	}
}

func TestRenameFolderScopedByOwnerIsSilent(t *testing.T) {
	db := newTestDB(t)
	mustRegisterApproved(t, db, "Alice", "a@x.com")
	mustRegisterApproved(t, db, "Bob", "b@x.com")

	id, err := CreateFolder(db, 1, "Homework", nil)
	if err != nil {
		t.Fatal(err)
	}

	// wrong owner matches zero rows and still reports success
	if err := RenameFolder(db, 2, id, "Stolen"); err != nil {
		t.Fatalf("cross-owner rename surfaced an error: %v", err)
	}
	var name string
	if err := db.Get(&name, `SELECT name FROM folders WHERE id = $1`, id); err != nil {
		t.Fatal(err)
	}
	if name != "Homework" {
		t.Fatalf("cross-owner rename changed the row: %q", name)
	}

	if err := RenameFolder(db, 1, id, "Assignments"); err != nil {
		t.Fatal(err)
	}
	if err := db.Get(&name, `SELECT name FROM folders WHERE id = $1`, id); err != nil {
		t.Fatal(err)
	}
	if name != "Assignments" {
		t.Fatalf("owner rename did not apply: %q", name)
	}
}

func TestDeleteFolderRejectedWhileNotEmpty(t *testing.T) {
	db := newTestDB(t)
	mustRegisterApproved(t, db, "Alice", "a@x.com")

	folderID, err := CreateFolder(db, 1, "Homework", nil)
	if err != nil {
		t.Fatal(err)
	}
	var fileID int64
	err = db.Get(&fileID, `
INSERT INTO files (file_name, file_path, uploader_id, folder_id, subject, upload_date)
VALUES ('notes.txt', '1/1_notes.txt', 1, $1, 'Math', $2)
RETURNING id
`, folderID, time.Now().UTC())
	if err != nil {
		t.Fatal(err)
	}

	err = DeleteFolder(db, 1, folderID)
	serr, ok := err.(ServiceError)
	if !ok || serr.Status != 409 {
		t.Fatalf("expected conflict for non-empty folder, got %v", err)
	}

	if _, err := db.Exec(`DELETE FROM files WHERE id = $1`, fileID); err != nil {
		t.Fatal(err)
	}
	if err := DeleteFolder(db, 1, folderID); err != nil {
		t.Fatalf("delete after emptying failed: %v", err)
	}

	var count int
	if err := db.Get(&count, `SELECT count(*) FROM folders`); err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Fatalf("folder still present")
	}
}

package services

import (
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"schooldesk-backend-go/internal/models"
)

// CreateFolder always succeeds for a valid name. There is no uniqueness
// constraint within a parent, and parent_id is stored unchecked.
func CreateFolder(db *sqlx.DB, ownerID int64, name string, parentID *int64) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, ErrBadRequest("Folder name is required.")
	}
	var id int64
	err := db.Get(&id, `
INSERT INTO folders (name, parent_id, owner_id, created_at)
VALUES ($1,$2,$3,$4)
RETURNING id
`, name, parentID, ownerID, time.Now().UTC())
	return id, err
}

// RenameFolder scopes the update by folder id and owner. A folder belonging
// to another teacher matches zero rows, which is treated as success.
func RenameFolder(db *sqlx.DB, ownerID, folderID int64, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return ErrBadRequest("Folder name is required.")
	}
	_, err := db.Exec(`UPDATE folders SET name = $1 WHERE id = $2 AND owner_id = $3`, newName, folderID, ownerID)
	return err
}

// DeleteFolder rejects the delete while any file still references the folder,
// regardless of who uploaded it. The delete itself is scoped by owner with
// the same silent zero-row behavior as RenameFolder.
func DeleteFolder(db *sqlx.DB, ownerID, folderID int64) error {
	var inUse int
	if err := db.Get(&inUse, `SELECT count(*) FROM files WHERE folder_id = $1`, folderID); err != nil {
		return err
	}
	if inUse > 0 {
		return ErrConflict("Folder is not empty.")
	}
	_, err := db.Exec(`DELETE FROM folders WHERE id = $1 AND owner_id = $2`, folderID, ownerID)
	return err
}

func ListFoldersForOwner(db *sqlx.DB, ownerID int64) ([]models.Folder, error) {
	rows := []models.Folder{}
	err := db.Select(&rows, `
SELECT id, name, parent_id, owner_id, created_at
FROM folders
WHERE owner_id = $1
ORDER BY created_at
`, ownerID)
	return rows, err
}

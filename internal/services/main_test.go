package services

import (
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"schooldesk-backend-go/internal/migrations"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	if _, err := db.Exec(`PRAGMA foreign_keys = ON`); err != nil {
		t.Fatalf("pragma: %v", err)
	}
	if err := migrations.Apply(db, "sqlite"); err != nil {
		t.Fatalf("migrations: %v", err)
	}
	return db
}

// mustRegisterApproved registers and approves a teacher; ids are assigned in
// registration order starting at 1.
func mustRegisterApproved(t *testing.T, db *sqlx.DB, name, email string) {
	t.Helper()
	if err := RegisterTeacher(db, name, email, "pw"); err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	var id int64
	if err := db.Get(&id, `SELECT id FROM teachers WHERE email = $1`, email); err != nil {
		t.Fatalf("lookup %s: %v", email, err)
	}
	if err := ApproveTeacher(db, id); err != nil {
		t.Fatalf("approve %s: %v", email, err)
	}
}

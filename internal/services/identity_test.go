package services

import (
	"testing"

	"schooldesk-backend-go/internal/models"
)

func TestRegisterTeacherDuplicateEmail(t *testing.T) {
	db := newTestDB(t)

	if err := RegisterTeacher(db, "Alice", "a@x.com", "pw"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	err := RegisterTeacher(db, "Other Alice", "a@x.com", "pw2")
	serr, ok := err.(ServiceError)
	if !ok || serr.Status != 409 {
		t.Fatalf("expected conflict on duplicate email, got %v", err)
	}

	var count int
	if err := db.Get(&count, `SELECT count(*) FROM teachers`); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one row, got %d", count)
	}
}

func TestPendingTeacherCannotAuthenticate(t *testing.T) {
	db := newTestDB(t)

	if err := RegisterTeacher(db, "Alice", "a@x.com", "pw"); err != nil {
		t.Fatal(err)
	}
	if _, err := AuthenticateTeacher(db, "a@x.com", "pw"); err == nil {
		t.Fatal("pending teacher authenticated")
	}

	if err := ApproveTeacher(db, 1); err != nil {
		t.Fatal(err)
	}
	teacher, err := AuthenticateTeacher(db, "a@x.com", "pw")
	if err != nil {
		t.Fatalf("approved teacher rejected: %v", err)
	}
	if teacher.ID != 1 || teacher.Name != "Alice" {
		t.Fatalf("unexpected teacher %+v", teacher)
	}
}

func TestAuthenticateTeacherWrongPassword(t *testing.T) {
	db := newTestDB(t)

	if err := RegisterTeacher(db, "Alice", "a@x.com", "pw"); err != nil {
		t.Fatal(err)
	}
	if err := ApproveTeacher(db, 1); err != nil {
		t.Fatal(err)
	}
	if _, err := AuthenticateTeacher(db, "a@x.com", "nope"); err == nil {
		t.Fatal("wrong password accepted")
	}
}

func TestApproveTeacherIdempotent(t *testing.T) {
	db := newTestDB(t)

	if err := RegisterTeacher(db, "Alice", "a@x.com", "pw"); err != nil {
		t.Fatal(err)
	}
	if err := ApproveTeacher(db, 1); err != nil {
		t.Fatal(err)
	}
	if err := ApproveTeacher(db, 1); err != nil {
		t.Fatalf("second approve errored: %v", err)
	}
	if err := ApproveTeacher(db, 999); err != nil {
		t.Fatalf("approve of missing id errored: %v", err)
	}

	var status string
	if err := db.Get(&status, `SELECT status FROM teachers WHERE id = 1`); err != nil {
		t.Fatal(err)
	}
	if status != models.TeacherStatusApproved {
		t.Fatalf("status = %q", status)
	}
}

func TestListPendingTeachers(t *testing.T) {
	db := newTestDB(t)

	if err := RegisterTeacher(db, "Alice", "a@x.com", "pw"); err != nil {
		t.Fatal(err)
	}
	if err := RegisterTeacher(db, "Bob", "b@x.com", "pw"); err != nil {
		t.Fatal(err)
	}
	if err := ApproveTeacher(db, 1); err != nil {
		t.Fatal(err)
	}

	pending, err := ListPendingTeachers(db)
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 1 || pending[0].Email != "b@x.com" {
		t.Fatalf("unexpected pending list %+v", pending)
	}
}

func TestEnsureAdminAccount(t *testing.T) {
	db := newTestDB(t)

	if err := EnsureAdminAccount(db, "admin", "admin123"); err != nil {
		t.Fatal(err)
	}
	if err := EnsureAdminAccount(db, "admin", "other"); err != nil {
		t.Fatalf("second seed errored: %v", err)
	}

	// the original credential wins; reseeding never rotates the password
	if _, err := AuthenticateAdmin(db, "admin", "admin123"); err != nil {
		t.Fatalf("admin login failed: %v", err)
	}
	if _, err := AuthenticateAdmin(db, "admin", "other"); err == nil {
		t.Fatal("reseeded password accepted")
	}
}

package services

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"schooldesk-backend-go/internal/models"
)

// RegisterTeacher inserts a pending teacher. Email uniqueness is enforced by
// the database constraint so concurrent registrations cannot both succeed.
func RegisterTeacher(db *sqlx.DB, name, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	name = strings.TrimSpace(name)
	if name == "" || email == "" || strings.TrimSpace(password) == "" {
		return ErrBadRequest("Name, email and password are required.")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = db.Exec(`
INSERT INTO teachers (name, email, password_hash, status, created_at)
VALUES ($1,$2,$3,$4,$5)
`, name, email, string(hash), models.TeacherStatusPending, time.Now().UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return ErrConflict("Email already registered!")
		}
		return err
	}
	return nil
}

func AuthenticateAdmin(db *sqlx.DB, username, password string) (models.Admin, error) {
	row := models.Admin{}
	err := db.Get(&row, `SELECT id, username, password_hash FROM admins WHERE username = $1`, strings.TrimSpace(username))
	if err != nil {
		return models.Admin{}, ErrUnauthorized("Invalid credentials or not approved yet.")
	}
	if bcrypt.CompareHashAndPassword([]byte(row.PasswordHash), []byte(password)) != nil {
		return models.Admin{}, ErrUnauthorized("Invalid credentials or not approved yet.")
	}
	return row, nil
}

// AuthenticateTeacher requires matching credentials and an approved account;
// pending teachers are rejected even with the right password.
func AuthenticateTeacher(db *sqlx.DB, email, password string) (models.Teacher, error) {
	row := models.Teacher{}
	err := db.Get(&row, `
SELECT id, name, email, password_hash, status, created_at
FROM teachers
WHERE lower(email) = $1
`, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return models.Teacher{}, ErrUnauthorized("Invalid credentials or not approved yet.")
	}
	if bcrypt.CompareHashAndPassword([]byte(row.PasswordHash), []byte(password)) != nil {
		return models.Teacher{}, ErrUnauthorized("Invalid credentials or not approved yet.")
	}
	if row.Status != models.TeacherStatusApproved {
		return models.Teacher{}, ErrUnauthorized("Invalid credentials or not approved yet.")
	}
	return row, nil
}

func ListPendingTeachers(db *sqlx.DB) ([]models.Teacher, error) {
	rows := []models.Teacher{}
	err := db.Select(&rows, `
SELECT id, name, email, password_hash, status, created_at
FROM teachers
WHERE status = $1
ORDER BY created_at
`, models.TeacherStatusPending)
	return rows, err
}

// ApproveTeacher is idempotent: approving an already-approved or missing id
// matches zero rows and is not an error.
func ApproveTeacher(db *sqlx.DB, teacherID int64) error {
	_, err := db.Exec(`UPDATE teachers SET status = $1 WHERE id = $2`, models.TeacherStatusApproved, teacherID)
	return err
}

// EnsureAdminAccount seeds the default admin credential once at startup.
func EnsureAdminAccount(db *sqlx.DB, username, password string) error {
	var exists bool
	if err := db.Get(&exists, `SELECT EXISTS(SELECT 1 FROM admins WHERE username = $1)`, username); err != nil {
		return err
	}
	if exists {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = db.Exec(`INSERT INTO admins (username, password_hash) VALUES ($1,$2)`, username, string(hash))
	if err != nil && isUniqueViolation(err) {
		return nil
	}
	return err
}

func isUniqueViolation(err error) bool {
	if err == nil || errors.Is(err, sql.ErrNoRows) {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "constraint failed")
}

package migrations

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

type migration struct {
	Name string
	SQL  map[string]string
}

// Apply runs the embedded migrations that have not been recorded yet. The
// statements are kept per driver because the two engines disagree on
// autoincrement and timestamp syntax.
func Apply(db *sqlx.DB, driver string) error {
	if err := ensureTable(db); err != nil {
		return err
	}
	applied, err := appliedMigrations(db)
	if err != nil {
		return err
	}
	for _, mig := range schema {
		if applied[mig.Name] {
			continue
		}
		stmt, ok := mig.SQL[driver]
		if !ok {
			return fmt.Errorf("migration %s has no variant for driver %q", mig.Name, driver)
		}
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("apply %s: %w", mig.Name, err)
		}
		if _, err := db.Exec(`INSERT INTO schema_migrations (name) VALUES ($1)`, mig.Name); err != nil {
			return err
		}
	}
	return nil
}

func ensureTable(db *sqlx.DB) error {
	_, err := db.Exec(`
CREATE TABLE IF NOT EXISTS schema_migrations (
  name TEXT PRIMARY KEY,
  applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`)
	return err
}

func appliedMigrations(db *sqlx.DB) (map[string]bool, error) {
	names := []string{}
	if err := db.Select(&names, `SELECT name FROM schema_migrations`); err != nil {
		return nil, err
	}
	applied := make(map[string]bool, len(names))
	for _, name := range names {
		applied[name] = true
	}
	return applied, nil
}

var schema = []migration{
	{
		Name: "001_create_teachers",
		SQL: map[string]string{
			"postgres": `
CREATE TABLE teachers (
  id BIGSERIAL PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
			"sqlite": `
CREATE TABLE teachers (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`,
		},
	},
	{
		Name: "002_create_admins",
		SQL: map[string]string{
			"postgres": `
CREATE TABLE admins (
  id BIGSERIAL PRIMARY KEY,
  username TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL
)`,
			"sqlite": `
CREATE TABLE admins (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  username TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL
)`,
		},
	},
	{
		Name: "003_create_folders",
		SQL: map[string]string{
			"postgres": `
CREATE TABLE folders (
  id BIGSERIAL PRIMARY KEY,
  name TEXT NOT NULL,
  parent_id BIGINT NULL REFERENCES folders(id),
  owner_id BIGINT NOT NULL REFERENCES teachers(id),
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
			"sqlite": `
CREATE TABLE folders (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  parent_id INTEGER NULL REFERENCES folders(id),
  owner_id INTEGER NOT NULL REFERENCES teachers(id),
  created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`,
		},
	},
	{
		Name: "004_create_files",
		SQL: map[string]string{
			"postgres": `
CREATE TABLE files (
  id BIGSERIAL PRIMARY KEY,
  file_name TEXT NOT NULL,
  file_path TEXT NOT NULL,
  uploader_id BIGINT NOT NULL REFERENCES teachers(id),
  folder_id BIGINT NULL REFERENCES folders(id),
  subject TEXT NOT NULL DEFAULT '',
  upload_date TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
			"sqlite": `
CREATE TABLE files (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  file_name TEXT NOT NULL,
  file_path TEXT NOT NULL,
  uploader_id INTEGER NOT NULL REFERENCES teachers(id),
  folder_id INTEGER NULL REFERENCES folders(id),
  subject TEXT NOT NULL DEFAULT '',
  upload_date TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`,
		},
	},
	{
		Name: "005_create_timetable_entries",
		SQL: map[string]string{
			"postgres": `
CREATE TABLE timetable_entries (
  id BIGSERIAL PRIMARY KEY,
  day_of_week INT NOT NULL,
  title TEXT NOT NULL,
  start_time TEXT NOT NULL,
  end_time TEXT NOT NULL,
  teacher TEXT NOT NULL DEFAULT '',
  location TEXT NOT NULL DEFAULT '',
  notes TEXT NOT NULL DEFAULT ''
)`,
			"sqlite": `
CREATE TABLE timetable_entries (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  day_of_week INTEGER NOT NULL,
  title TEXT NOT NULL,
  start_time TEXT NOT NULL,
  end_time TEXT NOT NULL,
  teacher TEXT NOT NULL DEFAULT '',
  location TEXT NOT NULL DEFAULT '',
  notes TEXT NOT NULL DEFAULT ''
)`,
		},
	},
	{
		Name: "006_create_storage_metric_samples",
		SQL: map[string]string{
			"postgres": `
CREATE TABLE storage_metric_samples (
  id TEXT PRIMARY KEY,
  captured_at TIMESTAMPTZ NOT NULL,
  disk_total_bytes BIGINT NOT NULL,
  disk_used_bytes BIGINT NOT NULL,
  teacher_count BIGINT NOT NULL,
  file_count BIGINT NOT NULL
)`,
			"sqlite": `
CREATE TABLE storage_metric_samples (
  id TEXT PRIMARY KEY,
  captured_at TIMESTAMP NOT NULL,
  disk_total_bytes INTEGER NOT NULL,
  disk_used_bytes INTEGER NOT NULL,
  teacher_count INTEGER NOT NULL,
  file_count INTEGER NOT NULL
)`,
		},
	},
}

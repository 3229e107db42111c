// Package sqlite is the relational storage backend. It implements the
// storage interfaces on top of database/sql and mattn/go-sqlite3.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/manav03panchal/smarttask/internal/storage"
)

// FileName is the database file created inside the data directory.
const FileName = "smarttask.db"

// timeLayout is how timestamps are stored in TEXT columns.
const timeLayout = time.RFC3339

const schema = `
CREATE TABLE IF NOT EXISTS categories (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	name        TEXT NOT NULL UNIQUE COLLATE NOCASE,
	description TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS tasks (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	title       TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	due_date    TEXT,
	status      TEXT NOT NULL DEFAULT 'pending'
	            CHECK (status IN ('pending', 'completed', 'overdue')),
	priority    TEXT NOT NULL DEFAULT 'medium'
	            CHECK (priority IN ('low', 'medium', 'high')),
	category_id INTEGER REFERENCES categories(id),
	created_at  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS tags (
	id    INTEGER PRIMARY KEY AUTOINCREMENT,
	name  TEXT NOT NULL UNIQUE COLLATE NOCASE,
	color TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS task_tags (
	task_id INTEGER NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
	tag_id  INTEGER NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
	PRIMARY KEY (task_id, tag_id)
);

CREATE TABLE IF NOT EXISTS activity (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	kind       TEXT NOT NULL,
	task_id    INTEGER,
	task_title TEXT NOT NULL DEFAULT '',
	details    TEXT NOT NULL DEFAULT '',
	at         TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_tasks_status_priority ON tasks(status, priority);
CREATE INDEX IF NOT EXISTS idx_tasks_category ON tasks(category_id);
`

// Store is an open SQLite database.
type Store struct {
	db   *sql.DB
	path string
}

// DefaultPath returns the database file inside the application data dir.
func DefaultPath() string {
	return filepath.Join(storage.DataDir(), FileName)
}

// Open opens or creates the database at path. An empty path or ":memory:"
// opens a private in-memory database.
func Open(path string) (*Store, error) {
	dsn := path
	if path == "" || path == ":memory:" {
		path = ""
		dsn = ":memory:"
	} else if err := storage.EnsureDirectory(filepath.Dir(path)); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", dsn+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}
	// Every pooled connection to ":memory:" would see its own database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file, empty for in-memory databases.
func (s *Store) Path() string {
	return s.path
}

// Repos returns the stores backed by this database.
func (s *Store) Repos() storage.Repos {
	return storage.Repos{
		Tasks:      &TaskRepo{db: s.db, now: time.Now},
		Categories: &CategoryRepo{db: s.db},
		Tags:       &TagRepo{db: s.db},
		Activity:   &ActivityRepo{db: s.db},
	}
}

// isConstraint reports whether err is a UNIQUE or PRIMARY KEY violation.
func isConstraint(err error) bool {
	var se sqlite3.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.Code == sqlite3.ErrConstraint &&
		(se.ExtendedCode == sqlite3.ErrConstraintUnique || se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey)
}

// withTx runs fn in a transaction, rolling back on error.
func withTx(db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

func nullInt(v int64) sql.NullInt64 {
	return sql.NullInt64{Int64: v, Valid: v != 0}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// CheckIntegrity runs SQLite's integrity check and returns the problems it
// reports, none when the database is healthy.
func (s *Store) CheckIntegrity() ([]string, error) {
	rows, err := s.db.Query(`PRAGMA integrity_check`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var problems []string
	for rows.Next() {
		var msg string
		if err := rows.Scan(&msg); err != nil {
			return nil, err
		}
		if msg != "ok" {
			problems = append(problems, msg)
		}
	}
	return problems, rows.Err()
}

// Backup writes a consistent copy of the database into a timestamped file
// under backups/ next to it and returns the file path.
func (s *Store) Backup() (string, error) {
	if s.path == "" {
		return "", fmt.Errorf("in-memory database cannot be backed up")
	}
	dir := filepath.Join(filepath.Dir(s.path), "backups")
	if err := storage.EnsureDirectory(dir); err != nil {
		return "", err
	}
	dst := filepath.Join(dir, fmt.Sprintf("%s-backup-%s", filepath.Base(s.path), time.Now().Format("20060102-150405")))
	if _, err := s.db.Exec(`VACUUM INTO ?`, dst); err != nil {
		return "", fmt.Errorf("backup: %w", err)
	}
	return dst, nil
}
